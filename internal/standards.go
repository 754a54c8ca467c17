package internal

import (
	"context"
	"sync"
	"time"
)

// StandardsPerPage is the page size of the standards catalog views
const StandardsPerPage = 10

// DebounceWindow is how long a search query must sit unchanged before the
// fetch fires.
const DebounceWindow = 300 * time.Millisecond

// StandardsQuery is one catalog search
type StandardsQuery struct {
	Keyword  string
	Category string
	Offset   int
	Limit    int
}

// StandardsPage is one page of results plus the catalog-wide total
type StandardsPage struct {
	Standards []Standard
	Total     int
}

// TotalPages returns the page count for a result total, never below one
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// StandardsService searches the standards catalog.
// Implemented by the API client.
type StandardsService interface {
	Standards(ctx context.Context, q StandardsQuery) (*StandardsPage, error)
}

// DebouncedSearch coalesces rapid query changes into a single fetch for the
// latest value. A new query cancels both the pending timer and any in-flight
// request, so stale results never overwrite fresher ones.
type DebouncedSearch struct {
	svc      StandardsService
	window   time.Duration
	onResult func(q StandardsQuery, page *StandardsPage, err error)

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	gen    int
}

// NewDebouncedSearch creates a debounced searcher. onResult runs on the
// timer goroutine once per fired query.
func NewDebouncedSearch(svc StandardsService, window time.Duration, onResult func(q StandardsQuery, page *StandardsPage, err error)) *DebouncedSearch {
	if window <= 0 {
		window = DebounceWindow
	}
	return &DebouncedSearch{svc: svc, window: window, onResult: onResult}
}

// Update registers a query change. The fetch fires only after the window
// elapses with no further changes.
func (d *DebouncedSearch) Update(q StandardsQuery) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() {
		d.run(gen, q)
	})
}

func (d *DebouncedSearch) run(gen int, q StandardsQuery) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	page, err := d.svc.Standards(ctx, q)

	d.mu.Lock()
	stale := gen != d.gen || ctx.Err() != nil
	if d.cancel != nil && gen == d.gen {
		d.cancel = nil
	}
	d.mu.Unlock()

	if stale {
		return
	}
	d.onResult(q, page, err)
}

// Stop cancels any pending timer and in-flight fetch
func (d *DebouncedSearch) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
