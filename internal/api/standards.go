package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/certipro/certipro-cli/internal"
)

// Standards searches the ISO standards catalog. The response body is either
// a bare array or an envelope with data/total fields; the catalog-wide
// count comes from the X-Total-Count header, falling back to the body's
// total field.
func (c *Client) Standards(ctx context.Context, q internal.StandardsQuery) (*internal.StandardsPage, error) {
	query := url.Values{
		"keyword":  {q.Keyword},
		"offset":   {strconv.Itoa(q.Offset)},
		"limit":    {strconv.Itoa(q.Limit)},
		"category": {q.Category},
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/standards/", query, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	page := &internal.StandardsPage{}

	var envelope struct {
		Data  []internal.Standard `json:"data"`
		Total int                 `json:"total"`
	}
	if err := json.Unmarshal(data, &page.Standards); err != nil {
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode standards response: %w", err)
		}
		page.Standards = envelope.Data
		page.Total = envelope.Total
	}

	if header := resp.Header.Get("X-Total-Count"); header != "" {
		if n, err := strconv.Atoi(header); err == nil && n > 0 {
			page.Total = n
		}
	}

	return page, nil
}
