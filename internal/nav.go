package internal

// NavItem is one entry in the navigation model: either a leaf with a target
// path or a group with child leaves. Groups have no path of their own.
type NavItem struct {
	Icon     string
	Label    string
	Href     string
	Children []NavItem
}

// IsGroup reports whether the item holds children instead of a target path
func (n NavItem) IsGroup() bool {
	return len(n.Children) > 0
}

var baseNavItems = []NavItem{
	{Icon: "▦", Label: "Dashboard", Href: "/dashboard"},
	{Icon: "▤", Label: "Standards", Href: "/standards"},
	{Icon: "✉", Label: "Chat Assistant", Href: "/chat"},
}

var adminNavItems = []NavItem{
	{Icon: "◉", Label: "Users", Href: "/users"},
}

var orgNavItems = []NavItem{
	{
		Icon:  "▣",
		Label: "Organization",
		Children: []NavItem{
			{Icon: "◉", Label: "Users", Href: "/organization/users"},
			{Icon: "▥", Label: "Audits", Href: "/organization/audits"},
			{Icon: "✓", Label: "Certifications", Href: "/organization/certifications"},
			{Icon: "▥", Label: "Invitations", Href: "/organization/invitations"},
		},
	},
}

// Guests currently see the base items; kept separate so a dedicated guest
// menu can be introduced without touching the policy below.
var guestNavItems = []NavItem{}

// ItemsFor returns the navigation entries visible to a role. Pure lookup,
// deterministic ordering.
func ItemsFor(role string) []NavItem {
	switch {
	case role == RoleAdmin:
		return append(append([]NavItem{}, baseNavItems...), adminNavItems...)
	case role == RoleGuest:
		if len(guestNavItems) > 0 {
			return append([]NavItem{}, guestNavItems...)
		}
		return append([]NavItem{}, baseNavItems...)
	case role == RoleManager || role == RoleEmployee:
		return append(append([]NavItem{}, baseNavItems...), orgNavItems...)
	default:
		return append([]NavItem{}, baseNavItems...)
	}
}

// NavState tracks group expansion, keyed by group label
type NavState struct {
	expanded map[string]bool
}

// NewNavState creates an empty navigation state
func NewNavState() *NavState {
	return &NavState{expanded: make(map[string]bool)}
}

// Toggle flips the expansion state of the group with the given label
func (s *NavState) Toggle(label string) {
	s.expanded[label] = !s.expanded[label]
}

// Expanded reports whether the group with the given label is expanded
func (s *NavState) Expanded(label string) bool {
	return s.expanded[label]
}

// Navigate returns the target path if it differs from the current one.
// Navigating to the page already shown is a no-op.
func Navigate(current, target string) (string, bool) {
	if current == target {
		return current, false
	}
	return target, true
}
