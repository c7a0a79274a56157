package query

import "strings"

// Spec is one command invocation's parsed filter set. An empty string
// means the slot is absent: the parser never produces an empty-string
// constraint, so absence needs no separate encoding.
type Spec struct {
	Role          string
	Type          string
	Season        string
	Company       string
	Location      string
	GeneralSearch string
}

// Empty reports whether no slot carries a constraint.
func (s Spec) Empty() bool {
	return s.Role == "" && s.Type == "" && s.Season == "" &&
		s.Company == "" && s.Location == "" && s.GeneralSearch == ""
}

// ActiveFilters renders the present slots in a fixed order for the
// results header, e.g. "role: developer, company: Google".
func (s Spec) ActiveFilters() string {
	var parts []string
	add := func(name, val string) {
		if val != "" {
			parts = append(parts, name+": "+val)
		}
	}
	add("role", s.Role)
	add("type", s.Type)
	add("season", s.Season)
	add("company", s.Company)
	add("location", s.Location)
	add("search", s.GeneralSearch)
	return strings.Join(parts, ", ")
}
