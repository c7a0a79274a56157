package query

import (
	"sort"
	"strings"

	"clubbot-engine/internal/domain"
)

// Filter applies the spec to a record set and returns the matches ranked
// by confidence. Every present slot must match for a record to be kept;
// an all-absent spec returns the input untouched.
func Filter(records []domain.Record, spec Spec) []domain.Record {
	if spec.Empty() {
		return records
	}

	type scored struct {
		rec   domain.Record
		score int
	}

	var matches []scored
	for _, rec := range records {
		if !matchesSpec(rec, spec) {
			continue
		}
		matches = append(matches, scored{rec: rec, score: confidence(rec, spec)})
	}

	// Ties keep encounter order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]domain.Record, len(matches))
	for i, m := range matches {
		out[i] = m.rec
	}
	return out
}

// matchesSpec AND-s every present slot. Each slot matches when its value
// appears, case-insensitively, in at least one of the slot's fields.
func matchesSpec(rec domain.Record, spec Spec) bool {
	if !slotMatch(spec.Role, rec.Title, rec.Description) {
		return false
	}
	if !slotMatch(spec.Type, rec.Title, rec.Description, rec.Type) {
		return false
	}
	if !slotMatch(spec.Season, rec.Title, rec.Description, rec.WhenDate, rec.PubDate) {
		return false
	}
	if !slotMatch(spec.Company, rec.Company, rec.Title, rec.Description) {
		return false
	}
	if !slotMatch(spec.Location, rec.LocationString()) {
		return false
	}

	// A general search includes the record when any term lands somewhere;
	// confidence ranking pushes the weak matches down.
	if terms := strings.Fields(spec.GeneralSearch); len(terms) > 0 {
		hit := false
		for _, term := range terms {
			if slotMatch(term, rec.Title, rec.Description, rec.Type, rec.Company,
				rec.LocationString(), rec.WhenDate, rec.PubDate) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func slotMatch(value string, fields ...string) bool {
	if value == "" {
		return true
	}
	needle := strings.ToLower(value)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// confidence scores a match: each search term earns one point per
// searchable field it appears in.
func confidence(rec domain.Record, spec Spec) int {
	searchable := []string{
		rec.Title, rec.SubType, rec.Description, rec.Type, rec.Company,
		rec.LocationString(), rec.WhenDate, rec.PubDate,
	}

	terms := make([]string, 0, 8)
	for _, v := range []string{spec.Role, spec.Type, spec.Season, spec.Company, spec.Location} {
		if v != "" {
			terms = append(terms, v)
		}
	}
	terms = append(terms, strings.Fields(spec.GeneralSearch)...)

	score := 0
	for _, term := range terms {
		needle := strings.ToLower(term)
		for _, f := range searchable {
			if strings.Contains(strings.ToLower(f), needle) {
				score++
			}
		}
	}
	return score
}
