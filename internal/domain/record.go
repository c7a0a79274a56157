package domain

import (
	"strings"
	"time"
)

// Sentinels used in place of missing or unparseable fields. Records are
// written with every column populated; consumers never see an absent key.
const (
	UnknownValue = "Unknown"

	TypeJob        = "Job"
	TypeInternship = "Internship"
	TypeEvent      = "Event"
)

// Record is one harvested job, internship, or event.
type Record struct {
	Type        string
	SubType     string
	Title       string
	Company     string
	Description string
	WhenDate    string // date string as given by the source, or "Unknown"
	PubDate     string // raw published timestamp from the source, unparsed
	Location    []string
	Link        string
	EntryDate   time.Time // capture time, UTC, set once at harvest
}

// NewRecord returns a Record with every field at its sentinel default.
func NewRecord(typ string, now time.Time) Record {
	return Record{
		Type:      typ,
		Company:   UnknownValue,
		WhenDate:  UnknownValue,
		Location:  []string{UnknownValue},
		EntryDate: now.UTC(),
	}
}

// IsType reports whether the record's type matches typ, case-insensitively.
func (r Record) IsType(typ string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Type), typ)
}

// LocationString flattens the location tokens for display and matching.
func (r Record) LocationString() string {
	return strings.Join(r.Location, ", ")
}
