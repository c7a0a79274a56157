package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"clubbot-engine/internal/domain"
)

// DedupMode selects the duplicate-detection key. Identity mode drops any
// record sharing title+company+link with an earlier one; content mode
// only drops exact copies (everything but entryDate), so a re-posted
// entry with, say, an extended deadline survives.
type DedupMode string

const (
	DedupIdentity DedupMode = "identity"
	DedupContent  DedupMode = "content"
)

// header is the store's on-disk column contract. Order matters.
var header = []string{
	"Type", "subType", "Title", "Description", "Company",
	"Location", "whenDate", "pubDate", "link", "entryDate",
}

const entryDateLayout = time.RFC3339

// Store is the flat-file record store. Appends take an exclusive file
// lock and snapshot reads a shared one, so a harvest run and a command
// never interleave partial writes.
type Store struct {
	path string
	mode DedupMode
	lock *flock.Flock
}

func New(path string, mode DedupMode) *Store {
	if mode != DedupContent {
		mode = DedupIdentity
	}
	return &Store{
		path: path,
		mode: mode,
		lock: flock.New(path + ".lock"),
	}
}

// Snapshot reads the whole store. A missing or unreadable file is a hard
// failure for the query path, never a silent empty result.
func (s *Store) Snapshot() ([]domain.Record, error) {
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("store read lock: %w", err)
	}
	defer s.lock.Unlock()

	return readAll(s.path)
}

// Append merges new records with the existing content through the dedup
// rule and rewrites the file, so repeated harvests of an unchanged
// source leave the row count alone. A missing file is created.
func (s *Store) Append(records []domain.Record) (added int, err error) {
	if err := s.lock.Lock(); err != nil {
		return 0, fmt.Errorf("store write lock: %w", err)
	}
	defer s.lock.Unlock()

	existing, err := readAll(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return 0, err
		}
		existing = nil
	}

	merged := RemoveDuplicates(append(existing, records...), s.mode)
	added = len(merged) - len(existing)

	if err := writeAll(s.path, merged); err != nil {
		return 0, err
	}
	return added, nil
}

// RemoveDuplicates keeps the first occurrence of each key and preserves
// the order of everything else.
func RemoveDuplicates(records []domain.Record, mode DedupMode) []domain.Record {
	seen := make(map[string]bool, len(records))
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		key := dedupKey(rec, mode)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}

func dedupKey(rec domain.Record, mode DedupMode) string {
	if mode == DedupContent {
		return strings.Join([]string{
			rec.Type, rec.SubType, rec.Title, rec.Description, rec.Company,
			serializeLocation(rec.Location), rec.WhenDate, rec.PubDate, rec.Link,
		}, "\x1f")
	}
	return strings.Join([]string{rec.Title, rec.Company, rec.Link}, "\x1f")
}

func readAll(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate short rows; defaults fill the gaps

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return []domain.Record{}, nil
	}

	// Column positions come from the header row so older files with
	// missing columns still load with defaults.
	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) (string, bool) {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := domain.NewRecord(domain.UnknownValue, time.Time{})
		if v, ok := field(row, "Type"); ok {
			rec.Type = v
		}
		if v, ok := field(row, "subType"); ok {
			rec.SubType = v
		}
		if v, ok := field(row, "Title"); ok {
			rec.Title = v
		}
		if v, ok := field(row, "Description"); ok {
			rec.Description = v
		}
		if v, ok := field(row, "Company"); ok && v != "" {
			rec.Company = v
		}
		if v, ok := field(row, "Location"); ok {
			rec.Location = parseLocation(v)
		}
		// whenDate is taken verbatim: events legitimately store a blank.
		if v, ok := field(row, "whenDate"); ok {
			rec.WhenDate = v
		}
		if v, ok := field(row, "pubDate"); ok {
			rec.PubDate = v
		}
		if v, ok := field(row, "link"); ok {
			rec.Link = v
		}
		if v, ok := field(row, "entryDate"); ok {
			if t, err := time.Parse(entryDateLayout, v); err == nil {
				rec.EntryDate = t
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func writeAll(path string, records []domain.Record) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Type, rec.SubType, rec.Title, rec.Description, rec.Company,
			serializeLocation(rec.Location), rec.WhenDate, rec.PubDate,
			rec.Link, rec.EntryDate.UTC().Format(entryDateLayout),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// serializeLocation renders the token list the way the store has always
// carried it: a bracketed list with quoted tokens, so commas inside a
// "City, ST" token survive the round trip.
func serializeLocation(tokens []string) string {
	if len(tokens) == 0 {
		tokens = []string{domain.UnknownValue}
	}
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = "'" + t + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func parseLocation(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return []string{domain.UnknownValue}
	}
	if !strings.HasPrefix(cell, "[") || !strings.HasSuffix(cell, "]") {
		return []string{cell}
	}
	inner := strings.TrimSpace(cell[1 : len(cell)-1])
	if inner == "" {
		return []string{domain.UnknownValue}
	}

	var tokens []string
	for _, part := range strings.Split(inner, "', '") {
		part = strings.Trim(strings.TrimSpace(part), "'")
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	if tokens == nil {
		return []string{domain.UnknownValue}
	}
	return tokens
}
