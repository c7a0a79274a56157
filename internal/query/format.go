package query

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"clubbot-engine/internal/domain"
)

const (
	// MaxResults caps how many records get rendered in full detail.
	MaxResults = 5
	// ChunkLimit keeps every outbound text block under the chat
	// platform's message ceiling (Telegram allows 4096).
	ChunkLimit = 4000

	NoResultsMessage = "No results found matching your criteria."
)

const pubDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// FormatMessage renders ranked results into sequential text chunks. Only
// the first chunk carries the header, no chunk exceeds ChunkLimit, and a
// record's block is never split across a boundary.
func FormatMessage(records []domain.Record, spec Spec) []string {
	if len(records) == 0 {
		return []string{NoResultsMessage}
	}

	blocks := make([]string, 0, MaxResults+1)
	for _, rec := range limit(records, MaxResults) {
		blocks = append(blocks, renderRecord(rec))
	}
	if extra := len(records) - MaxResults; extra > 0 {
		blocks = append(blocks, fmt.Sprintf("...and %d more. Refine your filters to narrow results.", extra))
	}

	return chunk(headerLine(len(records), spec), blocks)
}

func headerLine(total int, spec Spec) string {
	h := fmt.Sprintf("Found %d result(s)", total)
	if filters := spec.ActiveFilters(); filters != "" {
		h += " (filters: " + filters + ")"
	}
	return h
}

func renderRecord(rec domain.Record) string {
	var b strings.Builder

	title := rec.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintf(&b, "%s\n", title)

	if rec.SubType != "" {
		fmt.Fprintf(&b, "Type: %s (%s)\n", rec.Type, rec.SubType)
	} else if rec.Type != "" {
		fmt.Fprintf(&b, "Type: %s\n", rec.Type)
	}
	if rec.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", rec.Company)
	}
	if loc := rec.LocationString(); loc != "" {
		fmt.Fprintf(&b, "Location: %s\n", loc)
	}
	if rec.WhenDate != "" {
		fmt.Fprintf(&b, "Date: %s\n", rec.WhenDate)
	}
	if rec.PubDate != "" {
		fmt.Fprintf(&b, "Posted: %s\n", prettyPubDate(rec.PubDate))
	}
	if rec.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", truncate(rec.Description, 80))
	}
	if rec.Link != "" {
		fmt.Fprintf(&b, "Apply: %s\n", rec.Link)
	}
	return b.String()
}

// chunk packs blocks into messages under ChunkLimit, moving a whole
// block to the next message when it would overflow the current one. A
// single block over the limit is hard-split on rune boundaries as a
// last resort.
func chunk(header string, blocks []string) []string {
	var chunks []string
	current := header + "\n\n"

	flush := func() {
		if strings.TrimSpace(current) != "" {
			chunks = append(chunks, strings.TrimRight(current, "\n"))
		}
		current = ""
	}

	for _, block := range blocks {
		piece := block + "\n"
		if len(current)+len(piece) > ChunkLimit {
			flush()
		}
		for len(piece) > ChunkLimit {
			cut := ChunkLimit
			for cut > 0 && !utf8.RuneStart(piece[cut]) {
				cut--
			}
			chunks = append(chunks, strings.TrimRight(piece[:cut], "\n"))
			piece = piece[cut:]
		}
		current += piece
	}
	flush()
	return chunks
}

// Card is the structured rendering of one result, for platforms that
// support richer output than plain text.
type Card struct {
	Title  string
	Fields []CardField
	Link   string
}

type CardField struct {
	Name  string
	Value string
}

// Cards builds one Card per rendered result, honoring the same cap as
// the text renderer.
func Cards(records []domain.Record) []Card {
	out := make([]Card, 0, MaxResults)
	for _, rec := range limit(records, MaxResults) {
		card := Card{Title: rec.Title, Link: rec.Link}
		add := func(name, val string) {
			if val != "" {
				card.Fields = append(card.Fields, CardField{Name: name, Value: val})
			}
		}
		add("Type", rec.Type)
		add("Company", rec.Company)
		add("Location", rec.LocationString())
		add("Date", rec.WhenDate)
		add("Posted", prettyPubDate(rec.PubDate))
		add("Description", truncate(rec.Description, 200))
		out = append(out, card)
	}
	return out
}

// prettyPubDate reformats RFC1123-style feed timestamps for display and
// leaves anything else untouched.
func prettyPubDate(pub string) string {
	t, err := time.Parse(pubDateLayout, pub)
	if err != nil {
		return pub
	}
	return t.Format("Jan 02 2006")
}

// truncate cuts on a rune boundary so multibyte text never sends
// invalid UTF-8 to the chat platform.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func limit(records []domain.Record, n int) []domain.Record {
	if len(records) > n {
		return records[:n]
	}
	return records
}
