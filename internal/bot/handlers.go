package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"clubbot-engine/internal/config"
	"clubbot-engine/internal/domain"
	"clubbot-engine/internal/query"
)

const storeErrorMessage = "Sorry, the record store is unavailable right now. Please try again later."

const helpText = `Commands:
!jobs [role] [type] [season] [company] [location]
!jobs -r backend -l Boston -s summer (flags: -r role, -t type, -s season, -c company, -l location)
!internships ... same filters, internships only
!events ... upcoming events
!resources ... curated resource links
!resume ... resume help links
Leftover words after flags are treated as a general search.
Empty bracket slots are skipped: !jobs [] [] [summer] [] [].`

// handleRecords answers one query command: snapshot, filter to the given
// record types, rank, format, send. Store failures never leak details to
// the chat.
func (b *Bot) handleRecords(chatID int64, args string, types ...string) {
	records, err := b.store.Snapshot()
	if err != nil {
		log.Printf("[bot] store snapshot failed: %v", err)
		b.send(chatID, storeErrorMessage)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	spec := query.ParseWith(ctx, b.extractor, args)

	matched := query.Filter(ofTypes(records, types...), spec)

	// A single hit gets the richer card rendering with an apply button.
	if len(matched) == 1 {
		b.sendCard(chatID, query.Cards(matched)[0])
		return
	}
	for _, chunk := range query.FormatMessage(matched, spec) {
		b.send(chatID, chunk)
	}
}

func ofTypes(records []domain.Record, types ...string) []domain.Record {
	var out []domain.Record
	for _, rec := range records {
		for _, typ := range types {
			if rec.IsType(typ) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func linkList(title string, links []config.Link) string {
	if len(links) == 0 {
		return fmt.Sprintf("%s: nothing configured yet.", title)
	}
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString(":\n")
	for _, l := range links {
		fmt.Fprintf(&sb, "- %s: %s\n", l.Name, l.URL)
	}
	return strings.TrimRight(sb.String(), "\n")
}
