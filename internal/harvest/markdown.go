package harvest

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"clubbot-engine/internal/domain"
)

// minSectionLen filters placeholder/stub sections out of the document.
const minSectionLen = 50

var (
	headerLineRe  = regexp.MustCompile(`^#{1,3}\s+(.*)$`)
	hruleLineRe   = regexp.MustCompile(`^(-{3,}|\*{3,})\s*$`)
	companyFldRe  = regexp.MustCompile(`(?im)^Company\s*:\s*(.+)$`)
	roleFldRe     = regexp.MustCompile(`(?im)^Role\s*:\s*(.+)$`)
	locationFldRe = regexp.MustCompile(`(?im)^Location\s*:\s*(.+)$`)
	postedFldRe   = regexp.MustCompile(`(?im)^Posted\s*:\s*(.+)$`)
	applyFldRe    = regexp.MustCompile(`(?im)^Apply\s*:\s*(\S+)`)
	mdLinkRe      = regexp.MustCompile(`\[[^\]]*\]\((https?://[^)\s]+)\)`)
	boldLineRe    = regexp.MustCompile(`(?m)^\*\*(.+?)\*\*\s*$`)
)

// MarkdownHarvester turns a curated internships markdown document into
// Records, one per section.
type MarkdownHarvester struct {
	hc      *http.Client
	limiter *HostLimiter
}

func NewMarkdownHarvester(limiter *HostLimiter) *MarkdownHarvester {
	return &MarkdownHarvester{
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

// Harvest fetches the document, splits it into sections and extracts one
// internship per section that carries recognizable fields. An empty
// document is an error; a document with no usable sections is not.
func (h *MarkdownHarvester) Harvest(ctx context.Context, docURL string) ([]domain.Record, error) {
	body, err := fetch(ctx, h.hc, h.limiter, docURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, docURL)
	}

	var records []domain.Record
	for _, section := range splitSections(string(body)) {
		rec, ok := extractInternship(section, time.Now())
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// splitSections breaks the document on markdown headers (#, ##, ###) and
// horizontal rules (---, ***). A header line starts a section and stays
// part of it; rules are pure delimiters. Sections shorter than
// minSectionLen are dropped.
func splitSections(content string) []string {
	var sections []string
	var current []string

	flush := func() {
		joined := strings.TrimSpace(strings.Join(current, "\n"))
		if len(joined) > minSectionLen {
			sections = append(sections, joined)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case hruleLineRe.MatchString(trimmed):
			flush()
		case headerLineRe.MatchString(trimmed):
			flush()
			current = append(current, trimmed)
		default:
			current = append(current, line)
		}
	}
	flush()

	return sections
}

// extractInternship pulls the labeled fields out of one section. A
// section with none of the recognized fields yields no record.
func extractInternship(section string, now time.Time) (domain.Record, bool) {
	rec := domain.NewRecord(domain.TypeInternship, now)
	// Markdown sources have no expiry concept.
	rec.WhenDate = ""

	seen := false

	company := ""
	if m := companyFldRe.FindStringSubmatch(section); m != nil {
		company = strings.TrimSpace(m[1])
		seen = true
	} else if m := headerLineRe.FindStringSubmatch(firstLine(section)); m != nil {
		company = strings.TrimSpace(m[1])
	}
	if company != "" {
		rec.Title = company
		rec.Company = company
	}

	if m := roleFldRe.FindStringSubmatch(section); m != nil {
		rec.Description = strings.TrimSpace(m[1])
		seen = true
	} else if m := boldLineRe.FindStringSubmatch(section); m != nil {
		rec.Description = strings.TrimSpace(m[1])
		seen = true
	}

	if m := locationFldRe.FindStringSubmatch(section); m != nil {
		if loc := strings.TrimSpace(m[1]); loc != "" {
			rec.Location = []string{loc}
			seen = true
		}
	}

	if m := postedFldRe.FindStringSubmatch(section); m != nil {
		rec.PubDate = strings.TrimSpace(m[1])
		seen = true
	}

	if m := applyFldRe.FindStringSubmatch(section); m != nil {
		rec.Link = strings.TrimSpace(m[1])
		seen = true
	} else if m := mdLinkRe.FindStringSubmatch(section); m != nil {
		rec.Link = m[1]
		seen = true
	}

	if !seen {
		return domain.Record{}, false
	}
	return rec, true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
