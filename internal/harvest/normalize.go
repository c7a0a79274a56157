package harvest

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"clubbot-engine/internal/domain"
)

// Entry is one raw feed item before normalization.
type Entry struct {
	Title       string
	Description string
	Published   string
	Link        string
}

var (
	titleAtRe  = regexp.MustCompile(`(?i)\s+at\s.*`)
	employerRe = regexp.MustCompile(`(?s)Employer:(.*?)(?:\n|<|Expires:)`)
	expiresRe  = regexp.MustCompile(`Expires:\s*(\d{2}/\d{2}/\d{4})`)
	whenLineRe = regexp.MustCompile(`(?i)When\s*:\s*(.+?)(?:\n|$)`)
)

const expiresLayout = "01/02/2006"

// NormalizeEntry converts one raw feed entry into a Record. Every
// extraction step degrades to its sentinel instead of failing, so a
// half-broken entry still yields a complete record.
func NormalizeEntry(e Entry, typ, subType string, now time.Time) domain.Record {
	rec := domain.NewRecord(typ, now)
	rec.SubType = strings.ToLower(strings.TrimSpace(subType))
	rec.Title = cleanTitle(e.Title)
	rec.Company = extractEmployer(e.Description)
	rec.WhenDate = extractExpires(e.Description)
	rec.Location = ExtractLocations(plainText(e.Description))
	rec.PubDate = e.Published
	rec.Link = e.Link
	// Description stays empty: everything useful from the feed body has
	// been structured into company/date/location.
	return rec
}

// NormalizeEventEntry handles the events feed shape, where the body
// carries "When:" and "Location:" labeled lines and the rest of the text
// is a real description worth keeping.
func NormalizeEventEntry(e Entry, subType string, now time.Time) domain.Record {
	rec := domain.NewRecord(domain.TypeEvent, now)
	rec.SubType = strings.ToLower(strings.TrimSpace(subType))
	rec.Title = strings.TrimSpace(e.Title)
	rec.PubDate = e.Published
	rec.Link = e.Link

	body := plainText(e.Description)

	// Events carry no expiry; missing When: is blank, not "Unknown".
	rec.WhenDate = ""
	if m := whenLineRe.FindStringSubmatch(body); m != nil {
		rec.WhenDate = strings.TrimSpace(m[1])
	}

	rec.Location = []string{domain.UnknownValue}
	if m := locationLineRe.FindStringSubmatch(body); m != nil {
		if loc := strings.TrimSpace(m[1]); loc != "" {
			rec.Location = []string{loc}
		}
	}

	var rest []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if whenLineRe.MatchString(trimmed) || locationLineRe.MatchString(trimmed) {
			continue
		}
		rest = append(rest, trimmed)
	}
	rec.Description = strings.Join(rest, "\n")

	return rec
}

// cleanTitle strips the employer suffix: everything from the first
// case-insensitive " at " onward.
func cleanTitle(title string) string {
	return strings.TrimSpace(titleAtRe.ReplaceAllString(title, ""))
}

func extractEmployer(desc string) string {
	m := employerRe.FindStringSubmatch(desc)
	if m == nil {
		return domain.UnknownValue
	}
	company := strings.TrimSpace(m[1])
	if company == "" {
		return domain.UnknownValue
	}
	return company
}

// extractExpires pulls an MM/DD/YYYY token after "Expires:" and validates
// it as a real calendar date. Bad or missing dates become "Unknown",
// never an error and never a guessed alternate format.
func extractExpires(desc string) string {
	m := expiresRe.FindStringSubmatch(desc)
	if m == nil {
		return domain.UnknownValue
	}
	if _, err := time.Parse(expiresLayout, m[1]); err != nil {
		return domain.UnknownValue
	}
	return m[1]
}

// plainText flattens HTML feed bodies to text so the labeled-line scans
// behave the same for plain and HTML descriptions. Non-HTML text passes
// through untouched.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml("\n")
	})
	doc.Find("p, div, li").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})
	return doc.Text()
}
