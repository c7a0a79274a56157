package harvest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"clubbot-engine/internal/domain"
)

// Error kinds reported by the harvesters. Network failures are kept
// distinct from structural ones so operational tooling can tell a flaky
// host from a broken feed.
var (
	ErrNetwork       = errors.New("network error")
	ErrFeedParse     = errors.New("feed parse failure")
	ErrMalformedFeed = errors.New("malformed feed")
	ErrEmptyDocument = errors.New("empty markdown document")
)

const userAgent = "ClubBot/1.0 (+local)"

// RSSHarvester fetches an RSS/Atom feed and normalizes every entry into
// a Record. It never writes to the store; callers persist the result.
type RSSHarvester struct {
	hc      *http.Client
	limiter *HostLimiter
	parser  *gofeed.Parser
}

func NewRSSHarvester(limiter *HostLimiter) *RSSHarvester {
	return &RSSHarvester{
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
		parser:  gofeed.NewParser(),
	}
}

// Harvest maps every feed entry through the normalizer. A feed with zero
// entries returns an empty slice, not an error; a feed the parser cannot
// make sense of is a malformed-feed error even if it has partial data.
func (h *RSSHarvester) Harvest(ctx context.Context, feedURL, typ, subType string) ([]domain.Record, error) {
	feed, err := h.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		records = append(records, NormalizeEntry(itemEntry(item), typ, subType, time.Now()))
	}
	return records, nil
}

// HarvestEvents is the events-feed variant: bodies carry "When:" and
// "Location:" lines and the leftover text is a real description.
func (h *RSSHarvester) HarvestEvents(ctx context.Context, feedURL, subType string) ([]domain.Record, error) {
	feed, err := h.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		records = append(records, NormalizeEventEntry(itemEntry(item), subType, time.Now()))
	}
	return records, nil
}

func (h *RSSHarvester) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	body, err := fetch(ctx, h.hc, h.limiter, feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := h.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFeed, feedURL, err)
	}
	if feed.Title == "" && len(feed.Items) == 0 {
		return nil, fmt.Errorf("%w: %s: no channel metadata and no items", ErrMalformedFeed, feedURL)
	}
	return feed, nil
}

func itemEntry(item *gofeed.Item) Entry {
	desc := item.Description
	if desc == "" {
		desc = item.Content
	}
	return Entry{
		Title:       item.Title,
		Description: desc,
		Published:   item.Published,
		Link:        item.Link,
	}
}

// fetch performs one rate-limited GET and classifies failures: transport
// errors and timeouts are the network kind, a bad status or unreadable
// body is a parse-level failure of the source.
func fetch(ctx context.Context, hc *http.Client, limiter *HostLimiter, rawURL string) ([]byte, error) {
	if limiter != nil {
		if err := limiter.WaitURL(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("%w: limiter wait: %v", ErrNetwork, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFeedParse, rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrNetwork, rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s: status %d", ErrFeedParse, rawURL, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNetwork, rawURL, err)
	}
	return body, nil
}

// sanity guard used by tests and the runner
func looksLikeURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
