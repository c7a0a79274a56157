package harvest

import (
	"regexp"
	"sort"
	"strings"

	"clubbot-engine/internal/domain"
)

var validStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true,
	"CO": true, "CT": true, "DE": true, "FL": true, "GA": true,
	"HI": true, "ID": true, "IL": true, "IN": true, "IA": true,
	"KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true,
	"MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true,
	"SD": true, "TN": true, "TX": true, "UT": true, "VT": true,
	"VA": true, "WA": true, "WV": true, "WI": true, "WY": true,
}

var (
	remoteRe       = regexp.MustCompile(`(?i)\b(remote|telecommute)\b`)
	hybridRe       = regexp.MustCompile(`(?i)\bhybrid\b`)
	locationLineRe = regexp.MustCompile(`(?i)Location\s*:\s*(.+?)(?:\n|$)`)
	cityStateRe    = regexp.MustCompile(`([A-Za-z .\-'&]+?, [A-Z]{2})`)
)

// maxLocationWords rejects multi-clause false positives like
// "Main Office Downtown Boston, MA".
const maxLocationWords = 4

// ExtractLocations pulls normalized location tokens out of free text:
// Remote/Hybrid mentions anywhere, plus every "City, ST" pair on a
// "Location:" line whose ST is a real US state. Returns ["Unknown"] when
// nothing matches. Never fails on empty input.
func ExtractLocations(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{domain.UnknownValue}
	}

	found := map[string]bool{}

	if remoteRe.MatchString(text) {
		found["Remote"] = true
	}
	if hybridRe.MatchString(text) {
		found["Hybrid"] = true
	}

	if m := locationLineRe.FindStringSubmatch(text); m != nil {
		line := strings.TrimSpace(m[1])
		for _, loc := range cityStateRe.FindAllString(line, -1) {
			loc = strings.TrimSpace(loc)
			i := strings.LastIndex(loc, ", ")
			if i < 0 {
				continue
			}
			state := loc[i+2:]
			if validStates[state] && len(strings.Fields(loc)) <= maxLocationWords {
				found[loc] = true
			}
		}
	}

	if len(found) == 0 {
		return []string{domain.UnknownValue}
	}

	out := make([]string, 0, len(found))
	for loc := range found {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}
