package query

import (
	"regexp"
	"strings"
)

var bracketGroupRe = regexp.MustCompile(`\[([^\]]*)\]`)

// flagSlots maps recognized short/long flags to a setter per slot.
var flagSlots = map[string]func(*Spec, string){
	"-r": func(s *Spec, v string) { s.Role = v },
	"-t": func(s *Spec, v string) { s.Type = v },
	"-s": func(s *Spec, v string) { s.Season = v },
	"-c": func(s *Spec, v string) { s.Company = v },
	"-l": func(s *Spec, v string) { s.Location = v },
}

func init() {
	for long, short := range map[string]string{
		"--role": "-r", "--type": "-t", "--season": "-s",
		"--company": "-c", "--location": "-l",
	} {
		flagSlots[long] = flagSlots[short]
	}
}

// Parse turns a command's trailing argument string into a Spec. Bracket
// notation wins whenever the input carries both '[' and ']'; otherwise
// flag notation applies. Malformed input degrades to fewer constraints,
// never an error.
func Parse(args string) Spec {
	args = strings.TrimSpace(args)
	if args == "" {
		return Spec{}
	}
	if strings.Contains(args, "[") && strings.Contains(args, "]") {
		return parseBrackets(args)
	}
	return parseFlags(args)
}

// parseBrackets maps up to five ordered groups positionally onto
// role, type, season, company, location. Blank groups stay absent and
// groups past the fifth are ignored.
func parseBrackets(args string) Spec {
	var spec Spec
	slots := []*string{&spec.Role, &spec.Type, &spec.Season, &spec.Company, &spec.Location}

	for i, m := range bracketGroupRe.FindAllStringSubmatch(args, -1) {
		if i >= len(slots) {
			break
		}
		*slots[i] = strings.TrimSpace(m[1])
	}
	return spec
}

// parseFlags consumes "-x value" pairs and accumulates every leftover
// token, in order, into the general search term. A flag with no
// following token is skipped; unrecognized flags are discarded.
func parseFlags(args string) Spec {
	var spec Spec
	var general []string

	tokens := strings.Fields(args)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if set, ok := flagSlots[tok]; ok {
			if i+1 < len(tokens) {
				set(&spec, tokens[i+1])
				i++
			}
			continue
		}
		if strings.HasPrefix(tok, "-") {
			continue
		}
		general = append(general, tok)
	}

	spec.GeneralSearch = strings.Join(general, " ")
	return spec
}
