package ports

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// InvalidSpecError reports the port-spec token that failed to parse.
type InvalidSpecError struct {
	Token  string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid port spec %q: %s", e.Token, e.Reason)
}

// Parse expands a port specification like "22,80,8000-8100" into a strictly
// ascending, deduplicated slice. An empty spec (or one containing only
// whitespace tokens) yields an empty slice, not an error; treating "no ports"
// as a no-op scan is the caller's decision.
func Parse(spec string) ([]int, error) {
	seen := make(map[int]struct{})

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if strings.Contains(token, "-") {
			lo, hi, err := parseRange(token)
			if err != nil {
				return nil, err
			}
			for p := lo; p <= hi; p++ {
				seen[p] = struct{}{}
			}
			continue
		}

		p, err := strconv.Atoi(token)
		if err != nil {
			return nil, &InvalidSpecError{Token: token, Reason: "not a number"}
		}
		if p < 1 || p > 65535 {
			return nil, &InvalidSpecError{Token: token, Reason: "port must be in 1-65535"}
		}
		seen[p] = struct{}{}
	}

	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}

func parseRange(token string) (int, int, error) {
	bounds := strings.SplitN(token, "-", 2)

	lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return 0, 0, &InvalidSpecError{Token: token, Reason: "range start is not a number"}
	}
	hi, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return 0, 0, &InvalidSpecError{Token: token, Reason: "range end is not a number"}
	}

	if lo < 1 || hi > 65535 {
		return 0, 0, &InvalidSpecError{Token: token, Reason: "ports must be in 1-65535"}
	}
	if lo > hi {
		return 0, 0, &InvalidSpecError{Token: token, Reason: "range start greater than end"}
	}
	return lo, hi, nil
}
