package localfilter

import (
	"strconv"
	"strings"

	"github.com/wanderio/trek-finder/pkg/types"
)

// Apply evaluates the query and facet selections against a locally held
// snapshot. Facets are conjunctive with each other and with the query,
// values within one facet are alternatives. An empty query and empty
// selections return the snapshot unchanged.
func Apply(snapshot []types.Trek, query string, filters *types.Filters) []types.Trek {
	query = strings.TrimSpace(query)
	if query == "" && (filters == nil || !filters.Active()) {
		return snapshot
	}
	result := make([]types.Trek, 0, len(snapshot))
	for _, trek := range snapshot {
		if matches(&trek, query, filters) {
			result = append(result, trek)
		}
	}
	return result
}

func matches(t *types.Trek, query string, f *types.Filters) bool {
	if query != "" && !matchesQuery(t, query) {
		return false
	}
	if f == nil {
		return true
	}
	if len(f.Difficulty) > 0 && !matchesDifficulty(t, f.Difficulty) {
		return false
	}
	if len(f.Duration) > 0 && !matchesRange(t.Duration, f.Duration) {
		return false
	}
	if len(f.Location) > 0 && !matchesLocation(t, f.Location) {
		return false
	}
	if len(f.Price) > 0 && !matchesRange(t.Price, f.Price) {
		return false
	}
	if len(f.Organiser) > 0 && !matchesOrganiser(t, f.Organiser) {
		return false
	}
	return true
}

func matchesQuery(t *types.Trek, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.Location), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

func matchesDifficulty(t *types.Trek, selected []string) bool {
	for _, level := range t.Difficulty {
		for _, want := range selected {
			if strings.EqualFold(level, want) {
				return true
			}
		}
	}
	return false
}

// matchesRange checks a numeric value against bucket tokens like "4-7" or
// "2000+". Unparseable tokens never match.
func matchesRange(value int, tokens []string) bool {
	for _, token := range tokens {
		min, max, ok := parseRangeToken(token)
		if !ok {
			continue
		}
		if value >= min && (max < 0 || value <= max) {
			return true
		}
	}
	return false
}

// parseRangeToken returns the inclusive bounds of a bucket token. An
// open-ended token like "15+" yields max = -1.
func parseRangeToken(token string) (min, max int, ok bool) {
	token = strings.TrimSpace(token)
	if open, found := strings.CutSuffix(token, "+"); found {
		n, err := strconv.Atoi(open)
		if err != nil {
			return 0, 0, false
		}
		return n, -1, true
	}
	low, high, found := strings.Cut(token, "-")
	if !found {
		return 0, 0, false
	}
	l, err := strconv.Atoi(low)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(high)
	if err != nil {
		return 0, 0, false
	}
	return l, h, true
}

// continentAliases maps continent tokens to country substrings so a
// selection like "asia" matches treks located in any member country.
var continentAliases = map[string][]string{
	"asia":          {"nepal", "india", "bhutan", "tibet", "china", "pakistan", "japan", "vietnam", "indonesia"},
	"africa":        {"tanzania", "kenya", "morocco", "uganda", "ethiopia", "south africa"},
	"europe":        {"france", "italy", "switzerland", "spain", "austria", "norway", "iceland", "scotland"},
	"south america": {"peru", "chile", "argentina", "bolivia", "ecuador", "colombia"},
	"north america": {"usa", "united states", "canada", "mexico"},
	"oceania":       {"new zealand", "australia"},
}

func matchesLocation(t *types.Trek, selected []string) bool {
	location := strings.ToLower(t.Location)
	for _, token := range selected {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if strings.Contains(location, token) {
			return true
		}
		for _, country := range continentAliases[token] {
			if strings.Contains(location, country) {
				return true
			}
		}
	}
	return false
}

func matchesOrganiser(t *types.Trek, selected []string) bool {
	organiser := strings.ToLower(t.Organiser)
	for _, token := range selected {
		if strings.Contains(organiser, strings.ToLower(token)) {
			return true
		}
	}
	return false
}
