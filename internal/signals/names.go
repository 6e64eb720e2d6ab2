package signals

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fpladvisor/advisor-api/internal/models"
)

const nameSimilarityThreshold = 0.6

// Provider spellings that neither substring nor edit distance resolve.
var teamAliases = map[string]string{
	"spurs":         "tottenham hotspur",
	"tottenham":     "tottenham hotspur",
	"man utd":       "manchester united",
	"man united":    "manchester united",
	"man city":      "manchester city",
	"nottm forest":  "nottingham forest",
	"wolves":        "wolverhampton wanderers",
	"newcastle":     "newcastle united",
	"brighton":      "brighton and hove albion",
	"west ham":      "west ham united",
	"leicester":     "leicester city",
	"ipswich":       "ipswich town",
	"luton":         "luton town",
	"sheffield utd": "sheffield united",
	"leeds":         "leeds united",
}

// canonicalTeamName lowercases, drops punctuation and expands known aliases.
func canonicalTeamName(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r == '&':
			b.WriteString(" and ")
			space = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			space = false
		case unicode.IsSpace(r) || r == '-':
			if !space {
				b.WriteRune(' ')
				space = true
			}
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	out = strings.TrimSuffix(out, " fc")
	out = strings.TrimPrefix(out, "afc ")
	if alias, ok := teamAliases[out]; ok {
		return alias
	}
	return out
}

func similarity(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(maxLen)
}

// MatchTeam finds the FPL team a provider's team name refers to.
func MatchTeam(name string, teams []models.Team) (models.Team, bool) {
	target := canonicalTeamName(name)
	if target == "" {
		return models.Team{}, false
	}

	best := -1
	bestScore := 0.0
	for i, t := range teams {
		candidate := canonicalTeamName(t.Name)
		if candidate == "" {
			continue
		}
		var score float64
		switch {
		case candidate == target:
			return t, true
		case fuzzy.Match(candidate, target) || fuzzy.Match(target, candidate):
			// every character in order: "man city" in "manchester city"
			score = 0.9 + 0.1*similarity(candidate, target)
		default:
			score = similarity(candidate, target)
		}
		if score > nameSimilarityThreshold && score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return models.Team{}, false
	}
	return teams[best], true
}
