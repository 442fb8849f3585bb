package console

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// candidate is one scored match of an input word against a known name.
type candidate struct {
	Canonical string
	Alias     string
	Score     float64
	Source    string
}

// phrase is one spelling of a canonical name.
type phrase struct {
	canonical string
	alias     string
}

// matcher resolves loosely typed words to canonical names.
type matcher struct {
	phrases []phrase
}

func (m *matcher) add(canonical string, aliases ...string) {
	m.phrases = append(m.phrases, phrase{canonical: canonical, alias: strings.ToLower(canonical)})
	for _, a := range aliases {
		m.phrases = append(m.phrases, phrase{canonical: canonical, alias: strings.ToLower(a)})
	}
}

// match scores every phrase against in and returns the best candidate.
// Exact spellings win, then unique-looking prefixes, then small typos.
func (m *matcher) match(in string) (candidate, bool) {
	in = strings.ToLower(strings.TrimSpace(in))
	if in == "" {
		return candidate{}, false
	}
	cands := make([]candidate, 0, len(m.phrases))
	for _, p := range m.phrases {
		if in == p.alias {
			score, source := 1.0, "exact"
			if p.alias != strings.ToLower(p.canonical) {
				score, source = 0.97, "alias"
			}
			cands = append(cands, candidate{Canonical: p.canonical, Alias: p.alias, Score: score, Source: source})
			continue
		}
		if len(in) >= 2 && strings.HasPrefix(p.alias, in) {
			cands = append(cands, candidate{Canonical: p.canonical, Alias: p.alias, Score: 0.9, Source: "prefix"})
			continue
		}
		if len(in) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(in, p.alias)
		if dist > levenshteinLimit(len(p.alias)) {
			continue
		}
		score := 0.72 - (0.08 * float64(dist))
		if strings.Contains(in, p.alias) {
			score += 0.04
		}
		if p.alias != strings.ToLower(p.canonical) {
			score += 0.03
		}
		cands = append(cands, candidate{Canonical: p.canonical, Alias: p.alias, Score: score, Source: "fuzzy"})
	}
	if len(cands) == 0 {
		return candidate{}, false
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Canonical < cands[j].Canonical
	})
	return cands[0], true
}

func levenshteinLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
