package catalog

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize brings s to NFC and folds its case
func Normalize(s string) string {
	folded := cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
	return norm.NFC.String(folded)
}

// normalizeName strips the extension before normalizing
func normalizeName(name string) string {
	return Normalize(strings.TrimSuffix(name, filepath.Ext(name)))
}

// Matcher resolves a title to a catalog entry by substring.
type Matcher struct {
	kind       string
	names      []string
	normalized []string
	reverse    bool
	log        zerolog.Logger
}

// NewMatcher builds a matcher over names, which must already be sorted.
// With reverse set an entry also matches when its name is contained in the
// title.
func NewMatcher(kind string, names []string, reverse bool, log zerolog.Logger) *Matcher {
	return &Matcher{
		kind:       kind,
		names:      names,
		normalized: lo.Map(names, func(n string, _ int) string { return normalizeName(n) }),
		reverse:    reverse,
		log:        log,
	}
}

// Match returns the first entry in sorted order matching title.
func (m *Matcher) Match(title string) (string, bool) {
	needle := Normalize(title)
	if needle == "" {
		return "", false
	}

	first := -1
	hits := 0
	for i, name := range m.normalized {
		if name == "" {
			continue
		}
		if strings.Contains(name, needle) || (m.reverse && strings.Contains(needle, name)) {
			if first < 0 {
				first = i
			}
			hits++
		}
	}

	if first < 0 {
		return "", false
	}
	if hits > 1 {
		m.log.Warn().
			Str("kind", m.kind).
			Str("title", title).
			Int("matches", hits).
			Str("chosen", m.names[first]).
			Msg("ambiguous match, using first in sorted order")
	}
	return m.names[first], true
}
