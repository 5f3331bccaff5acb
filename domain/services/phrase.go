package services

import "strings"

// PhraseMatchMode selects how a message is compared against a required phrase.
type PhraseMatchMode string

const (
	// MatchModeEquals requires the whole message to equal the phrase.
	MatchModeEquals PhraseMatchMode = "equals"
	// MatchModeContains requires the phrase to appear anywhere in the message.
	MatchModeContains PhraseMatchMode = "contains"
)

// PhraseMatcher decides whether a chat message satisfies a giveaway's required
// phrase. Mode and case sensitivity are process-wide configuration, not
// per-giveaway.
type PhraseMatcher struct {
	Mode          PhraseMatchMode
	CaseSensitive bool
}

// NewPhraseMatcher builds a matcher, falling back to equals mode for any
// unrecognized mode string.
func NewPhraseMatcher(mode string, caseSensitive bool) PhraseMatcher {
	m := PhraseMatchMode(mode)
	if m != MatchModeContains {
		m = MatchModeEquals
	}
	return PhraseMatcher{Mode: m, CaseSensitive: caseSensitive}
}

// Matches reports whether message satisfies phrase under the configured mode.
// Both sides are trimmed of surrounding whitespace first.
func (m PhraseMatcher) Matches(message, phrase string) bool {
	a := m.normalize(message)
	b := m.normalize(phrase)
	if m.Mode == MatchModeContains {
		return strings.Contains(a, b)
	}
	return a == b
}

func (m PhraseMatcher) normalize(s string) string {
	s = strings.TrimSpace(s)
	if !m.CaseSensitive {
		s = strings.ToLower(s)
	}
	return s
}
