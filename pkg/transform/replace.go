package transform

import (
	"regexp"
	"strings"
)

// ReplaceIn rewrites the text of every node matching pat by global
// regular-expression substitution, queueing a full-range edit only for
// nodes whose text actually changes. Unchanged nodes produce no edit,
// so unrelated matches never conflict at render time.
func (s *Session) ReplaceIn(pat string, re *regexp.Regexp, replacement string) *Session {
	for _, n := range s.find(pat) {
		text := n.Text()

		rewritten := re.ReplaceAllString(text, replacement)
		if rewritten != text {
			s.add(n.StartByte(), n.EndByte(), rewritten)
		}
	}

	return s
}

// ReplaceInLiteral is ReplaceIn with plain-text matching: every
// occurrence of old inside a matched node's text becomes replacement.
func (s *Session) ReplaceInLiteral(pat, old, replacement string) *Session {
	if old == "" {
		return s
	}

	for _, n := range s.find(pat) {
		text := n.Text()

		rewritten := strings.ReplaceAll(text, old, replacement)
		if rewritten != text {
			s.add(n.StartByte(), n.EndByte(), rewritten)
		}
	}

	return s
}
