package skills

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lines following a "skill" heading that are scanned as one block, heading included.
const skillsBlockLines = 6

// Extractor finds vocabulary entries in text. It is safe for concurrent use.
type Extractor struct {
	vocab   Vocabulary
	lowered []string
}

// NewExtractor prepares an extractor for the given vocabulary.
func NewExtractor(v Vocabulary) *Extractor {
	lowered := make([]string, len(v))
	for i, skill := range v {
		lowered[i] = strings.ToLower(skill)
	}
	return &Extractor{vocab: v, lowered: lowered}
}

// Vocabulary returns the skills the extractor looks for.
func (e *Extractor) Vocabulary() Vocabulary {
	return e.vocab
}

// Extract returns the sorted set of vocabulary entries found in text.
//
// The whole text is scanned for whole-word occurrences. Lines mentioning
// "skill" additionally open a block of up to six lines whose tokens are
// matched by plain substring, so "ReactJS" and "PostgreSQL" count as React
// and SQL inside a skills section but not elsewhere.
func (e *Extractor) Extract(text string) []string {
	lowered := strings.ToLower(text)
	found := make(map[int]struct{})

	for i, skill := range e.lowered {
		if containsWord(lowered, skill) {
			found[i] = struct{}{}
		}
	}

	lines := splitLines(text)
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "skill") {
			continue
		}
		end := min(i+skillsBlockLines, len(lines))
		block := strings.ToLower(strings.Join(lines[i:end], " "))
		for _, tok := range strings.FieldsFunc(block, isTokenSeparator) {
			tok = strings.TrimSpace(tok)
			for j, skill := range e.lowered {
				if strings.Contains(tok, skill) {
					found[j] = struct{}{}
				}
			}
		}
	}

	out := make([]string, 0, len(found))
	for i := range found {
		out = append(out, e.vocab[i])
	}
	sort.Strings(out)
	return out
}

// containsWord reports whether skill occurs in text without extending a word
// on either side. An edge of skill that is not itself a word character ("+"
// in "c++") needs no boundary on that side.
func containsWord(text, skill string) bool {
	if skill == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(skill)
	last, _ := utf8.DecodeLastRuneInString(skill)
	checkLeft := isWordRune(first)
	checkRight := isWordRune(last)

	for offset := 0; offset <= len(text)-len(skill); {
		idx := strings.Index(text[offset:], skill)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(skill)

		leftOK := true
		if checkLeft && start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:start])
			leftOK = !isWordRune(prev)
		}
		rightOK := true
		if checkRight && end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			rightOK = !isWordRune(next)
		}
		if leftOK && rightOK {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isTokenSeparator(r rune) bool {
	switch r {
	case ',', ';', '•', '\n', '-', '–', '—':
		return true
	}
	return false
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
