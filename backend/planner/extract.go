package planner

import "strings"

// Extractor finds a JSON object inside free-form model output.
type Extractor interface {
	Extract(text string) (string, bool)
}

// BraceExtractor takes everything from the first '{' to the last '}'. Prose
// around the object is ignored; braces inside the prose are not.
type BraceExtractor struct{}

func (BraceExtractor) Extract(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}

// BalancedExtractor returns the first complete top-level object, counting
// braces outside of JSON strings. A '{' that starts no complete object is
// skipped and the scan resumes at the next one.
type BalancedExtractor struct{}

func (BalancedExtractor) Extract(text string) (string, bool) {
	for offset := 0; offset < len(text); {
		i := strings.IndexByte(text[offset:], '{')
		if i < 0 {
			break
		}
		start := offset + i
		if end, ok := balancedEnd(text, start); ok {
			return text[start : end+1], true
		}
		offset = start + 1
	}
	return "", false
}

// balancedEnd returns the index of the '}' closing the object at text[start].
func balancedEnd(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
