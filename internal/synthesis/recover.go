package synthesis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// The summarizer gives no structural guarantee over its output, so parsing
// runs through an ordered cascade of attempts. Each step is tried only when
// the previous one failed; the first success wins.

type parseAttempt func(string) (string, bool)

var parseAttempts = []parseAttempt{
	passthrough,
	stripCodeFences,
	extractBalancedObject,
	stripTrailingCommas,
}

// recoverJSON decodes raw summarizer output into v, trying each recovery
// step in order.
func recoverJSON(raw string, v any) error {
	candidate := raw
	var lastErr error
	for _, attempt := range parseAttempts {
		next, ok := attempt(candidate)
		if !ok {
			continue
		}
		candidate = next
		if err := json.Unmarshal([]byte(candidate), v); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no parseable content")
	}
	return fmt.Errorf("recover summarizer output: %w", lastErr)
}

func passthrough(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// stripCodeFences removes a markdown fence wrapper, tolerating a language
// tag after the opening fence and prose around the block.
func stripCodeFences(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		// drop the language tag line, e.g. ```json
		if firstLine := strings.TrimSpace(rest[:nl]); len(firstLine) > 0 && !strings.ContainsAny(firstLine, "{[") {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		end = len(rest)
	}
	body := strings.TrimSpace(rest[:end])
	return body, body != ""
}

// extractBalancedObject returns the first balanced brace-delimited substring
// by depth counting, skipping braces inside JSON strings.
func extractBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
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
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// stripTrailingCommas drops commas immediately before a closing bracket or
// brace, a common model output defect.
func stripTrailingCommas(s string) (string, bool) {
	fixed := trailingCommaRe.ReplaceAllString(s, "$1")
	return fixed, fixed != s
}
