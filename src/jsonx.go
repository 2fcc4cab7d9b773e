package src

import (
	"errors"
	"regexp"
	"strings"
)

var (
	jsonFenceRe         = regexp.MustCompile("(?is)```(?:json[c5]?|json5)?\\s*([{\\[].*?[}\\]])\\s*```")
	trailingArrayComma  = regexp.MustCompile(`,\s*\]`)
	trailingObjectComma = regexp.MustCompile(`,\s*\}`)
	backtickStringRe    = regexp.MustCompile("`([^`\\\\]*(?:\\\\.[^`\\\\]*)*)`")
)

// extractJSON pulls the first JSON object or array out of model output,
// tolerating markdown fences, surrounding prose, trailing commas and
// backtick-quoted strings. Providers disagree on how literally "STRICT
// JSON only" is taken.
func extractJSON(raw string) ([]byte, error) {
	candidate := raw

	if matches := jsonFenceRe.FindStringSubmatch(raw); len(matches) > 1 {
		candidate = matches[1]
	} else {
		start := strings.IndexAny(raw, "[{")
		if start == -1 {
			return nil, errors.New("no JSON object or array found")
		}
		end := strings.LastIndexAny(raw, "}]")
		if end == -1 || end < start {
			return nil, errors.New("no JSON object or array found")
		}
		candidate = raw[start : end+1]
	}

	jsonStr := strings.TrimSpace(candidate)
	if jsonStr == "" {
		return nil, errors.New("empty JSON payload")
	}

	jsonStr = trailingArrayComma.ReplaceAllString(jsonStr, "]")
	jsonStr = trailingObjectComma.ReplaceAllString(jsonStr, "}")

	if strings.Contains(jsonStr, "`") {
		jsonStr = backtickStringRe.ReplaceAllString(jsonStr, "\"$1\"")
	}

	if first := jsonStr[0]; first != '{' && first != '[' {
		return nil, errors.New("response did not contain JSON object or array")
	}
	return []byte(jsonStr), nil
}
