package src

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

func emptyReview() Review {
	return Review{
		Crashes:    []Suggestion{},
		Experience: []Suggestion{},
		Other:      []Suggestion{},
	}
}

// sanitizeReview normalizes a decoded review: nil slices become empty,
// blank suggestions are dropped, missing ids are filled positionally.
func sanitizeReview(r Review) Review {
	return Review{
		Crashes:    fillSuggestions("crash", r.Crashes),
		Experience: fillSuggestions("exp", r.Experience),
		Other:      fillSuggestions("other", r.Other),
	}
}

func fillSuggestions(prefix string, in []Suggestion) []Suggestion {
	out := make([]Suggestion, 0, len(in))
	for i, s := range in {
		if strings.TrimSpace(s.Description) == "" {
			continue
		}
		if s.ID == "" {
			s.ID = fmt.Sprintf("%s-%d", prefix, i+1)
		}
		out = append(out, s)
	}
	return out
}

// decodeReview absorbs every review shape older persisted data carries:
// absent or null, a bare string (pre-structured reviews), or the current
// object form. Anything unreadable degrades to an empty review rather than
// failing the whole load.
func decodeReview(raw json.RawMessage) Review {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return emptyReview()
	}
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		r := emptyReview()
		if strings.TrimSpace(legacy) != "" {
			r.Other = []Suggestion{{ID: "other-1", Description: legacy}}
		}
		return r
	}
	var r Review
	if err := json.Unmarshal(raw, &r); err == nil {
		return sanitizeReview(r)
	}
	return emptyReview()
}

func sortedStrings(in []string) []string {
	sort.Strings(in)
	return in
}
