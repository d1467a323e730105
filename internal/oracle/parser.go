package oracle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedReply = errors.New("oracle reply is not a reviews object")

// ParseReviews validates the oracle's raw text against the reply contract.
// The returned slice is non-nil whenever the reply is well formed, so an
// explicit "no findings" reply stays distinguishable from a parse failure.
func ParseReviews(raw string) ([]Finding, error) {

	text := stripFences(raw)

	var out struct {
		Reviews *[]Finding `json:"reviews"`
	}

	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	if out.Reviews == nil {
		return nil, fmt.Errorf("%w: missing reviews field", ErrMalformedReply)
	}

	if *out.Reviews == nil {
		return []Finding{}, nil
	}

	return *out.Reviews, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, leaving bare JSON untouched.
func stripFences(s string) string {

	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")

	// Drop the language tag on the opening fence line.
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.HasPrefix(s, "{") {
		s = s[i+1:]
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
