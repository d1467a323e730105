package oracle

import (
	"strconv"
	"strings"
)

// Finding is one raw review remark from the oracle. Untrusted: the line may
// not exist in the diff, the comment may be empty.
type Finding struct {
	LineNumber    LineRef `json:"lineNumber"`
	ReviewComment string  `json:"reviewComment"`
}

// LineRef accepts both JSON numbers and numeric strings, since oracles emit
// either ("11" and 11 are equally common).
type LineRef string

func (r *LineRef) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	*r = LineRef(s)
	return nil
}

// Int coerces the reference to a positive line number.
func (r LineRef) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(r)))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
