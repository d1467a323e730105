package validate

import (
	"pr-review-bot/internal/diff"
	"pr-review-bot/internal/observability"
	"pr-review-bot/internal/oracle"
)

// Comment is a finding that survived line validation, ready to publish.
type Comment struct {
	Path string
	Line int
	Body string
}

type Validator struct {
	logger *observability.Logger
}

func New(lg *observability.Logger) *Validator {
	return &Validator{logger: lg}
}

// Validate accepts a finding only when its coerced line number matches the
// old or new number of a line in the hunk that produced it. Anything else
// is an oracle hallucination and is dropped with a diagnostic.
func (v *Validator) Validate(path string, h diff.Hunk, f oracle.Finding) (Comment, bool) {

	n, ok := f.LineNumber.Int()
	if !ok {
		v.reject(path, string(f.LineNumber), "line reference not numeric")
		return Comment{}, false
	}

	if !h.Contains(n) {
		v.reject(path, string(f.LineNumber), "line not present in hunk")
		return Comment{}, false
	}

	if f.ReviewComment == "" {
		v.reject(path, string(f.LineNumber), "empty comment body")
		return Comment{}, false
	}

	return Comment{
		Path: path,
		Line: n,
		Body: f.ReviewComment,
	}, true
}

func (v *Validator) reject(path, ref, reason string) {
	observability.FindingsRejected.Inc()
	v.logger.Debug("finding rejected",
		"path", path,
		"line", ref,
		"reason", reason,
	)
}
