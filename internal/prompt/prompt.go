package prompt

import (
	"strconv"
	"strings"

	"pr-review-bot/internal/diff"
	"pr-review-bot/internal/github"
)

const DefaultTemplate = `You are a strict senior code reviewer. Review the pull request diff below.

- Only comment on real problems: bugs, security issues, performance traps, broken error handling.
- Do not compliment the code. Do not comment on lines outside the diff.
- If there is nothing worth flagging, return an empty "reviews" array.`

// responseContract terminates every prompt, including operator-supplied
// templates. Its JSON shape is the only contract the reply parser accepts.
const responseContract = `Respond with JSON only, in exactly this format:
{"reviews": [{"lineNumber": <line number>, "reviewComment": "<comment>"}]}`

type Builder struct {
	template string
}

// NewBuilder uses tmpl when non-empty, the default instructions otherwise.
func NewBuilder(tmpl string) *Builder {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultTemplate
	}
	return &Builder{template: tmpl}
}

// Build assembles the oracle prompt for one hunk. Pure string construction.
func (b *Builder) Build(path string, h diff.Hunk, meta github.PRMetadata) string {

	var sb strings.Builder

	sb.WriteString(b.template)
	sb.WriteString("\n\n")

	sb.WriteString("Pull request: " + meta.Title + "\n")
	if meta.Description != "" {
		sb.WriteString("Description:\n" + meta.Description + "\n")
	}
	sb.WriteString("Pull request number: " + strconv.Itoa(meta.PullNumber) + "\n")

	sb.WriteString("\nFile: " + path + "\n")
	sb.WriteString("\nDiff (each line prefixed with its line number):\n")
	sb.WriteString(h.Annotated())

	sb.WriteString("\n" + responseContract)

	return sb.String()
}
