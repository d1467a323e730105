package prompt_test

import (
	"strings"
	"testing"

	"pr-review-bot/internal/diff"
	"pr-review-bot/internal/github"
	"pr-review-bot/internal/prompt"

	"github.com/stretchr/testify/require"
)

func sampleHunk() diff.Hunk {
	return diff.Hunk{
		OldStart: 5,
		NewStart: 5,
		Lines: []diff.Line{
			{Type: diff.Context, Content: "func run() {", OldNumber: 5, NewNumber: 5},
			{Type: diff.Removed, Content: "\treturn nil", OldNumber: 6},
			{Type: diff.Added, Content: "\treturn errors.New(\"boom\")", NewNumber: 6},
		},
	}
}

func sampleMeta() github.PRMetadata {
	return github.PRMetadata{
		Owner:       "octo",
		Repo:        "widgets",
		PullNumber:  42,
		Title:       "Make run fail loudly",
		Description: "Returns an error instead of nil.",
	}
}

func TestBuild_EmbedsContext(t *testing.T) {

	b := prompt.NewBuilder("")
	out := b.Build("run.go", sampleHunk(), sampleMeta())

	require.Contains(t, out, "File: run.go")
	require.Contains(t, out, "Make run fail loudly")
	require.Contains(t, out, "Returns an error instead of nil.")

	// each diff line is annotated with its resolved number
	require.Contains(t, out, "5:  func run() {")
	require.Contains(t, out, "6: -\treturn nil")
	require.Contains(t, out, "6: +\treturn errors.New")
}

func TestBuild_EndsWithReplyContract(t *testing.T) {

	b := prompt.NewBuilder("")
	out := b.Build("run.go", sampleHunk(), sampleMeta())

	require.True(t, strings.HasSuffix(
		strings.TrimSpace(out),
		`{"reviews": [{"lineNumber": <line number>, "reviewComment": "<comment>"}]}`,
	))
}

func TestBuild_CustomTemplateKeepsContract(t *testing.T) {

	b := prompt.NewBuilder("Only flag security problems.")
	out := b.Build("run.go", sampleHunk(), sampleMeta())

	require.Contains(t, out, "Only flag security problems.")
	require.NotContains(t, out, "strict senior code reviewer")
	require.Contains(t, out, `"reviews"`)
}
