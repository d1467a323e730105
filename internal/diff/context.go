package diff

import (
	"strconv"
	"strings"
)

// Annotated renders the hunk for the oracle prompt: each line carries its
// resolved number so replies can reference lines the validator will accept.
func (h Hunk) Annotated() string {

	var b strings.Builder

	for _, l := range h.Lines {

		prefix := " "
		if l.Type == Added {
			prefix = "+"
		}
		if l.Type == Removed {
			prefix = "-"
		}

		b.WriteString(strconv.Itoa(l.Number()))
		b.WriteString(": ")
		b.WriteString(prefix)
		b.WriteString(l.Content)
		b.WriteString("\n")
	}

	return b.String()
}
