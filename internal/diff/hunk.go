package diff

import (
	"fmt"
	"regexp"
	"strconv"
)

var hunkRe = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

func parseHunkHeader(line string) (Hunk, error) {

	m := hunkRe.FindStringSubmatch(line)
	if m == nil {
		return Hunk{}, fmt.Errorf("malformed hunk header: %q", line)
	}

	oldStart, _ := strconv.Atoi(m[1])
	newStart, _ := strconv.Atoi(m[2])

	return Hunk{
		OldStart: oldStart,
		NewStart: newStart,
	}, nil
}
