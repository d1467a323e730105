package diff

import (
	"bufio"
	"fmt"
	"strings"
)

// Parse turns unified-diff text into the per-file, per-hunk model. An empty
// patch yields an empty slice. A hunk header that cannot be tokenized is a
// hard error: nothing partial is returned.
func Parse(patch string) ([]FileDiff, error) {

	var files []FileDiff
	var current *FileDiff
	var hunk *Hunk

	// Running line cursors for the hunk being filled.
	var oldCursor, newCursor int

	flushHunk := func() {
		if current != nil && hunk != nil {
			current.Hunks = append(current.Hunks, *hunk)
		}
		hunk = nil
	}

	flushFile := func() {
		flushHunk()
		if current != nil {
			files = append(files, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(patch))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		// New file
		if strings.HasPrefix(line, "diff --git") {
			flushFile()
			current = &FileDiff{}
			continue
		}

		// Destination filename. "+++ /dev/null" means the file was
		// deleted; its Path stays empty.
		if strings.HasPrefix(line, "+++ ") {
			if current == nil {
				// Diff without a "diff --git" preamble (e.g. a bare
				// per-file patch from the files API).
				current = &FileDiff{}
			}
			if name, ok := strings.CutPrefix(line, "+++ b/"); ok {
				current.Path = name
			}
			continue
		}

		if strings.HasPrefix(line, "--- ") {
			continue
		}

		// Hunk start
		if strings.HasPrefix(line, "@@") {
			if current == nil {
				return nil, fmt.Errorf("hunk header before file header: %q", line)
			}

			h, err := parseHunkHeader(line)
			if err != nil {
				return nil, err
			}

			flushHunk()
			hunk = &h
			oldCursor = h.OldStart
			newCursor = h.NewStart
			continue
		}

		// "\ No newline at end of file" is metadata; counting it as a
		// context line would shift every later line number in the hunk.
		if strings.HasPrefix(line, `\`) {
			continue
		}

		// Content lines
		if hunk != nil {
			l := parseLine(line, &oldCursor, &newCursor)
			hunk.Lines = append(hunk.Lines, l)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan patch: %w", err)
	}

	flushFile()

	return files, nil
}
