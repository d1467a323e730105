package diff

// FileDiff is one file's worth of changes. Path is empty for files with no
// destination (deletions); callers decide whether to skip those.
type FileDiff struct {
	Path  string
	Hunks []Hunk
}

type Hunk struct {
	OldStart int
	NewStart int
	Lines    []Line
}

// Line is a single diff line. OldNumber/NewNumber are 0 when the line does
// not exist on that side.
type Line struct {
	Type      LineType
	Content   string
	OldNumber int
	NewNumber int
}

type LineType string

const (
	Added   LineType = "added"
	Removed LineType = "removed"
	Context LineType = "context"
)

// Number resolves the line number used when referring to this line in a
// review comment: the new-side number when present, the old-side otherwise.
func (l Line) Number() int {
	if l.NewNumber > 0 {
		return l.NewNumber
	}
	return l.OldNumber
}

// Contains reports whether n matches the old or new number of any line in
// the hunk.
func (h Hunk) Contains(n int) bool {
	for _, l := range h.Lines {
		if n > 0 && (l.OldNumber == n || l.NewNumber == n) {
			return true
		}
	}
	return false
}
