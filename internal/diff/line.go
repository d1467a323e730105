package diff

func parseLine(raw string, oldCursor, newCursor *int) Line {

	if len(raw) == 0 {
		l := Line{
			Type:      Context,
			Content:   "",
			OldNumber: *oldCursor,
			NewNumber: *newCursor,
		}
		*oldCursor++
		*newCursor++
		return l
	}

	switch raw[0] {

	case '+':
		l := Line{
			Type:      Added,
			Content:   raw[1:],
			NewNumber: *newCursor,
		}
		*newCursor++
		return l

	case '-':
		l := Line{
			Type:      Removed,
			Content:   raw[1:],
			OldNumber: *oldCursor,
		}
		*oldCursor++
		return l

	default:
		l := Line{
			Type:      Context,
			Content:   raw[1:],
			OldNumber: *oldCursor,
			NewNumber: *newCursor,
		}
		*oldCursor++
		*newCursor++
		return l
	}
}
