package board

import "fmt"

// InvalidColumnError reports a column identifier outside the known
// stage set. It indicates a caller bug, not a recoverable condition.
type InvalidColumnError struct {
	Column string
}

func (e InvalidColumnError) Error() string {
	return fmt.Sprintf("invalid column %q", e.Column)
}

// IndexOutOfRangeError reports an index that was invalid for its column
// at call time, typically from stale drag-and-drop coordinates.
type IndexOutOfRangeError struct {
	Column string
	Index  int
	Length int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for column %q of length %d", e.Index, e.Column, e.Length)
}
