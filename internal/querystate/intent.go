package querystate

import "github.com/ahmadalnaib/project-board/internal/listing"

// Intent asks the navigator to load URL.
type Intent struct {
	URL    string
	Params listing.QueryParams
	// Replace overwrites the current history entry instead of pushing one.
	Replace        bool
	PreserveScroll bool
	PreserveState  bool
}

// Gesture is the input event that delivered a text value.
type Gesture int

const (
	GestureKeystroke Gesture = iota
	GestureEnter
	GestureBlur
)

// Commits reports whether the gesture confirms the typed value.
func (g Gesture) Commits() bool {
	return g == GestureEnter || g == GestureBlur
}

func (g Gesture) String() string {
	switch g {
	case GestureEnter:
		return "enter"
	case GestureBlur:
		return "blur"
	default:
		return "keystroke"
	}
}
