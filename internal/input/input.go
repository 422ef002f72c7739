package input

// Event is a key going down or coming back up.
type Event struct {
	Key  string
	Down bool
}

const (
	KeyEscape = "esc"
	KeySpace  = "space"
	KeyEnter  = "enter"
)

// Source delivers key events until closed.
type Source interface {
	Events() <-chan Event
	Close() error
}
