package game

type Phase uint8

const (
	NotStarted Phase = iota
	Running
	Paused
	Ended
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	}
	return "unknown"
}
