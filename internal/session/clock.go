package session

import "time"

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Clock creates the session's periodic and one shot tasks.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
	NewTimer(d time.Duration) Timer
}

type wallClock struct{}

type wallTicker struct{ *time.Ticker }

type wallTimer struct{ *time.Timer }

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) NewTicker(d time.Duration) Ticker {
	return wallTicker{time.NewTicker(d)}
}

func (wallClock) NewTimer(d time.Duration) Timer {
	return wallTimer{time.NewTimer(d)}
}

func (t wallTicker) C() <-chan time.Time { return t.Ticker.C }

func (t wallTimer) C() <-chan time.Time { return t.Timer.C }

// A nil channel blocks forever, so unarmed tasks never fire in a select
func tickerC(t Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C()
}

func timerC(t Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C()
}
