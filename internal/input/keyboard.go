package input

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
)

// Keyboard reads the controlling terminal. Terminals only report presses,
// so every press is followed by a release after the hold time.
type Keyboard struct {
	hold   time.Duration
	events chan Event
	done   chan struct{}
	once   sync.Once

	// Pending release per key, guarded by mu
	mu       sync.Mutex
	releases map[string]*time.Timer
}

func newKeyboard(hold time.Duration) *Keyboard {
	return &Keyboard{
		hold:     hold,
		events:   make(chan Event, 128),
		done:     make(chan struct{}),
		releases: map[string]*time.Timer{},
	}
}

func OpenKeyboard(hold time.Duration) (*Keyboard, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	k := newKeyboard(hold)
	go k.read(keys)
	return k, nil
}

func (k *Keyboard) read(keys <-chan keyboard.KeyEvent) {
	for {
		select {
		case <-k.done:
			return
		case ev, ok := <-keys:
			if !ok {
				return
			}
			if nil != ev.Err {
				log.Println("unable to read key", ev.Err)
				continue
			}
			key, ok := translate(ev)
			if !ok {
				continue
			}
			k.press(key)
		}
	}
}

// press sends a key down and schedules its release. A repeated press
// before the release pushes the release back instead of adding another.
func (k *Keyboard) press(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if t, ok := k.releases[key]; ok {
		t.Stop()
	}
	k.send(Event{Key: key, Down: true})

	var t *time.Timer
	t = time.AfterFunc(k.hold, func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		// A later press replaced this release
		if k.releases[key] != t {
			return
		}
		delete(k.releases, key)
		k.send(Event{Key: key, Down: false})
	})
	k.releases[key] = t
}

func (k *Keyboard) send(ev Event) {
	select {
	case k.events <- ev:
	case <-k.done:
	}
}

// translate maps a terminal key to the names used in bindings.
func translate(ev keyboard.KeyEvent) (string, bool) {
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return KeyEscape, true
	case keyboard.KeySpace:
		return KeySpace, true
	case keyboard.KeyEnter:
		return KeyEnter, true
	}
	if ev.Rune == 0 {
		return "", false
	}
	return strings.ToLower(string(ev.Rune)), true
}

func (k *Keyboard) Events() <-chan Event {
	return k.events
}

func (k *Keyboard) Close() error {
	var err error
	k.once.Do(func() {
		close(k.done)
		k.mu.Lock()
		for _, t := range k.releases {
			t.Stop()
		}
		k.mu.Unlock()
		err = keyboard.Close()
	})
	return err
}
