package input

import (
	"encoding/binary"
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"syscall"
)

// From linux/input-event-codes.h
const (
	evKey = 0x01

	keyReleased = 0
	keyPressed  = 1
)

var evdevKeys = map[uint16]string{
	1: KeyEscape, 28: KeyEnter, 57: KeySpace,
	2: "1", 3: "2", 4: "3", 5: "4", 6: "5", 7: "6", 8: "7", 9: "8", 10: "9", 11: "0",
	16: "q", 17: "w", 18: "e", 19: "r", 20: "t", 21: "y", 22: "u", 23: "i", 24: "o", 25: "p",
	30: "a", 31: "s", 32: "d", 33: "f", 34: "g", 35: "h", 36: "j", 37: "k", 38: "l", 39: ";",
	44: "z", 45: "x", 46: "c", 47: "v", 48: "b", 49: "n", 50: "m", 51: ",", 52: ".", 53: "/",
}

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Device reads a Linux evdev keyboard, which reports real key releases.
type Device struct {
	file   *os.File
	events chan Event
	once   sync.Once
}

func OpenDevice(kbd string) (*Device, error) {
	file, err := os.Open(kbd)
	if err != nil {
		return nil, err
	}
	d := &Device{file: file, events: make(chan Event, 128)}
	go func() {
		defer close(d.events)
		if err := readEvents(file, d.events); nil != err && !errors.Is(err, os.ErrClosed) {
			log.Println(err, "unable to read keyboard input")
		}
	}()
	return d, nil
}

// readEvents decodes evdev records until r fails. Repeats and unknown
// codes are dropped.
func readEvents(r io.Reader, events chan<- Event) error {
	var ev keyEvent
	for {
		if err := binary.Read(r, binary.LittleEndian, &ev); nil != err {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if ev.Type != evKey || (ev.Value != keyPressed && ev.Value != keyReleased) {
			continue
		}
		key, ok := evdevKeys[ev.Code]
		if !ok {
			continue
		}
		events <- Event{Key: key, Down: ev.Value == keyPressed}
	}
}

func (d *Device) Events() <-chan Event {
	return d.events
}

func (d *Device) Close() error {
	var err error
	d.once.Do(func() {
		err = d.file.Close()
	})
	return err
}
