package input

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/eiannone/keyboard"
)

var translateTests = map[keyboard.KeyEvent]string{
	{Rune: 'a'}:                "a",
	{Rune: 'F'}:                "f",
	{Rune: 'p'}:                "p",
	{Key: keyboard.KeyEsc}:     KeyEscape,
	{Key: keyboard.KeyCtrlC}:   KeyEscape,
	{Key: keyboard.KeySpace}:   KeySpace,
	{Key: keyboard.KeyEnter}:   KeyEnter,
	{Key: keyboard.KeyArrowUp}: "",
}

func TestTranslate(t *testing.T) {
	for ev, expected := range translateTests {
		key, ok := translate(ev)
		if key != expected || ok != (expected != "") {
			t.Log("event   ", ev)
			t.Log("key     ", key, ok)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestReadEvents(t *testing.T) {
	var buf bytes.Buffer
	for _, ev := range []keyEvent{
		{Type: evKey, Code: 30, Value: keyPressed},
		{Type: evKey, Code: 30, Value: 2}, // repeat
		{Type: 0x04, Code: 4, Value: 30},  // scan code
		{Type: evKey, Code: 240, Value: keyPressed},
		{Type: evKey, Code: 30, Value: keyReleased},
		{Type: evKey, Code: 1, Value: keyPressed},
	} {
		if err := binary.Write(&buf, binary.LittleEndian, ev); nil != err {
			t.Fatal(err)
		}
	}

	events := make(chan Event, 16)
	if err := readEvents(&buf, events); nil != err {
		t.Fatal(err)
	}
	close(events)

	expected := []Event{{"a", true}, {"a", false}, {KeyEscape, true}}
	i := 0
	for ev := range events {
		if i >= len(expected) || ev != expected[i] {
			t.Errorf("event %v is %+v", i, ev)
		}
		i++
	}
	if i != len(expected) {
		t.Errorf("read %v events, expected %v", i, len(expected))
	}
}

func TestRepeatedPressDelaysRelease(t *testing.T) {
	hold := 200 * time.Millisecond
	k := newKeyboard(hold)
	defer close(k.done)

	k.press("a")
	time.Sleep(hold / 2)
	k.press("a")
	for i := 0; i < 2; i++ {
		if ev := <-k.events; ev != (Event{Key: "a", Down: true}) {
			t.Fatalf("unexpected event %v", ev)
		}
	}

	// The first press's release would have landed in this window
	select {
	case ev := <-k.events:
		t.Fatalf("released early with %v", ev)
	case <-time.After(hold * 3 / 4):
	}

	select {
	case ev := <-k.events:
		if ev != (Event{Key: "a", Down: false}) {
			t.Errorf("unexpected event %v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("key was never released")
	}
	select {
	case ev := <-k.events:
		t.Errorf("extra event %v", ev)
	case <-time.After(hold):
	}
}
