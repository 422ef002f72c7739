package game

import (
	"errors"
	"fmt"
)

// Binding ties an input key to a lane and its colours.
type Binding struct {
	Key    string
	Column int
	Body   string // Note colour, as #rrggbb
	Zone   string // Hit zone colour while pressed
}

// Bindings is indexed by column.
type Bindings []Binding

var (
	bodyColors = [...]string{"#ffb3b3", "#b3ffb3", "#b3b3ff", "#f3b3ff"}
	zoneColors = [...]string{"#ff9999", "#99ff99", "#9999ff", "#d9aaff"}
)

// DefaultKeys are used when no keys are configured
const DefaultKeys = "asdf"

// NewBindings assigns each key, in order, to a column.
func NewBindings(keys []string) (Bindings, error) {
	if len(keys) == 0 {
		return nil, errors.New("no keys to bind")
	}
	if len(keys) > len(bodyColors) {
		return nil, fmt.Errorf("at most %v columns are supported", len(bodyColors))
	}
	seen := map[string]bool{}
	b := make(Bindings, len(keys))
	for i, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("empty key for column %v", i)
		}
		if seen[k] {
			return nil, fmt.Errorf("key %q bound twice", k)
		}
		seen[k] = true
		b[i] = Binding{Key: k, Column: i, Body: bodyColors[i], Zone: zoneColors[i]}
	}
	return b, nil
}

// Column returns the column bound to key.
func (b Bindings) Column(key string) (int, bool) {
	for _, bd := range b {
		if bd.Key == key {
			return bd.Column, true
		}
	}
	return -1, false
}

// Rebind moves key to column. A key already on another column swaps with
// the column's current key, so every column stays bound.
func (b Bindings) Rebind(column int, key string) error {
	if column < 0 || column >= len(b) {
		return fmt.Errorf("column %v out of range", column)
	}
	if key == "" {
		return errors.New("empty key")
	}
	if other, ok := b.Column(key); ok {
		b[other].Key = b[column].Key
	}
	b[column].Key = key
	return nil
}
