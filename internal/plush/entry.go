package plush

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one instruction map of a genome. Instruction and UUID are always
// present; the other markers only when the generating Config asked for them.
type Entry struct {
	Instruction     any
	UUID            string
	Close           int
	Silent          bool
	RandomInsertion bool

	markers []Marker
}

// Genome is an ordered sequence of entries.
type Genome []Entry

// Keys returns the entry's keys: epigenetic markers in configured order,
// then instruction, uuid, and random-insertion when present.
func (e Entry) Keys() []Marker {
	keys := make([]Marker, 0, len(e.markers)+3)
	keys = append(keys, e.markers...)
	keys = append(keys, MarkerInstruction, MarkerUUID)
	if e.RandomInsertion {
		keys = append(keys, MarkerRandomInsertion)
	}
	return keys
}

// Has reports whether the entry carries m.
func (e Entry) Has(m Marker) bool {
	switch m {
	case MarkerInstruction, MarkerUUID:
		return true
	case MarkerRandomInsertion:
		return e.RandomInsertion
	}
	for _, have := range e.markers {
		if have == m {
			return true
		}
	}
	return false
}

// Get returns the value stored under m.
func (e Entry) Get(m Marker) (any, bool) {
	if !e.Has(m) {
		return nil, false
	}
	switch m {
	case MarkerInstruction:
		return e.Instruction, true
	case MarkerUUID:
		return e.UUID, true
	case MarkerClose:
		return e.Close, true
	case MarkerSilent:
		return e.Silent, true
	case MarkerRandomInsertion:
		return true, true
	}
	return nil, false
}

// MarshalJSON writes the entry as an object with keys in Keys order.
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range e.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, _ := e.Get(key)
		k, err := json.Marshal(string(key))
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
