// Package serializer splits coherence message payloads into beats and puts
// them back together.
package serializer

import "fmt"

// Beat is one fragment of a payload.
type Beat struct {
	Index int
	Data  []byte
	Done  bool
}

// Serializer splits payloads into a fixed number of beats. It is
// flow-through: the first beat is available as soon as the payload is
// accepted.
type Serializer struct {
	beatSize int
	numBeats int

	payload []byte
	busy    bool
	next    int
}

// NumBeats returns the number of beats in a full payload.
func (s *Serializer) NumBeats() int {
	return s.numBeats
}

// CanAccept checks if the serializer is free to take a new payload.
func (s *Serializer) CanAccept() bool {
	return !s.busy
}

// Accept takes a payload. A nil payload stands for a message without data and
// leaves as a single beat. Accept panics if the serializer is busy or the
// payload size does not match.
func (s *Serializer) Accept(payload []byte) {
	if s.busy {
		panic("serializer is busy")
	}

	if payload != nil && len(payload) != s.beatSize*s.numBeats {
		panic(fmt.Sprintf("payload has %d bytes, expected %d",
			len(payload), s.beatSize*s.numBeats))
	}

	s.payload = payload
	s.busy = true
	s.next = 0
}

// Peek returns the beat that is ready to leave, if any.
func (s *Serializer) Peek() (Beat, bool) {
	if !s.busy {
		return Beat{}, false
	}

	if s.payload == nil {
		return Beat{Index: 0, Done: true}, true
	}

	start := s.next * s.beatSize
	data := make([]byte, s.beatSize)
	copy(data, s.payload[start:start+s.beatSize])

	return Beat{
		Index: s.next,
		Data:  data,
		Done:  s.next == s.numBeats-1,
	}, true
}

// Pop removes the ready beat and returns it.
func (s *Serializer) Pop() (Beat, bool) {
	beat, ok := s.Peek()
	if !ok {
		return Beat{}, false
	}

	s.next++
	if beat.Done {
		s.busy = false
		s.payload = nil
	}

	return beat, true
}

// Deserializer collects beats until a payload is complete.
type Deserializer struct {
	beatSize int
	numBeats int

	buf  []byte
	next int
}

// Push adds a beat. It returns the whole payload when the beat completes it.
// Beats must arrive in the order they were emitted.
func (d *Deserializer) Push(beat Beat) (payload []byte, done bool) {
	if beat.Data == nil {
		if !beat.Done || d.next != 0 {
			panic("data-less beat in the middle of a payload")
		}

		return nil, true
	}

	if beat.Index != d.next {
		panic(fmt.Sprintf("beat %d arrived, expected beat %d",
			beat.Index, d.next))
	}

	if len(beat.Data) != d.beatSize {
		panic(fmt.Sprintf("beat has %d bytes, expected %d",
			len(beat.Data), d.beatSize))
	}

	d.buf = append(d.buf, beat.Data...)
	d.next++

	if d.next < d.numBeats {
		return nil, false
	}

	payload = d.buf
	d.buf = nil
	d.next = 0

	return payload, true
}
