package serializer

import "fmt"

// A Builder can build serializers and deserializers.
type Builder struct {
	byteSize int
	numBeats int
}

// MakeBuilder creates a builder that splits 64-byte blocks into 4 beats.
func MakeBuilder() Builder {
	return Builder{
		byteSize: 64,
		numBeats: 4,
	}
}

// WithByteSize sets the number of bytes in a full payload.
func (b Builder) WithByteSize(n int) Builder {
	b.byteSize = n
	return b
}

// WithNumBeats sets the number of beats a payload is split into.
func (b Builder) WithNumBeats(n int) Builder {
	b.numBeats = n
	return b
}

func (b Builder) mustBeValid() {
	if b.numBeats < 1 {
		panic(fmt.Sprintf("number of beats must be positive, got %d",
			b.numBeats))
	}

	if b.byteSize < 1 {
		panic(fmt.Sprintf("byte size must be positive, got %d", b.byteSize))
	}

	if b.byteSize%b.numBeats != 0 {
		panic(fmt.Sprintf("byte size %d is not divisible by %d beats",
			b.byteSize, b.numBeats))
	}
}

// Build creates a serializer.
func (b Builder) Build() *Serializer {
	b.mustBeValid()

	return &Serializer{
		beatSize: b.byteSize / b.numBeats,
		numBeats: b.numBeats,
	}
}

// BuildDeserializer creates a deserializer that reassembles what a
// serializer with the same settings produces.
func (b Builder) BuildDeserializer() *Deserializer {
	b.mustBeValid()

	return &Deserializer{
		beatSize: b.byteSize / b.numBeats,
		numBeats: b.numBeats,
	}
}
