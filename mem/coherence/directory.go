package coherence

import (
	"fmt"
	"math/bits"
)

// MaxClients is the largest number of clients a directory can track.
const MaxClients = 64

// A Directory defines how a manager encodes the set of clients that may hold
// a line.
type Directory interface {
	// Name returns a short name of the representation.
	Name() string

	// Width returns the number of bits used to store a sharer set.
	Width() int

	// NumClients returns the number of clients the directory serves.
	NumClients() int

	// Flush returns the empty sharer set.
	Flush() SharerSet

	// Push records that a client may hold the line.
	Push(s SharerSet, id ClientID) SharerSet

	// Pop records that a client no longer holds the line.
	Pop(s SharerSet, id ClientID) SharerSet

	// None returns true if no client can hold the line.
	None(s SharerSet) bool

	// One returns true if exactly one client can hold the line.
	One(s SharerSet) bool

	// Count returns how many clients may hold the line.
	Count(s SharerSet) int

	// Next returns the lowest client that may hold the line.
	Next(s SharerSet) ClientID

	// Full returns the set of clients that must be probed to reach every
	// possible holder of the line.
	Full(s SharerSet) SharerSet

	// IsFull returns true if the set covers all clients.
	IsFull(s SharerSet) bool

	// Contains returns true if the client may hold the line.
	Contains(s SharerSet, id ClientID) bool

	// Precise returns false if the representation cannot tell how many
	// clients hold a line.
	Precise() bool
}

// Members lists the clients in the set that Full returns, in ascending
// order.
func Members(d Directory, s SharerSet) []ClientID {
	targets := d.Full(s)
	ids := make([]ClientID, 0, bits.OnesCount64(uint64(targets)))

	for i := 0; i < d.NumClients(); i++ {
		if targets&(1<<uint(i)) != 0 {
			ids = append(ids, ClientID(i))
		}
	}

	return ids
}

func allClientsMask(n int) SharerSet {
	if n == MaxClients {
		return SharerSet(^uint64(0))
	}

	return SharerSet(uint64(1)<<uint(n) - 1)
}

func numClientsMustBeValid(n int) {
	if n < 1 || n > MaxClients {
		panic(fmt.Sprintf(
			"number of clients must be in [1, %d], got %d", MaxClients, n))
	}
}

type nullDirectory struct {
	numClients int
}

// NewNullDirectory creates a directory that does not track sharers. Every
// line is assumed to be held by every client.
func NewNullDirectory(numClients int) Directory {
	numClientsMustBeValid(numClients)

	return nullDirectory{numClients: numClients}
}

func (d nullDirectory) Name() string {
	return "null"
}

func (d nullDirectory) Width() int {
	return 1
}

func (d nullDirectory) NumClients() int {
	return d.numClients
}

func (d nullDirectory) Flush() SharerSet {
	return 0
}

func (d nullDirectory) Push(SharerSet, ClientID) SharerSet {
	return 0
}

func (d nullDirectory) Pop(SharerSet, ClientID) SharerSet {
	return 0
}

func (d nullDirectory) None(SharerSet) bool {
	return false
}

func (d nullDirectory) One(SharerSet) bool {
	return false
}

func (d nullDirectory) Count(SharerSet) int {
	return d.numClients
}

func (d nullDirectory) Next(SharerSet) ClientID {
	return 0
}

func (d nullDirectory) IsFull(SharerSet) bool {
	return true
}

func (d nullDirectory) Precise() bool {
	return false
}

func (d nullDirectory) Contains(SharerSet, ClientID) bool {
	return true
}

func (d nullDirectory) Full(SharerSet) SharerSet {
	return allClientsMask(d.numClients)
}

type fullDirectory struct {
	numClients int
}

// NewFullDirectory creates a directory that keeps one presence bit per
// client.
func NewFullDirectory(numClients int) Directory {
	numClientsMustBeValid(numClients)

	return fullDirectory{numClients: numClients}
}

func (d fullDirectory) Name() string {
	return "full"
}

func (d fullDirectory) Width() int {
	return d.numClients
}

func (d fullDirectory) NumClients() int {
	return d.numClients
}

func (d fullDirectory) Flush() SharerSet {
	return 0
}

func (d fullDirectory) Precise() bool {
	return true
}

func (d fullDirectory) Push(s SharerSet, id ClientID) SharerSet {
	d.idMustBeInRange(id)
	return s | 1<<uint(id)
}

func (d fullDirectory) Pop(s SharerSet, id ClientID) SharerSet {
	d.idMustBeInRange(id)
	return s &^ (1 << uint(id))
}

func (d fullDirectory) None(s SharerSet) bool {
	return s == 0
}

func (d fullDirectory) One(s SharerSet) bool {
	return bits.OnesCount64(uint64(s)) == 1
}

func (d fullDirectory) Count(s SharerSet) int {
	return bits.OnesCount64(uint64(s))
}

func (d fullDirectory) Next(s SharerSet) ClientID {
	if s == 0 {
		return 0
	}

	return ClientID(bits.TrailingZeros64(uint64(s)))
}

func (d fullDirectory) Full(s SharerSet) SharerSet {
	return s
}

func (d fullDirectory) IsFull(s SharerSet) bool {
	return s == allClientsMask(d.numClients)
}

func (d fullDirectory) Contains(s SharerSet, id ClientID) bool {
	d.idMustBeInRange(id)
	return s&(1<<uint(id)) != 0
}

func (d fullDirectory) idMustBeInRange(id ClientID) {
	if id < 0 || int(id) >= d.numClients {
		panic(fmt.Sprintf(
			"client %d is out of range, directory has %d clients",
			id, d.numClients))
	}
}
