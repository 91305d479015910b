package coherence

import "fmt"

// MemCmd is the kind of memory operation a processor or a cache controller
// performs on a cache line.
type MemCmd uint8

// A list of all the memory operations.
const (
	CmdRead             MemCmd = 0
	CmdWrite            MemCmd = 1
	CmdPrefetchRead     MemCmd = 2
	CmdPrefetchWrite    MemCmd = 3
	CmdAtomicSwap       MemCmd = 4
	CmdNop              MemCmd = 5
	CmdLoadReserved     MemCmd = 6
	CmdStoreConditional MemCmd = 7
	CmdAtomicAdd        MemCmd = 8
	CmdAtomicXor        MemCmd = 9
	CmdAtomicOr         MemCmd = 10
	CmdAtomicAnd        MemCmd = 11
	CmdAtomicMin        MemCmd = 12
	CmdAtomicMax        MemCmd = 13
	CmdAtomicMinU       MemCmd = 14
	CmdAtomicMaxU       MemCmd = 15
	CmdFlush            MemCmd = 16
	CmdProduce          MemCmd = 17
	CmdClean            MemCmd = 19
)

var cmdNames = map[MemCmd]string{
	CmdRead:             "Read",
	CmdWrite:            "Write",
	CmdPrefetchRead:     "PrefetchRead",
	CmdPrefetchWrite:    "PrefetchWrite",
	CmdAtomicSwap:       "AtomicSwap",
	CmdNop:              "Nop",
	CmdLoadReserved:     "LoadReserved",
	CmdStoreConditional: "StoreConditional",
	CmdAtomicAdd:        "AtomicAdd",
	CmdAtomicXor:        "AtomicXor",
	CmdAtomicOr:         "AtomicOr",
	CmdAtomicAnd:        "AtomicAnd",
	CmdAtomicMin:        "AtomicMin",
	CmdAtomicMax:        "AtomicMax",
	CmdAtomicMinU:       "AtomicMinU",
	CmdAtomicMaxU:       "AtomicMaxU",
	CmdFlush:            "Flush",
	CmdProduce:          "Produce",
	CmdClean:            "Clean",
}

// AllCmds returns every defined memory operation in ascending code order.
func AllCmds() []MemCmd {
	cmds := make([]MemCmd, 0, len(cmdNames))
	for c := MemCmd(0); c <= CmdClean; c++ {
		if _, ok := cmdNames[c]; ok {
			cmds = append(cmds, c)
		}
	}

	return cmds
}

func (c MemCmd) String() string {
	if name, ok := cmdNames[c]; ok {
		return name
	}

	return fmt.Sprintf("MemCmd(%d)", uint8(c))
}

// IsAtomic returns true if the command is a read-modify-write atomic.
func (c MemCmd) IsAtomic() bool {
	return c == CmdAtomicSwap || (c >= CmdAtomicAdd && c <= CmdAtomicMaxU)
}

// IsPrefetch returns true for prefetch hints.
func (c MemCmd) IsPrefetch() bool {
	return c == CmdPrefetchRead || c == CmdPrefetchWrite
}

// IsRead returns true if the command returns data to the processor.
func (c MemCmd) IsRead() bool {
	return c == CmdRead ||
		c == CmdLoadReserved ||
		c == CmdStoreConditional ||
		c.IsAtomic()
}

// IsWrite returns true if the command modifies the line.
func (c MemCmd) IsWrite() bool {
	return c == CmdWrite || c == CmdStoreConditional || c.IsAtomic()
}

// IsWriteIntent returns true if the command needs write permission, even if
// it does not modify the line right away.
func (c MemCmd) IsWriteIntent() bool {
	return c.IsWrite() || c == CmdPrefetchWrite || c == CmdLoadReserved
}

// IsCacheControl returns true for the maintenance operations.
func (c MemCmd) IsCacheControl() bool {
	return c == CmdFlush || c == CmdProduce || c == CmdClean
}
