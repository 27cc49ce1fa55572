package core

import (
	"github.com/rsp64/rsp/decode"
)

// ifrdLatch holds what IF produced for RD to classify next cycle: the two
// fetched instruction words and the program counter they were fetched
// from (spec §3: "(IF→RD) the two fetched instruction words and the
// fetch program counter").
type ifrdLatch struct {
	Words [2]uint32
	PC    uint32
	Valid bool
}

// rdexLatch holds what RD chose to hand to scalar EX: the instruction
// word, its decoded opcode, and the PC that branch/link math starts from
// (spec §3: "a mutable reference to the program counter for branch
// writes"). Branch writes take effect on the next IF by writing the
// Chip's fetch PC directly rather than through a raw pointer into a
// sibling latch (spec §9 design note).
type rdexLatch struct {
	Word   uint32
	Op     decode.ScalarOp
	PC     uint32 // PC of the instruction after this one's delay slot (for branch/link math).
	Valid  bool
	VecOp  decode.VectorOp
	VecW   uint32
	VecOK  bool
}

// memFunc tags which memory operation the DF stage should run for a
// pending EX→DF descriptor (spec §4.3).
type memFunc int

const (
	memNone memFunc = iota
	memLB
	memLBU
	memLH
	memLHU
	memLW
	memSB
	memSH
	memSW
	memVec // vector load/store; VecOp in the descriptor selects the family.
)

// exdfLatch holds the pending memory operation descriptor and the
// pending scalar result produced by EX, to be consumed by DF and WB
// respectively (spec §3, §4.3).
type exdfLatch struct {
	Valid bool

	// Pending memory access (filled by EX, executed by DF).
	MemOp     memFunc
	VecMemOp  decode.VectorOp
	Addr      uint32 // effective address, already offset/shifted.
	Element   uint32 // vector element index, where applicable.
	StoreData uint32 // scalar store payload.
	VecReg    uint32 // destination/source vector register for vector mem ops.
	ScalarDst int     // destination register slot for a scalar load (0 for other ops).

	// Pending scalar ALU result (when there is no memory op, or in
	// addition to one that doesn't produce a register result).
	HasResult bool
	Dest      int
	Data      uint32
}

// dfwbLatch holds the scalar result DF hands to WB for commit (spec §3).
type dfwbLatch struct {
	Valid bool
	Dest  int
	Data  uint32
}
