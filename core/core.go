// Package core implements the scalar+vector dual-issue pipeline: the
// five-stage IF/RD/EX/DF/WB pipeline and its latches, the scalar ALU, the
// memory unit's deferred-descriptor load/store execution, and the
// host-visible interface (program counter write, control-register
// window, instruction-memory byte-swap) described in spec.md §3, §4, §6.
package core

import (
	"fmt"

	"github.com/rsp64/rsp/cp0"
	"github.com/rsp64/rsp/dpc"
	"github.com/rsp64/rsp/dram"
	"github.com/rsp64/rsp/irq"
	"github.com/rsp64/rsp/memory"
	"github.com/rsp64/rsp/vector"
)

// NumScalarRegisters is the size of the scalar register file, not
// counting the hidden "no destination" slot (spec §3).
const NumScalarRegisters = 32

// noDest is the hidden register-file slot past the 32 architectural
// registers. The scalar EX stage does not name it: an instruction with no
// scalar result leaves exdfLatch.HasResult false instead (spec §3: "An additional hidden
// slot is reserved so that an instruction that does not produce a result
// may name it as its destination without a branch").
const noDest = NumScalarRegisters

// inImemBit marks a program-counter value as addressing instruction
// memory (spec §3, §6).
const inImemBit = 0x1000

// pcMask masks a program counter to its 12 valid low bits.
const pcMask = 0xFFF

// InvalidCoreState represents an internal precondition violated: Tick
// called out of sequence, or an opcode-table entry that was supposed to
// be constant turned out not to be. Mirrors the teacher's
// cpu.InvalidCPUState (spec.md Non-goals don't cover this — it is an
// implementation bug indicator, not a simulated hardware fault).
type InvalidCoreState struct {
	Reason string
}

func (e InvalidCoreState) Error() string {
	return fmt.Sprintf("invalid core state: %s", e.Reason)
}

// Halted is returned by Tick once HALT has latched (spec §5, §7: "the
// tick function, once HALT is set, returns immediately on each call
// thereafter until HALT is cleared").
type Halted struct{}

func (Halted) Error() string { return "core halted (BREAK executed)" }

// Chip holds all core architectural state: the scalar register file, the
// vector coprocessor, the control coprocessor, the two 4 KiB memories,
// the program counter, and the four pipeline latches.
type Chip struct {
	regs [NumScalarRegisters + 1]uint32 // regs[noDest] is scratch, never read back.

	Vector *vector.Unit
	CP0    *cp0.Unit

	IMem memory.Bank
	DMem memory.Bank

	pc uint32 // fetch PC for the next IF (spec §3, §6).

	ifrd ifrdLatch
	rdex rdexLatch
	exdf exdfLatch
	dfwb dfwbLatch

	inDelaySlot bool
}

// ChipDef wires a Chip to its external collaborators.
type ChipDef struct {
	Companion dpc.Companion
	DRAM      dram.Bus
}

// New returns a powered-on Chip with its own 4 KiB instruction and data
// memories, reset to start fetching at the beginning of instruction
// memory.
func New(def *ChipDef) *Chip {
	c := &Chip{
		Vector: vector.New(),
		IMem:   memory.New(),
		DMem:   memory.New(),
	}
	c.CP0 = cp0.New(def.Companion, def.DRAM, c.IMem, c.DMem)
	c.ResetPC(0)
	return c
}

// ResetPC implements the program-counter register write (spec §6):
// "Writing it resets the pipeline to an initial state and sets the fetch
// program counter to (value & 0xFFC) | 0x1000."
func (c *Chip) ResetPC(value uint32) {
	c.pc = (value & 0xFFC) | inImemBit
	c.ifrd = ifrdLatch{}
	c.rdex = rdexLatch{}
	c.exdf = exdfLatch{}
	c.dfwb = dfwbLatch{}
	c.inDelaySlot = false
}

// PC returns the current fetch program counter.
func (c *Chip) PC() uint32 { return c.pc }

// regRead returns the value of scalar register r, forcing register 0 to
// read as zero (spec §3 invariant).
func (c *Chip) regRead(r uint32) uint32 {
	if r == 0 {
		return 0
	}
	return c.regs[r]
}

// regWrite stores val into scalar register dest, silently discarding
// writes to register 0 or the hidden no-destination slot (spec §3, §4.6:
// "writes to register 0 are silently ignored by always writing the
// sentinel slot").
func (c *Chip) regWrite(dest int, val uint32) {
	if dest == 0 {
		return
	}
	c.regs[dest] = val
}

// Reg returns the architectural value of scalar register r (host-visible
// introspection, e.g. for tests and debugging).
func (c *Chip) Reg(r int) uint32 {
	if r == 0 {
		return 0
	}
	return c.regs[r]
}

// String dumps the core's scalar register file and PC, matching the
// teacher's Chip.Debug()/String() convention.
func (c *Chip) String() string {
	s := fmt.Sprintf("PC=%.4X\n", c.pc)
	for i := 0; i < NumScalarRegisters; i++ {
		s += fmt.Sprintf("r%.2d=%.8X ", i, c.regs[i])
		if i%4 == 3 {
			s += "\n"
		}
	}
	return s
}

// Halted reports whether the core has halted via BREAK.
func (c *Chip) Halted() bool { return c.CP0.Halted() }

// Raised implements irq.Sender by forwarding to CP0's interrupt line.
func (c *Chip) Raised() bool { return c.CP0.Raised() }

var _ irq.Sender = (*Chip)(nil)
