// Package cp0 implements the control coprocessor: the 16-register
// memory-mapped window controlling halt/step/interrupt, the DMA engine
// between instruction/data memory and external DRAM, the host
// synchronization semaphore, and pass-through to the companion display
// processor (spec §4.5, §6).
package cp0

import (
	"fmt"

	"github.com/rsp64/rsp/dpc"
	"github.com/rsp64/rsp/dram"
	"github.com/rsp64/rsp/memory"
)

// Register indices into the 16-entry control-coprocessor window (spec §4.5).
const (
	RegMemAddr = iota
	RegDramAddr
	RegReadLen
	RegWriteLen
	RegStatus
	RegDmaFull
	RegDmaBusy
	RegSemaphore
	// RegCmdBase through RegCmdBase+7 are the companion-processor
	// pass-through registers (CMD_START..CMD_TMEM_BUSY); see dpc.Register.
	RegCmdBase
	NumRegisters = RegCmdBase + int(dpc.NumRegisters)
)

// STATUS read bits (spec §6).
const (
	statusHalt uint32 = 1 << iota
	statusBroke
	statusDMABusy
	statusDMAFull
	statusIOFull
	statusSStep
	statusIntrBreak
	statusSig0
)

// STATUS write bit pairs: even bit clears, odd bit sets, for each of HALT,
// BROKE, interrupt, single-step, interrupt-on-break, and the eight signal
// flags (spec §4.5: "STATUS writes are split into clear/set bit pairs...").
// The exact bit assignment is this implementation's own choice — spec.md
// names the flags but not their write-bit positions.
const (
	writeHaltClr uint32 = 1 << iota
	writeHaltSet
	writeBrokeClr
	writeBrokeSet
	writeIntrClr
	writeIntrSet
	writeSStepClr
	writeSStepSet
	writeIntrBreakClr
	writeIntrBreakSet
	writeSig0Clr
	writeSig0Set
)

// ErrInconsistentWrite is the value WriteReg(RegStatus, ...) panics with
// (in debug mode only — see Unit.Debug) when a write asks to both clear and
// set the same STATUS flag in one write (spec §7: "implementation MAY
// assert; not otherwise fatal").
type ErrInconsistentWrite struct {
	Flag string
}

func (e ErrInconsistentWrite) Error() string {
	return fmt.Sprintf("status write both clears and sets %s", e.Flag)
}

// Unit holds all CP0 architectural state.
type Unit struct {
	MemAddr  uint32
	DramAddr uint32

	halt         bool
	broke        bool
	intr         bool
	sstep        bool
	intrOnBreak  bool
	sig          [8]bool
	dmaBusy      bool
	dmaFull      bool
	semaphore    uint32

	// Debug, if true, causes an inconsistent STATUS write (spec §7) to
	// panic with ErrInconsistentWrite instead of being silently ignored.
	Debug bool

	companion dpc.Companion
	dram      dram.Bus
	imem      memory.Bank
	dmem      memory.Bank
}

// New returns a powered-on control coprocessor wired to the given
// external collaborators.
func New(companion dpc.Companion, bus dram.Bus, imem, dmem memory.Bank) *Unit {
	if companion == nil {
		companion = dpc.Null{}
	}
	return &Unit{companion: companion, dram: bus, imem: imem, dmem: dmem}
}

// Raised implements irq.Sender: the external interrupt line is high when
// either the interrupt flag is set directly, or BREAK raised it with
// interrupt-on-break enabled (the latter is folded into intr by Break()).
func (u *Unit) Raised() bool {
	return u.intr
}

// Halted reports whether HALT is currently set (spec §5, §7: "the tick
// function, once HALT is set, returns immediately on each call thereafter").
func (u *Unit) Halted() bool {
	return u.halt
}

// Break implements the BREAK instruction's effect on CP0 state: sets HALT
// and BROKE, and raises the interrupt line if interrupt-on-break is
// enabled (spec §4.1, §7).
func (u *Unit) Break() {
	u.halt = true
	u.broke = true
	if u.intrOnBreak {
		u.intr = true
	}
}

// ReadReg reads the 32-bit control register at idx (spec §4.5, §6).
func (u *Unit) ReadReg(idx int) uint32 {
	switch {
	case idx == RegMemAddr:
		return u.MemAddr
	case idx == RegDramAddr:
		return u.DramAddr
	case idx == RegReadLen, idx == RegWriteLen:
		return 0
	case idx == RegStatus:
		return u.statusValue()
	case idx == RegDmaFull:
		return boolToU32(u.dmaFull)
	case idx == RegDmaBusy:
		return boolToU32(u.dmaBusy)
	case idx == RegSemaphore:
		return u.readSemaphore()
	case idx >= RegCmdBase && idx < NumRegisters:
		return u.companion.ReadRegister(dpc.Register(idx - RegCmdBase))
	default:
		return 0
	}
}

// WriteReg writes val to the 32-bit control register at idx (spec §4.5, §6).
func (u *Unit) WriteReg(idx int, val uint32) {
	switch {
	case idx == RegMemAddr:
		u.MemAddr = val
	case idx == RegDramAddr:
		u.DramAddr = val
	case idx == RegReadLen:
		u.dma(val, true)
	case idx == RegWriteLen:
		u.dma(val, false)
	case idx == RegStatus:
		u.writeStatus(val)
	case idx == RegDmaFull, idx == RegDmaBusy:
		// Read-only reflections of internal DMA state; writes ignored.
	case idx == RegSemaphore:
		if val == 0 {
			u.semaphore = 0
		}
	case idx >= RegCmdBase && idx < NumRegisters:
		u.companion.WriteRegister(dpc.Register(idx-RegCmdBase), val)
	}
}

func (u *Unit) statusValue() uint32 {
	var v uint32
	if u.halt {
		v |= statusHalt
	}
	if u.broke {
		v |= statusBroke
	}
	if u.dmaBusy {
		v |= statusDMABusy
	}
	if u.dmaFull {
		v |= statusDMAFull
	}
	// IO_FULL always reads clear: no external bus queue is modeled here
	// (spec §1 places the host bus out of scope).
	if u.sstep {
		v |= statusSStep
	}
	if u.intrOnBreak {
		v |= statusIntrBreak
	}
	for i, s := range u.sig {
		if s {
			v |= statusSig0 << uint(i)
		}
	}
	return v
}

func (u *Unit) writeStatus(val uint32) {
	clearSet := func(clr, set uint32, flag string, cur *bool) {
		c, s := val&clr != 0, val&set != 0
		if c && s {
			if u.Debug {
				panic(ErrInconsistentWrite{flag})
			}
			return
		}
		if c {
			*cur = false
		}
		if s {
			*cur = true
		}
	}
	clearSet(writeHaltClr, writeHaltSet, "HALT", &u.halt)
	clearSet(writeBrokeClr, writeBrokeSet, "BROKE", &u.broke)
	clearSet(writeIntrClr, writeIntrSet, "INTR", &u.intr)
	clearSet(writeSStepClr, writeSStepSet, "SSTEP", &u.sstep)
	clearSet(writeIntrBreakClr, writeIntrBreakSet, "INTR_BREAK", &u.intrOnBreak)
	for i := range u.sig {
		clr := writeSig0Clr << uint(2*i)
		set := writeSig0Set << uint(2*i)
		clearSet(clr, set, fmt.Sprintf("SIG%d", i), &u.sig[i])
	}
}

func (u *Unit) readSemaphore() uint32 {
	if u.semaphore == 0 {
		u.semaphore = 1
		return 0
	}
	return 1
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// String dumps the CP0 register state, matching the teacher's Chip.Debug()
// convention.
func (u *Unit) String() string {
	return fmt.Sprintf("MEM_ADDR=%.8X DRAM_ADDR=%.8X STATUS=%.8X SEMAPHORE=%.1X",
		u.MemAddr, u.DramAddr, u.statusValue(), u.semaphore)
}
