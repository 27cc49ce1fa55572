package core

import "github.com/rsp64/rsp/memory"

// Host-visible register windows (spec §6): the 16-entry control-coprocessor
// window is served directly by CP0; this file adds the vector
// lane/flag-register accessors MFC2/MTC2/CFC2/CTC2 use, plus the secondary
// program-counter/BIST window and instruction-memory access with the
// host-store byte swap.

// readVecLane implements MFC2: reads one 16-bit lane of a vector register,
// sign-extended to 32 bits. The element field's low bit (byte-within-lane)
// is not distinguished at this granularity; this implementation's own
// choice, since spec §4.1 leaves the exact sub-lane addressing of MFC2/MTC2
// undetailed.
func (c *Chip) readVecLane(vreg, elem uint32) uint32 {
	lane := (elem >> 1) & 0x7
	return uint32(int32(int16(c.Vector.Regs[vreg][lane])))
}

// writeVecLane implements MTC2: stores the low 16 bits of val into one lane.
func (c *Chip) writeVecLane(vreg, elem, val uint32) {
	lane := (elem >> 1) & 0x7
	c.Vector.Regs[vreg][lane] = uint16(val)
}

// Control-register selectors for CFC2/CTC2 (spec §4.1: "CTC2 selects among
// vco, vcc, vce by the low two bits of the control-register index").
const (
	flagVCO = 0
	flagVCC = 1
	flagVCE = 2
)

func (c *Chip) readFlagReg(sel uint32) uint32 {
	switch sel {
	case flagVCO:
		return uint32(c.Vector.VCO)
	case flagVCC:
		return uint32(c.Vector.VCC)
	case flagVCE:
		return uint32(c.Vector.VCE)
	default:
		return 0
	}
}

func (c *Chip) writeFlagReg(sel, val uint32) {
	switch sel {
	case flagVCO:
		c.Vector.VCO = uint16(val)
	case flagVCC:
		c.Vector.VCC = uint16(val)
	case flagVCE:
		c.Vector.VCE = uint8(val)
	}
}

// Secondary window registers (spec §6: "secondary window for
// program-counter and built-in-self-test registers, 2 x 4 bytes").
const (
	SecondaryPC = iota
	SecondaryBIST
)

// ReadSecondary reads the secondary register window.
func (c *Chip) ReadSecondary(idx int) uint32 {
	if idx == SecondaryPC {
		return c.pc
	}
	return 0 // BIST is not modeled; always reads idle/clear.
}

// WriteSecondary writes the secondary register window. A write to the PC
// slot resets the pipeline (spec §6).
func (c *Chip) WriteSecondary(idx int, val uint32) {
	if idx == SecondaryPC {
		c.ResetPC(val)
	}
	// BIST writes are accepted and discarded: no self-test is modeled.
}

// WriteIMem stores a host-supplied instruction word into instruction
// memory at a word-aligned offset, big-endian (spec §6: "instruction word:
// 32-bit big-endian. Host stores to instruction memory are byte-swapped on
// read"). ReadIMem reads it back byte-swapped to match.
func (c *Chip) WriteIMem(offset uint16, word uint32) {
	memory.Write32(c.IMem, offset&memory.AddrMask, word)
}

// ReadIMem reads a word back from instruction memory with the host
// read-back byte swap applied.
func (c *Chip) ReadIMem(offset uint16) uint32 {
	w := memory.Read32(c.IMem, offset&memory.AddrMask)
	return w>>24&0xFF | w>>8&0xFF00 | w<<8&0xFF0000 | w<<24&0xFF000000
}
