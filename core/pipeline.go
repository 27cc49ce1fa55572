package core

import (
	"github.com/rsp64/rsp/decode"
	"github.com/rsp64/rsp/memory"
)

// Tick runs one cycle of the five-stage pipeline in the reverse-stage order
// spec §4.6 requires (WB, DF, EX scalar, EX vector, RD, IF) so that no
// stage consumes data a later stage in the same cycle hasn't produced yet.
// Once HALT has latched, Tick is a no-op on every subsequent call (spec
// §5, §7).
func (c *Chip) Tick() error {
	if c.CP0.Halted() {
		return Halted{}
	}

	c.commitWB()
	c.runMemory()

	// Snapshot the instructions currently in EX and DF before this cycle's
	// EX stage overwrites their latches, for the hazard check RD performs
	// below (spec §4.6: "load-use stall", "load-store stall").
	exBeforeWord := c.rdex.Word
	exBeforeLoad := c.rdex.Valid && decode.ScalarInfo(c.rdex.Op)&decode.IsLoad != 0
	exBeforeDest := int(decode.RT(exBeforeWord))
	dfBeforeMem := c.exdf.Valid && c.exdf.MemOp != memNone
	dfBeforeLoad := dfBeforeMem && (c.exdf.MemOp == memLB || c.exdf.MemOp == memLBU ||
		c.exdf.MemOp == memLH || c.exdf.MemOp == memLHU || c.exdf.MemOp == memLW)
	dfBeforeDest := c.exdf.ScalarDst

	c.execScalarEX()
	c.execVectorEX()

	candidate, candWord, candFlags, dualIssued, stallEligible := c.classifyRD()

	stall := false
	if stallEligible {
		if exBeforeLoad && needsRegMatch(candWord, candFlags, exBeforeDest) {
			stall = true
		}
		if dfBeforeLoad && needsRegMatch(candWord, candFlags, dfBeforeDest) {
			stall = true
		}
		if dfBeforeMem && candFlags&(decode.IsLoad|decode.IsStore|decode.IsCP0Access|decode.IsCP2Access) != 0 {
			stall = true
		}
	}

	if stall {
		c.rdex = rdexLatch{}
	} else {
		c.rdex = candidate
		c.inDelaySlot = candFlags&decode.IsBranch != 0
	}

	if !stall {
		c.fetch(dualIssued)
	}

	if c.CP0.Halted() {
		// HALT latched during this cycle's EX (BREAK): retire the older
		// result DF just handed to WB, so every instruction ahead of the
		// BREAK has committed before Tick stops advancing.
		c.commitWB()
		c.dfwb = dfwbLatch{}
	}

	return nil
}

// commitWB implements the WB stage: commit the DF→WB latch's pending
// write to the scalar register file (spec §4.6 step 1).
func (c *Chip) commitWB() {
	if c.dfwb.Valid {
		c.regWrite(c.dfwb.Dest, c.dfwb.Data)
	}
}

// needsRegMatch reports whether word, with the given info flags, reads
// dest through RS or RT.
func needsRegMatch(word uint32, flags decode.InfoFlags, dest int) bool {
	if dest == 0 {
		return false
	}
	if flags&decode.NeedsRS != 0 && int(decode.RS(word)) == dest {
		return true
	}
	if flags&decode.NeedsRT != 0 && int(decode.RT(word)) == dest {
		return true
	}
	return false
}

// classifyRD implements the RD stage's classification and dual-issue rule
// (spec §4.6 step 5): if both fetched words decode to the same kind
// (scalar or vector), only the first issues; if they differ in kind and
// the first is not a branch and the core is not in a delay slot, both
// issue; otherwise only the first issues. Dual issue consumes both fetched
// words, so IF must advance the program counter by two words instead of
// one that cycle (original_source/RDStage.c: the dual-issue path bumps PC
// by 8); the non-dual-issue cycle still only ever executes the first word,
// and the second is discarded (re-fetched and reclassified next cycle).
//
// It returns the candidate next RD→EX latch, the word and info flags the
// hazard check in Tick should use (the scalar word actually destined for
// EX, which is w1 rather than w0 when the vector-first/scalar-second dual
// issue case applies), whether dual issue consumed both fetched words,
// and whether a hazard check applies at all (an empty fetch produces no
// candidate).
func (c *Chip) classifyRD() (rdexLatch, uint32, decode.InfoFlags, bool, bool) {
	if !c.ifrd.Valid {
		return rdexLatch{}, 0, 0, false, false
	}
	w0, w1 := c.ifrd.Words[0], c.ifrd.Words[1]
	s0, v0 := decode.Decode(w0)
	s1, v1 := decode.Decode(w1)

	next := rdexLatch{
		Valid: true,
		Word:  w0,
		Op:    s0,
		PC:    c.ifrd.PC + 8, // PC of the instruction after this one's delay slot (spec §4.2).
		VecOp: v0,
		VecW:  w0,
		VecOK: v0 != decode.VectorInvalid,
	}

	bothScalar := s0 != decode.ScalarInvalid && s1 != decode.ScalarInvalid
	bothVector := v0 != decode.VectorInvalid && v1 != decode.VectorInvalid
	firstIsBranch := decode.ScalarInfo(s0)&decode.IsBranch != 0

	dualIssued := false
	if !bothScalar && !bothVector && !firstIsBranch && !c.inDelaySlot {
		switch {
		case s0 != decode.ScalarInvalid && v1 != decode.VectorInvalid:
			next.VecOp = v1
			next.VecW = w1
			next.VecOK = true
			dualIssued = true
		case v0 != decode.VectorInvalid && s1 != decode.ScalarInvalid:
			next.Op = s1
			next.Word = w1
			next.PC = c.ifrd.PC + 12 // w1 sits one word later than w0.
			dualIssued = true
		}
	}

	return next, next.Word, decode.ScalarInfo(next.Op), dualIssued, true
}

// fetch implements the IF stage (spec §4.6 step 6): fetch two consecutive
// big-endian instruction words at the program counter and advance it by
// one word, preserving the in-imem marker bit. When RD dual-issued both
// fetched words this cycle, the word at the program counter is the one
// just co-issued, so fetch first steps past it; the program counter then
// ends two words further on (original_source/RDStage.c).
func (c *Chip) fetch(dualIssued bool) {
	if dualIssued {
		c.pc = ((c.pc + 4) & pcMask) | (c.pc & inImemBit)
	}
	off := uint16(c.pc & memory.AddrMask)
	c.ifrd = ifrdLatch{
		Words: [2]uint32{
			memory.Read32(c.IMem, off),
			memory.Read32(c.IMem, off+4),
		},
		PC:    c.pc,
		Valid: true,
	}
	c.pc = ((c.pc + 4) & pcMask) | (c.pc & inImemBit)
}
