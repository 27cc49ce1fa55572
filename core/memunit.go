package core

import (
	"github.com/rsp64/rsp/decode"
	"github.com/rsp64/rsp/memory"
	"github.com/rsp64/rsp/vector"
)

// runMemory executes the DF stage: the pending memory operation descriptor
// EX filled into exdf, against data memory (spec §4.3: "the EX stage does
// not touch memory; it instead fills the EX→DF latch... the DF stage looks
// up the function tag and runs the access").
func (c *Chip) runMemory() {
	// DF always produces a fresh DF→WB latch, defaulting to "nothing
	// pending" — it must never leave a prior cycle's commit in place for WB
	// to re-apply (spec §3: "at most one scalar-result write is pending
	// per latch slot").
	next := dfwbLatch{}
	defer func() { c.dfwb = next }()

	if !c.exdf.Valid {
		return
	}
	addr := uint16(c.exdf.Addr & memory.AddrMask)

	switch c.exdf.MemOp {
	case memLB:
		next = dfwbLatch{Valid: true, Dest: c.exdf.ScalarDst, Data: uint32(int32(int8(c.DMem.Read(addr))))}
		return
	case memLBU:
		next = dfwbLatch{Valid: true, Dest: c.exdf.ScalarDst, Data: uint32(c.DMem.Read(addr))}
		return
	case memLH:
		next = dfwbLatch{Valid: true, Dest: c.exdf.ScalarDst, Data: uint32(int32(int16(memory.Read16(c.DMem, addr))))}
		return
	case memLHU:
		next = dfwbLatch{Valid: true, Dest: c.exdf.ScalarDst, Data: uint32(memory.Read16(c.DMem, addr))}
		return
	case memLW:
		next = dfwbLatch{Valid: true, Dest: c.exdf.ScalarDst, Data: memory.Read32(c.DMem, addr)}
		return
	case memSB:
		c.DMem.Write(addr, uint8(c.exdf.StoreData))
	case memSH:
		memory.Write16(c.DMem, addr, uint16(c.exdf.StoreData))
	case memSW:
		memory.Write32(c.DMem, addr, c.exdf.StoreData)
	case memVec:
		c.runVectorMemory(addr)
	}

	// A store or vector memory op carries no scalar-load result of its own;
	// fall back to whatever plain ALU result EX also deposited alongside the
	// memory descriptor.
	if c.exdf.HasResult {
		next = dfwbLatch{Valid: true, Dest: c.exdf.Dest, Data: c.exdf.Data}
	}
}

// memViewBytes reinterprets a vector register as its 16-byte memory-order
// view: byte 2i is lane i's low byte, byte 2i+1 is lane i's high byte. This
// is the byte-pair-swapped layout spec §6 describes at the memory boundary
// (verified against the LQV worked example in spec §8 scenario 4).
func memViewBytes(l vector.Lanes) [16]uint8 {
	var b [16]uint8
	for i := 0; i < vector.NumLanes; i++ {
		b[2*i] = uint8(l[i])
		b[2*i+1] = uint8(l[i] >> 8)
	}
	return b
}

func memViewSet(l *vector.Lanes, b [16]uint8) {
	for i := 0; i < vector.NumLanes; i++ {
		l[i] = uint16(b[2*i+1])<<8 | uint16(b[2*i])
	}
}

// runVectorMemory executes one vector load or store family member against
// the element/alignment rules of spec §4.3.
func (c *Chip) runVectorMemory(addr uint16) {
	vt := c.exdf.VecReg
	elem := int(c.exdf.Element)
	store := decode.VectorInfo(c.exdf.VecMemOp)&decode.IsStore != 0

	switch c.exdf.VecMemOp {
	case decode.OpLBV, decode.OpSBV:
		c.byteMemOp(vt, elem, addr, store)
	case decode.OpLSV, decode.OpSSV:
		c.blockMemOp(vt, elem, addr, 2, store)
	case decode.OpLLV, decode.OpSLV:
		c.blockMemOp(vt, elem, addr, 4, store)
	case decode.OpLDV, decode.OpSDV:
		c.blockMemOp(vt, elem, addr, 8, store)
	case decode.OpLQV, decode.OpSQV:
		c.quadMemOp(vt, elem, addr, store)
	case decode.OpLRV, decode.OpSRV:
		c.restMemOp(vt, elem, addr, store)
	case decode.OpLPV, decode.OpSPV:
		c.packedMemOp(vt, elem, addr, 7, store)
	case decode.OpLUV, decode.OpSUV:
		c.packedMemOp(vt, elem, addr, 8, store)
	case decode.OpLHV, decode.OpSHV:
		c.spreadMemOp(vt, elem, addr, 2, store)
	case decode.OpLFV, decode.OpSFV:
		c.spreadMemOp(vt, elem, addr, 4, store)
	case decode.OpLTV, decode.OpSTV:
		c.transposeMemOp(vt, elem, addr, store)
	}
}

// byteMemOp implements LBV/SBV: one byte of one lane, addressed by its
// memory-view byte slot (spec §4.3: "one byte of one lane element").
func (c *Chip) byteMemOp(vt uint32, elem int, addr uint16, store bool) {
	slot := elem & 0xF
	view := memViewBytes(c.Vector.Regs[vt])
	if store {
		c.DMem.Write(addr, view[slot])
		return
	}
	view[slot] = c.DMem.Read(addr)
	memViewSet(&c.Vector.Regs[vt], view)
}

// blockMemOp implements LSV/SSV, LLV/SLV, LDV/SDV: n contiguous bytes,
// byte-pair swapped, starting at the element's byte slot and wrapping
// within the 16-byte register view.
func (c *Chip) blockMemOp(vt uint32, elem int, addr uint16, n int, store bool) {
	view := memViewBytes(c.Vector.Regs[vt])
	if store {
		data := make([]uint8, n)
		for i := 0; i < n; i++ {
			data[i] = view[(elem+i)%16]
		}
		memory.WriteBlock(c.DMem, addr, data)
		return
	}
	data := memory.ReadBlock(c.DMem, addr, n)
	for i := 0; i < n; i++ {
		view[(elem+i)%16] = data[i]
	}
	memViewSet(&c.Vector.Regs[vt], view)
}

// quadMemOp implements LQV/SQV: up to 16 bytes starting at the element's
// byte slot, clamped at the next 16-byte data-memory boundary (spec §4.3).
func (c *Chip) quadMemOp(vt uint32, elem int, addr uint16, store bool) {
	boundary := (uint32(addr) &^ 0xF) + 16
	n := int(boundary) - int(addr)
	if max := 16 - (elem & 0xF); n > max {
		n = max
	}
	view := memViewBytes(c.Vector.Regs[vt])
	if store {
		data := make([]uint8, n)
		for i := 0; i < n; i++ {
			data[i] = view[(elem+i)%16]
		}
		memory.WriteBlock(c.DMem, addr, data)
		return
	}
	data := memory.ReadBlock(c.DMem, addr, n)
	for i := 0; i < n; i++ {
		view[(elem+i)%16] = data[i]
	}
	memViewSet(&c.Vector.Regs[vt], view)
}

// restMemOp implements LRV/SRV: the complement of LQV, the bytes between
// the previous 16-byte boundary and the source address, wrapping into the
// slots LQV left untouched (spec §4.3: "wrapping into the remaining
// slots", original_source/Memory.c's LoadRestVector/StoreRestVector give
// the same offset-to-boundary byte count but rely on C pointer arithmetic
// across the register file's memory layout for the wrap point, which has
// no direct equivalent here). The exact wrap alignment below is this
// implementation's own choice; LRV/SRV is not one of spec §9's four named
// open questions, unlike LTV/STV.
func (c *Chip) restMemOp(vt uint32, elem int, addr uint16, store bool) {
	boundary := uint16(uint32(addr) &^ 0xF)
	n := int(addr) - int(boundary)
	if n == 0 {
		return
	}
	start := (16 - n + elem) % 16
	view := memViewBytes(c.Vector.Regs[vt])
	if store {
		data := make([]uint8, n)
		for i := 0; i < n; i++ {
			data[i] = view[(start+i)%16]
		}
		memory.WriteBlock(c.DMem, boundary, data)
		return
	}
	data := memory.ReadBlock(c.DMem, boundary, n)
	for i := 0; i < n; i++ {
		view[(start+i)%16] = data[i]
	}
	memViewSet(&c.Vector.Regs[vt], view)
}

// packedMemOp implements LPV/SPV (shift=7) and LUV/SUV (shift=8): eight
// bytes, one per lane, placed into the upper bits of each lane at the
// given shift (spec §4.3: "placed at bit positions [14:7] or [15:8]").
func (c *Chip) packedMemOp(vt uint32, elem int, addr uint16, shift uint, store bool) {
	lane0 := (elem >> 1) % vector.NumLanes
	if store {
		data := make([]uint8, vector.NumLanes)
		for i := 0; i < vector.NumLanes; i++ {
			l := (lane0 + i) % vector.NumLanes
			data[i] = uint8(c.Vector.Regs[vt][l] >> shift)
		}
		memory.WriteBlock(c.DMem, addr, data)
		return
	}
	data := memory.ReadBlock(c.DMem, addr, vector.NumLanes)
	for i := 0; i < vector.NumLanes; i++ {
		l := (lane0 + i) % vector.NumLanes
		c.Vector.Regs[vt][l] = uint16(data[i]) << shift
	}
}

// spreadMemOp implements LHV/SHV (stride 2, all 8 lanes) and LFV/SFV
// (stride 4, 4 lanes): every stride-th byte of a 16-byte region placed
// into the upper byte of successive lanes (spec §4.3).
func (c *Chip) spreadMemOp(vt uint32, elem int, addr uint16, stride int, store bool) {
	count := vector.NumLanes
	if stride == 4 {
		count = 4
	}
	lane0 := (elem >> 1) % vector.NumLanes
	if store {
		data := make([]uint8, count)
		for i := 0; i < count; i++ {
			l := (lane0 + i) % vector.NumLanes
			data[i] = uint8(c.Vector.Regs[vt][l] >> 8)
		}
		sparse := make([]uint8, count*stride)
		for i, v := range data {
			sparse[i*stride] = v
		}
		memory.WriteBlock(c.DMem, addr, sparse)
		return
	}
	raw := memory.ReadBlock(c.DMem, addr, count*stride)
	for i := 0; i < count; i++ {
		l := (lane0 + i) % vector.NumLanes
		c.Vector.Regs[vt][l] = uint16(raw[i*stride]) << 8
	}
}

// transposeMemOp implements LTV/STV: a 16-byte region spread across eight
// consecutive vector registers starting at the 8-aligned group containing
// vt, one register per memory slice, the register index rotating by the
// element specifier while the slice's lane index stays fixed. Spec §9
// calls out two disagreeing historical code paths for this rotation; the
// gather loop that survived in original_source/EXStage.c's RSPSTV (the
// instruction, as opposed to the lower-level memory function) is concrete
// ground truth and is what this follows: "start = element >> 1; for i in
// 0..7 { regs[dest+start].slices[i]; start = (start+1) & 7 }" — i.e. the
// destination register rotates and the lane is the loop index itself.
func (c *Chip) transposeMemOp(vt uint32, elem int, addr uint16, store bool) {
	group := vt &^ 0x7
	start := uint32(elem>>1) & 0x7
	if store {
		data := make([]uint8, 16)
		for i := 0; i < vector.NumLanes; i++ {
			reg := group + (start+uint32(i))%vector.NumLanes
			v := c.Vector.Regs[reg][i]
			data[2*i] = uint8(v)
			data[2*i+1] = uint8(v >> 8)
		}
		memory.WriteBlock(c.DMem, addr, data)
		return
	}
	data := memory.ReadBlock(c.DMem, addr, 16)
	for i := 0; i < vector.NumLanes; i++ {
		reg := group + (start+uint32(i))%vector.NumLanes
		c.Vector.Regs[reg][i] = uint16(data[2*i+1])<<8 | uint16(data[2*i])
	}
}
