package decode

// Bit-field extraction for the MIPS-like 32-bit instruction word, matching
// the standard R/I/J layout: opcode[31:26] rs[25:21] rt[20:16] rd[15:11]
// shamt[10:6] funct[5:0] for R-type; opcode[31:26] rs[25:21] rt[20:16]
// imm[15:0] for I-type; opcode[31:26] target[25:0] for J-type. The vector
// load/store family reuses the I-type shape with its own sub-fields (see
// VecMemOp/VecMemElement/VecMemOffset).

// Opcode returns the primary 6-bit opcode field, bits [31:26].
func Opcode(w uint32) uint32 { return (w >> 26) & 0x3F }

// RS returns the 5-bit rs field, bits [25:21].
func RS(w uint32) uint32 { return (w >> 21) & 0x1F }

// RT returns the 5-bit rt field, bits [20:16].
func RT(w uint32) uint32 { return (w >> 16) & 0x1F }

// RD returns the 5-bit rd field, bits [15:11].
func RD(w uint32) uint32 { return (w >> 11) & 0x1F }

// Shamt returns the 5-bit shift-amount field, bits [10:6].
func Shamt(w uint32) uint32 { return (w >> 6) & 0x1F }

// Funct returns the 6-bit function field, bits [5:0].
func Funct(w uint32) uint32 { return w & 0x3F }

// Imm16 returns the raw unsigned 16-bit immediate field, bits [15:0].
func Imm16(w uint32) uint16 { return uint16(w) }

// SignExtImm16 returns the 16-bit immediate field sign-extended to 32 bits.
func SignExtImm16(w uint32) int32 { return int32(int16(w)) }

// Target26 returns the 26-bit jump target field, bits [25:0].
func Target26(w uint32) uint32 { return w & 0x03FFFFFF }

// VecOp returns the vector-compute sub-opcode, bits [5:0] (funct), used
// when the COP2 escape selects the vector-compute sub-table (spec §4.1:
// "coprocessor-2 vector compute (bit [25] set -> sub-opcode = bits [5:0])").
func VecOp(w uint32) uint32 { return Funct(w) }

// VecElementSpecifier returns the 4-bit element specifier field for a
// vector-compute instruction, bits [24:21] (the low 4 bits of the RS
// field — bit 25, RS's top bit, is the vector-compute escape selector
// consumed by the decoder, original_source/CP2.c: "element = iw >> 21 &
// 0xF" throughout every RSPV* handler).
func VecElementSpecifier(w uint32) uint32 { return RS(w) & 0xF }

// VS returns the vector-compute source-vector field VS, bits [15:11]
// (shares the RD field position, original_source/CP2.c: "vs =
// cp2->regs[iw >> 11 & 0x1F]").
func VS(w uint32) uint32 { return RD(w) }

// VT returns the vector-compute operand-vector field VT, bits [20:16]
// (shares the RT field position, original_source/CP2.c: "vt =
// cp2->regs[iw >> 16 & 0x1F]").
func VT(w uint32) uint32 { return RT(w) }

// VD returns the vector-compute destination-vector field VD, bits [10:6]
// — the shamt field position, not the RS field (original_source/CP2.c:
// "unsigned vdRegister = iw >> 6 & 0x1F" in every RSPV* handler). RS
// carries the element specifier instead, so VD cannot reuse it.
func VD(w uint32) uint32 { return Shamt(w) }

// VecMemOp returns the vector load/store family selector, bits [15:11]
// (spec §4.1: "vector load family (bits [15:11]), vector store family
// (bits [15:11])").
func VecMemOp(w uint32) uint32 { return RD(w) }

// VecMemBase returns the scalar base register for a vector memory access,
// bits [25:21] (shares the RS field position).
func VecMemBase(w uint32) uint32 { return RS(w) }

// VecMemVT returns the vector register operand of a vector memory access,
// bits [20:16] (shares the RT field position).
func VecMemVT(w uint32) uint32 { return RT(w) }

// VecMemElement returns the element index for a vector memory access, bits
// [10:7].
func VecMemElement(w uint32) uint32 { return (w >> 7) & 0xF }

// VecMemOffset returns the signed 7-bit offset for a vector memory access,
// bits [6:0], not yet scaled by the access stride.
func VecMemOffset(w uint32) int32 {
	v := w & 0x7F
	// Sign-extend from bit 6.
	if v&0x40 != 0 {
		return int32(v) - 0x80
	}
	return int32(v)
}

// CP0RegNum returns the 5-bit CP0 register selector for MFC0/MTC0, bits
// [15:11] (shares the RD field position).
func CP0RegNum(w uint32) uint32 { return RD(w) }

// CP2FlagSel returns the low two bits of the control-register index used by
// CFC2/CTC2 to pick among vco/vcc/vce (spec §4.1).
func CP2FlagSel(w uint32) uint32 { return RD(w) & 0x3 }
