package decode

// Primary MIPS-like opcode values (bits [31:26]) that resolve directly to a
// scalar tag or to one of the escape sub-tables (spec §4.1).
const (
	opSPECIAL = 0x00
	opREGIMM  = 0x01
	opJ       = 0x02
	opJAL     = 0x03
	opBEQ     = 0x04
	opBNE     = 0x05
	opBLEZ    = 0x06
	opBGTZ    = 0x07
	opADDI    = 0x08
	opADDIU   = 0x09
	opSLTI    = 0x0A
	opSLTIU   = 0x0B
	opANDI    = 0x0C
	opORI     = 0x0D
	opXORI    = 0x0E
	opCOP0    = 0x10
	opCOP2    = 0x12
	opLB      = 0x20
	opLH      = 0x21
	opLW      = 0x23
	opLBU     = 0x24
	opLHU     = 0x25
	opSB      = 0x28
	opSH      = 0x29
	opSW      = 0x2B
	opLWC2    = 0x32
	opSWC2    = 0x3A
)

// SPECIAL (escape on funct, bits [5:0]).
const (
	fnSLL   = 0x00
	fnSRL   = 0x02
	fnSRA   = 0x03
	fnSLLV  = 0x04
	fnSRLV  = 0x06
	fnSRAV  = 0x07
	fnJR    = 0x08
	fnJALR  = 0x09
	fnBREAK = 0x0D
	fnADD   = 0x20
	fnADDU  = 0x21
	fnSUB   = 0x22
	fnSUBU  = 0x23
	fnAND   = 0x24
	fnOR    = 0x25
	fnXOR   = 0x26
	fnNOR   = 0x27
	fnSLT   = 0x2A
	fnSLTU  = 0x2B
)

// REGIMM (escape on rt, bits [20:16]).
const (
	rtBLTZ   = 0x00
	rtBGEZ   = 0x01
	rtBLTZAL = 0x10
	rtBGEZAL = 0x11
)

// COP0 (escape on rs, bits [25:21]).
const (
	cp0MF = 0x00
	cp0MT = 0x04
)

// COP2 scalar-move sub-opcode (escape on rs, bits [25:21], when bit 25 is
// clear — spec §4.1: "coprocessor-2 scalar moves (bits [25:21] with high
// bit clear)").
const (
	cp2MF = 0x00
	cp2CF = 0x02
	cp2MT = 0x04
	cp2CT = 0x06
	// cp2VectorBit is bit 25 of the instruction word, which as the top bit
	// of the rs field is 0x10: when set, rs instead selects the
	// vector-compute escape (spec §4.1).
	cp2VectorBit = 0x10
)

// Vector-compute sub-opcode (escape on funct, bits [5:0], when the COP2
// vector-compute escape is taken). Values are this implementation's own
// consistent assignment (spec §1 treats exact encodings for some of this
// family as unspecified beyond the mnemonic list in §4.4); anything not
// listed here decodes as VectorInvalid.
const (
	vfnVMULF = 0x00
	vfnVMULU = 0x01
	vfnVRNDP = 0x02
	vfnVMULQ = 0x03
	vfnVMUDL = 0x04
	vfnVMUDM = 0x05
	vfnVMUDN = 0x06
	vfnVMUDH = 0x07
	vfnVMACF = 0x08
	vfnVMACU = 0x09
	vfnVRNDN = 0x0A
	vfnVMACQ = 0x0B
	vfnVMADL = 0x0C
	vfnVMADM = 0x0D
	vfnVMADN = 0x0E
	vfnVMADH = 0x0F
	vfnVADD  = 0x10
	vfnVSUB  = 0x11
	vfnVABS  = 0x13
	vfnVADDC = 0x14
	vfnVSUBC = 0x15
	vfnVSAR  = 0x1D
	vfnVLT   = 0x20
	vfnVEQ   = 0x21
	vfnVNE   = 0x22
	vfnVGE   = 0x23
	vfnVCL   = 0x24
	vfnVCH   = 0x25
	vfnVCR   = 0x26
	vfnVMRG  = 0x27
	vfnVAND  = 0x28
	vfnVNAND = 0x29
	vfnVOR   = 0x2A
	vfnVNOR  = 0x2B
	vfnVXOR  = 0x2C
	vfnVNXOR = 0x2D
	vfnVRCPL = 0x31
	vfnVRCPH = 0x32
	vfnVMOV  = 0x33
	vfnVRSQL = 0x35
	vfnVRSQH = 0x36
	vfnVNOP  = 0x37
	vfnVINV  = 0x38
)

// Vector load/store family sub-opcode (escape on bits [15:11]). Slot 0x0A
// is deliberately unassigned: it is the "wrapped" LWV/SWV family, which
// spec §9 notes is "referenced but never implemented" in the source this
// was distilled from, so it stays out of scope here too.
const (
	vmLBV = 0x00
	vmLSV = 0x01
	vmLLV = 0x02
	vmLDV = 0x03
	vmLQV = 0x04
	vmLRV = 0x05
	vmLPV = 0x06
	vmLUV = 0x07
	vmLHV = 0x08
	vmLFV = 0x09
	vmLTV = 0x0B
)

// Decode maps a 32-bit instruction word to (scalarTag, vectorTag); at most
// one is non-invalid (spec §4.1). Unassigned encodings return
// (ScalarInvalid, VectorInvalid) and are left to their respective no-op
// handlers in core/vector execution.
func Decode(word uint32) (ScalarOp, VectorOp) {
	switch Opcode(word) {
	case opSPECIAL:
		return decodeSpecial(word), VectorInvalid
	case opREGIMM:
		return decodeRegimm(word), VectorInvalid
	case opJ:
		return OpJ, VectorInvalid
	case opJAL:
		return OpJAL, VectorInvalid
	case opBEQ:
		return OpBEQ, VectorInvalid
	case opBNE:
		return OpBNE, VectorInvalid
	case opBLEZ:
		return OpBLEZ, VectorInvalid
	case opBGTZ:
		return OpBGTZ, VectorInvalid
	case opADDI:
		return OpADDI, VectorInvalid
	case opADDIU:
		return OpADDIU, VectorInvalid
	case opSLTI:
		return OpSLTI, VectorInvalid
	case opSLTIU:
		return OpSLTIU, VectorInvalid
	case opANDI:
		return OpANDI, VectorInvalid
	case opORI:
		return OpORI, VectorInvalid
	case opXORI:
		return OpXORI, VectorInvalid
	case opCOP0:
		return decodeCOP0(word), VectorInvalid
	case opCOP2:
		return decodeCOP2(word)
	case opLB:
		return OpLB, VectorInvalid
	case opLH:
		return OpLH, VectorInvalid
	case opLW:
		return OpLW, VectorInvalid
	case opLBU:
		return OpLBU, VectorInvalid
	case opLHU:
		return OpLHU, VectorInvalid
	case opSB:
		return OpSB, VectorInvalid
	case opSH:
		return OpSH, VectorInvalid
	case opSW:
		return OpSW, VectorInvalid
	case opLWC2:
		return ScalarInvalid, decodeVecLoad(word)
	case opSWC2:
		return ScalarInvalid, decodeVecStore(word)
	default:
		return ScalarInvalid, VectorInvalid
	}
}

func decodeSpecial(word uint32) ScalarOp {
	switch Funct(word) {
	case fnSLL:
		return OpSLL
	case fnSRL:
		return OpSRL
	case fnSRA:
		return OpSRA
	case fnSLLV:
		return OpSLLV
	case fnSRLV:
		return OpSRLV
	case fnSRAV:
		return OpSRAV
	case fnJR:
		return OpJR
	case fnJALR:
		return OpJALR
	case fnBREAK:
		return OpBREAK
	case fnADD:
		return OpADD
	case fnADDU:
		return OpADDU
	case fnSUB:
		return OpSUB
	case fnSUBU:
		return OpSUBU
	case fnAND:
		return OpAND
	case fnOR:
		return OpOR
	case fnXOR:
		return OpXOR
	case fnNOR:
		return OpNOR
	case fnSLT:
		return OpSLT
	case fnSLTU:
		return OpSLTU
	default:
		return ScalarInvalid
	}
}

func decodeRegimm(word uint32) ScalarOp {
	switch RT(word) {
	case rtBLTZ:
		return OpBLTZ
	case rtBGEZ:
		return OpBGEZ
	case rtBLTZAL:
		return OpBLTZAL
	case rtBGEZAL:
		return OpBGEZAL
	default:
		return ScalarInvalid
	}
}

func decodeCOP0(word uint32) ScalarOp {
	switch RS(word) {
	case cp0MF:
		return OpMFC0
	case cp0MT:
		return OpMTC0
	default:
		return ScalarInvalid
	}
}

func decodeCOP2(word uint32) (ScalarOp, VectorOp) {
	rs := RS(word)
	if rs&cp2VectorBit != 0 {
		return ScalarInvalid, decodeVectorCompute(word)
	}
	switch rs {
	case cp2MF:
		return OpMFC2, VectorInvalid
	case cp2CF:
		return OpCFC2, VectorInvalid
	case cp2MT:
		return OpMTC2, VectorInvalid
	case cp2CT:
		return OpCTC2, VectorInvalid
	default:
		return ScalarInvalid, VectorInvalid
	}
}

func decodeVectorCompute(word uint32) VectorOp {
	switch VecOp(word) {
	case vfnVMULF:
		return OpVMULF
	case vfnVMULU:
		return OpVMULU
	case vfnVRNDP:
		return OpVRNDP
	case vfnVMULQ:
		return OpVMULQ
	case vfnVMUDL:
		return OpVMUDL
	case vfnVMUDM:
		return OpVMUDM
	case vfnVMUDN:
		return OpVMUDN
	case vfnVMUDH:
		return OpVMUDH
	case vfnVMACF:
		return OpVMACF
	case vfnVMACU:
		return OpVMACU
	case vfnVRNDN:
		return OpVRNDN
	case vfnVMACQ:
		return OpVMACQ
	case vfnVMADL:
		return OpVMADL
	case vfnVMADM:
		return OpVMADM
	case vfnVMADN:
		return OpVMADN
	case vfnVMADH:
		return OpVMADH
	case vfnVADD:
		return OpVADD
	case vfnVSUB:
		return OpVSUB
	case vfnVABS:
		return OpVABS
	case vfnVADDC:
		return OpVADDC
	case vfnVSUBC:
		return OpVSUBC
	case vfnVSAR:
		return OpVSAR
	case vfnVLT:
		return OpVLT
	case vfnVEQ:
		return OpVEQ
	case vfnVNE:
		return OpVNE
	case vfnVGE:
		return OpVGE
	case vfnVCL:
		return OpVCL
	case vfnVCH:
		return OpVCH
	case vfnVCR:
		return OpVCR
	case vfnVMRG:
		return OpVMRG
	case vfnVAND:
		return OpVAND
	case vfnVNAND:
		return OpVNAND
	case vfnVOR:
		return OpVOR
	case vfnVNOR:
		return OpVNOR
	case vfnVXOR:
		return OpVXOR
	case vfnVNXOR:
		return OpVNXOR
	case vfnVRCPL:
		return OpVRCPL
	case vfnVRCPH:
		return OpVRCPH
	case vfnVMOV:
		return OpVMOV
	case vfnVRSQL:
		return OpVRSQL
	case vfnVRSQH:
		return OpVRSQH
	case vfnVNOP:
		return OpVNOP
	case vfnVINV:
		return OpVINV
	default:
		return VectorInvalid
	}
}

func decodeVecLoad(word uint32) VectorOp {
	switch VecMemOp(word) {
	case vmLBV:
		return OpLBV
	case vmLSV:
		return OpLSV
	case vmLLV:
		return OpLLV
	case vmLDV:
		return OpLDV
	case vmLQV:
		return OpLQV
	case vmLRV:
		return OpLRV
	case vmLPV:
		return OpLPV
	case vmLUV:
		return OpLUV
	case vmLHV:
		return OpLHV
	case vmLFV:
		return OpLFV
	case vmLTV:
		return OpLTV
	default:
		return VectorInvalid
	}
}

func decodeVecStore(word uint32) VectorOp {
	switch VecMemOp(word) {
	case vmLBV:
		return OpSBV
	case vmLSV:
		return OpSSV
	case vmLLV:
		return OpSLV
	case vmLDV:
		return OpSDV
	case vmLQV:
		return OpSQV
	case vmLRV:
		return OpSRV
	case vmLPV:
		return OpSPV
	case vmLUV:
		return OpSUV
	case vmLHV:
		return OpSHV
	case vmLFV:
		return OpSFV
	case vmLTV:
		return OpSTV
	default:
		return VectorInvalid
	}
}
