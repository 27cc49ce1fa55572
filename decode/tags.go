// Package decode maps a 32-bit instruction word to a scalar opcode tag or a
// vector opcode tag, via a primary 64-entry table plus escape sub-tables
// (spec §4.1). At most one of the two tags returned by Decode is non-invalid.
package decode

// ScalarOp tags every scalar instruction the core can execute. The zero
// value, ScalarInvalid, is the decoder's sentinel for "no scalar
// instruction here" (spec §4.1: "the decoder exposes a sentinel 'invalid
// scalar opcode'... that dispatch to a no-op handler").
type ScalarOp int

const (
	ScalarInvalid ScalarOp = iota

	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpSLT
	OpSLTU
	OpADDI
	OpADDIU
	OpANDI
	OpORI
	OpXORI
	OpSLTI
	OpSLTIU

	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV

	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ
	OpBLTZ
	OpBGEZ
	OpBLTZAL
	OpBGEZAL

	OpJ
	OpJAL
	OpJR
	OpJALR

	OpLB
	OpLBU
	OpLH
	OpLHU
	OpLW
	OpSB
	OpSH
	OpSW

	OpMFC0
	OpMTC0
	OpMFC2
	OpMTC2
	OpCFC2
	OpCTC2

	OpBREAK
)

// VectorOp tags every vector instruction the core can execute. The zero
// value, VectorInvalid, is the decoder's sentinel for "no vector
// instruction here". The unimplemented-but-encodable vector opcodes
// (VMULQ/VRNDP/VRNDN/VMACQ, per spec §9) decode to tags of their own, which
// the core executes as no-ops that set vector.Unit.NoWriteback.
type VectorOp int

const (
	VectorInvalid VectorOp = iota

	OpVMULF
	OpVMULU
	OpVMUDL
	OpVMUDM
	OpVMUDN
	OpVMUDH
	OpVMACF
	OpVMACU
	OpVMADL
	OpVMADM
	OpVMADN
	OpVMADH

	// Unimplemented per spec §9 ("left unimplemented in the source"); the
	// decoder still recognizes their encodings so a disassembler can name
	// them, but the vector unit executes them as documented no-ops.
	OpVMULQ
	OpVRNDP
	OpVRNDN
	OpVMACQ

	OpVADD
	OpVSUB
	OpVADDC
	OpVSUBC

	OpVABS

	OpVEQ
	OpVNE
	OpVLT
	OpVGE
	OpVCH
	OpVCL
	OpVCR

	OpVAND
	OpVOR
	OpVXOR
	OpVNAND
	OpVNOR
	OpVNXOR

	OpVMOV
	OpVMRG

	OpVRCPL
	OpVRCPH
	OpVRSQL
	OpVRSQH

	OpVSAR

	OpVNOP
	OpVINV

	// Vector load/store family.
	OpLBV
	OpSBV
	OpLSV
	OpSSV
	OpLLV
	OpSLV
	OpLDV
	OpSDV
	OpLQV
	OpSQV
	OpLRV
	OpSRV
	OpLPV
	OpSPV
	OpLUV
	OpSUV
	OpLHV
	OpSHV
	OpLFV
	OpSFV
	OpLTV
	OpSTV
)

// InfoFlags records the data-independent properties of an opcode tag that
// the hazard detector and pipeline need (spec §4.1). For any given tag the
// flags returned are always the same value — they must never depend on the
// instruction word's operand fields, only on which opcode it is.
type InfoFlags uint16

const (
	NeedsRS InfoFlags = 1 << iota
	NeedsRT
	WritesRT
	WritesRD
	IsBranch
	IsLoad
	IsStore
	IsCP0Access
	IsCP2Access
	IsVectorCompute
	IsTransposeLS
	WritesLink
)
