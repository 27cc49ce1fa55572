package decode

// scalarInfo holds the InfoFlags for every ScalarOp, indexed by tag.
var scalarInfo = map[ScalarOp]InfoFlags{
	OpADD:  NeedsRS | NeedsRT | WritesRD,
	OpADDU: NeedsRS | NeedsRT | WritesRD,
	OpSUB:  NeedsRS | NeedsRT | WritesRD,
	OpSUBU: NeedsRS | NeedsRT | WritesRD,
	OpAND:  NeedsRS | NeedsRT | WritesRD,
	OpOR:   NeedsRS | NeedsRT | WritesRD,
	OpXOR:  NeedsRS | NeedsRT | WritesRD,
	OpNOR:  NeedsRS | NeedsRT | WritesRD,
	OpSLT:  NeedsRS | NeedsRT | WritesRD,
	OpSLTU: NeedsRS | NeedsRT | WritesRD,

	OpADDI:  NeedsRS | WritesRT,
	OpADDIU: NeedsRS | WritesRT,
	OpANDI:  NeedsRS | WritesRT,
	OpORI:   NeedsRS | WritesRT,
	OpXORI:  NeedsRS | WritesRT,
	OpSLTI:  NeedsRS | WritesRT,
	OpSLTIU: NeedsRS | WritesRT,

	OpSLL:  NeedsRT | WritesRD,
	OpSRL:  NeedsRT | WritesRD,
	OpSRA:  NeedsRT | WritesRD,
	OpSLLV: NeedsRS | NeedsRT | WritesRD,
	OpSRLV: NeedsRS | NeedsRT | WritesRD,
	OpSRAV: NeedsRS | NeedsRT | WritesRD,

	OpBEQ:  NeedsRS | NeedsRT | IsBranch,
	OpBNE:  NeedsRS | NeedsRT | IsBranch,
	OpBLEZ: NeedsRS | IsBranch,
	OpBGTZ: NeedsRS | IsBranch,

	OpBLTZ:   NeedsRS | IsBranch,
	OpBGEZ:   NeedsRS | IsBranch,
	OpBLTZAL: NeedsRS | IsBranch | WritesLink,
	OpBGEZAL: NeedsRS | IsBranch | WritesLink,

	OpJ:    IsBranch,
	OpJAL:  IsBranch | WritesLink,
	OpJR:   NeedsRS | IsBranch,
	OpJALR: NeedsRS | IsBranch | WritesRD,

	OpLB:  NeedsRS | WritesRT | IsLoad,
	OpLBU: NeedsRS | WritesRT | IsLoad,
	OpLH:  NeedsRS | WritesRT | IsLoad,
	OpLHU: NeedsRS | WritesRT | IsLoad,
	OpLW:  NeedsRS | WritesRT | IsLoad,
	OpSB:  NeedsRS | NeedsRT | IsStore,
	OpSH:  NeedsRS | NeedsRT | IsStore,
	OpSW:  NeedsRS | NeedsRT | IsStore,

	OpMFC0: WritesRT | IsCP0Access,
	OpMTC0: NeedsRT | IsCP0Access,
	OpMFC2: WritesRT | IsCP2Access,
	OpMTC2: NeedsRT | IsCP2Access,
	OpCFC2: WritesRT | IsCP2Access,
	OpCTC2: NeedsRT | IsCP2Access,

	OpBREAK: 0,
}

// ScalarInfo returns the data-independent flags for a scalar opcode tag.
// ScalarInvalid and any tag absent from the table (there are none) return 0.
func ScalarInfo(op ScalarOp) InfoFlags { return scalarInfo[op] }

// vectorCompute is the common flag set shared by every vector-compute
// instruction (spec §4.3): two vector source operands, one vector
// destination, and the element-specifier broadcast/replicate applied to VT.
const vectorCompute = IsVectorCompute

var vectorInfo = map[VectorOp]InfoFlags{
	OpVMULF: vectorCompute, OpVMULU: vectorCompute,
	OpVMUDL: vectorCompute, OpVMUDM: vectorCompute, OpVMUDN: vectorCompute, OpVMUDH: vectorCompute,
	OpVMACF: vectorCompute, OpVMACU: vectorCompute,
	OpVMADL: vectorCompute, OpVMADM: vectorCompute, OpVMADN: vectorCompute, OpVMADH: vectorCompute,
	OpVMULQ: vectorCompute, OpVRNDP: vectorCompute, OpVRNDN: vectorCompute, OpVMACQ: vectorCompute,

	OpVADD:  vectorCompute,
	OpVSUB:  vectorCompute,
	OpVADDC: vectorCompute,
	OpVSUBC: vectorCompute,
	OpVABS:  vectorCompute,

	OpVEQ: vectorCompute, OpVNE: vectorCompute, OpVLT: vectorCompute, OpVGE: vectorCompute,
	OpVCH: vectorCompute, OpVCL: vectorCompute, OpVCR: vectorCompute,

	OpVAND: vectorCompute, OpVOR: vectorCompute, OpVXOR: vectorCompute,
	OpVNAND: vectorCompute, OpVNOR: vectorCompute, OpVNXOR: vectorCompute,

	OpVMOV: vectorCompute, OpVMRG: vectorCompute,

	OpVRCPL: vectorCompute, OpVRCPH: vectorCompute, OpVRSQL: vectorCompute, OpVRSQH: vectorCompute,

	OpVSAR: vectorCompute,

	OpVNOP: 0,
	OpVINV: 0,

	OpLBV: IsLoad, OpSBV: IsStore,
	OpLSV: IsLoad, OpSSV: IsStore,
	OpLLV: IsLoad, OpSLV: IsStore,
	OpLDV: IsLoad, OpSDV: IsStore,
	OpLQV: IsLoad, OpSQV: IsStore,
	OpLRV: IsLoad, OpSRV: IsStore,
	OpLPV: IsLoad, OpSPV: IsStore,
	OpLUV: IsLoad, OpSUV: IsStore,
	OpLHV: IsLoad, OpSHV: IsStore,
	OpLFV: IsLoad, OpSFV: IsStore,
	OpLTV: IsLoad | IsTransposeLS, OpSTV: IsStore | IsTransposeLS,
}

// VectorInfo returns the data-independent flags for a vector opcode tag.
func VectorInfo(op VectorOp) InfoFlags { return vectorInfo[op] }
