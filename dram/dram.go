// Package dram defines the host DRAM collaborator used by the control
// coprocessor's DMA engine (spec §1: "the host bus and DRAM DMA engine
// (only the DMA command register protocol is specified)"). The DRAM
// backing store itself lives on the host side of the simulated bus; this
// package only names the contract the core's CP0 DMA engine drives.
package dram

// Bus is the external DRAM collaborator. A host embeds the core with a Bus
// implementation that owns arbitrarily large backing storage; the core
// itself never allocates or bounds-checks DRAM addresses beyond what the
// host's Bus chooses to do.
type Bus interface {
	// Read copies n bytes starting at addr from DRAM into a new slice.
	Read(addr uint32, n int) []uint8
	// Write stores data starting at addr in DRAM.
	Write(addr uint32, data []uint8)
}
