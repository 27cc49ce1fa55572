// Package dpc defines the pass-through contract to the companion display
// processor (spec §1, §4.5). The companion processor's own register
// semantics are out of scope for this core; only the fact that CP0 forwards
// eight 32-bit registers to it, without storing them locally, is specified.
package dpc

// Register identifies one of the eight companion-processor pass-through
// registers exposed through the CP0 window (spec §4.5: "CMD_START through
// CMD_TMEM_BUSY").
type Register int

// The eight companion-processor registers, in CP0 window order.
const (
	CmdStart Register = iota
	CmdEnd
	CmdCurrent
	CmdStatus
	CmdClock
	CmdBusy
	CmdPipeBusy
	CmdTMEMBusy
	NumRegisters
)

// Companion is the external display-processor collaborator. A host
// embedding the core supplies a Companion; CP0 forwards reads and writes of
// the eight pass-through registers to it and keeps no local copy (spec
// §4.5: "their values are not stored locally").
type Companion interface {
	// ReadRegister returns the companion processor's current value for reg.
	ReadRegister(reg Register) uint32
	// WriteRegister stores val into the companion processor's reg.
	WriteRegister(reg Register, val uint32)
}

// Null is a Companion that discards writes and always reads zero, usable
// when a host has no companion processor wired up (e.g. unit tests for the
// core alone).
type Null struct{}

// ReadRegister implements Companion.
func (Null) ReadRegister(Register) uint32 { return 0 }

// WriteRegister implements Companion.
func (Null) WriteRegister(Register, uint32) {}
