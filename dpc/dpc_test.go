package dpc

import "testing"

func TestNullDiscardsWritesAndReadsZero(t *testing.T) {
	var n Null
	n.WriteRegister(CmdStart, 0xDEADBEEF)
	if got := n.ReadRegister(CmdStart); got != 0 {
		t.Errorf("Null.ReadRegister after write = %#x, want 0", got)
	}
	if got := n.ReadRegister(CmdTMEMBusy); got != 0 {
		t.Errorf("Null.ReadRegister(CmdTMEMBusy) = %#x, want 0", got)
	}
}
