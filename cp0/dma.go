package cp0

import "github.com/rsp64/rsp/memory"

// dma executes a DMA command synchronously to completion within the
// triggering register write, per spec §5 ("DMA operations... execute to
// completion within the same tick's register-write return"). fromDRAM is
// true for a READ_LEN write (DRAM -> instruction/data memory) and false
// for a WRITE_LEN write (instruction/data memory -> DRAM).
//
// lenVal layout (spec §6): [31:20] row skip, [19:12] row count, [11:0]
// per-row length minus one. Row count is the literal number of rows to
// transfer (a write with row count 0 performs no rows).
func (u *Unit) dma(lenVal uint32, fromDRAM bool) {
	rowSkip := (lenVal >> 20) & 0xFFF
	rowCount := (lenVal >> 12) & 0xFF
	length := (lenVal & 0xFFF) + 1
	length = (length + 7) &^ 7 // round up to 8 bytes (spec §4.5).

	bank, offset := u.memoryWindow()
	dramAddr := u.DramAddr

	u.dmaBusy = true
	for row := uint32(0); row < rowCount; row++ {
		// Clamp so a single row never crosses the 4 KiB instruction/data
		// memory boundary (spec §6, §7: "DMA length overflow... clamped").
		rowLen := length
		if remaining := memory.Size - int(offset); rowLen > uint32(remaining) {
			rowLen = uint32(remaining)
		}
		if fromDRAM {
			data := u.dram.Read(dramAddr, int(rowLen))
			memory.WriteBlock(bank, uint16(offset), data)
		} else {
			data := memory.ReadBlock(bank, uint16(offset), int(rowLen))
			u.dram.Write(dramAddr, data)
		}
		offset = (offset + length + rowSkip) & memory.AddrMask
		dramAddr += length + rowSkip
	}
	u.dmaBusy = false
	u.DramAddr = dramAddr
	u.MemAddr = (u.MemAddr &^ memory.AddrMask) | offset
}

// memoryWindow resolves MemAddr to the selected bank (instruction memory
// when bit 12 is set, data memory otherwise — the same "in-imem" marker
// convention as the program counter, spec §3) and its offset within it.
func (u *Unit) memoryWindow() (memory.Bank, uint32) {
	offset := u.MemAddr & memory.AddrMask
	if u.MemAddr&0x1000 != 0 {
		return u.imem, offset
	}
	return u.dmem, offset
}
