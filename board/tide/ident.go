package tide

import "sxb/board"

// Board is the model decoded from the identity block the monitor returns
// for the TIDE command. All fields are fixed at session start.
type Board struct {
	// MonRAM is the base address of the monitor's register-state RAM block.
	MonRAM uint32

	// CPUType is 0 for 65C02-class boards, nonzero for 65816-class.
	CPUType byte

	// BoardID identifies the board model.
	BoardID byte

	// MonROM is the base address of the monitor ROM.
	MonROM uint32

	// ShadowVectorBase is the base address of the relocated interrupt
	// vector table the monitor maintains.
	ShadowVectorBase uint32

	// HwIO is the base address of the hardware I/O page.
	HwIO uint32

	// HwVectorBase anchors the page used to compute hardware port
	// addresses; see HardwareAddress.
	HwVectorBase uint32

	// Emulation reports whether the CPU runs in 6502-emulation mode.
	// Always true for 65C02-class boards.
	Emulation bool
}

// decodeIdent unpacks the identity block. Field offsets are fixed by the
// monitor firmware; bytes 5-7 and everything past 19 are unused.
func decodeIdent(b []byte, emulationReq bool) Board {
	m := Board{
		MonRAM:           board.DecodeUint(b[0:3]),
		CPUType:          b[3],
		BoardID:          b[4],
		MonROM:           board.DecodeUint(b[8:11]),
		ShadowVectorBase: board.DecodeUint(b[11:14]),
		HwIO:             board.DecodeUint(b[14:17]),
		HwVectorBase:     board.DecodeUint(b[17:20]),
	}

	if m.CPUType == 0 {
		m.Emulation = true
	} else {
		m.Emulation = emulationReq
	}
	return m
}

// Shadow vector addresses. Each is recomputed from the immutable model on
// every call. In emulation mode the monitor keeps the 6502-style vectors 16
// bytes past their native slots (24 for BRK, which shares the IRQ slot in
// emulation).

func (b Board) vector(offset, emuAdjust uint32) uint32 {
	addr := b.ShadowVectorBase + offset
	if b.Emulation {
		addr += emuAdjust
	}
	return addr
}

// COPVector returns the coprocessor vector address. The 65C02 has no COP
// instruction, so ok is false for 65C02-class boards.
func (b Board) COPVector() (addr uint32, ok bool) {
	if b.CPUType == 0 {
		return 0, false
	}
	return b.vector(0, 16), true
}

// AbortVector returns the abort vector address; ok is false for 65C02-class
// boards, which have no ABORTB input vector in the shadow table.
func (b Board) AbortVector() (addr uint32, ok bool) {
	if b.CPUType == 0 {
		return 0, false
	}
	return b.vector(4, 16), true
}

// BRKVector returns the software break vector address.
func (b Board) BRKVector() uint32 {
	return b.vector(2, 24)
}

// NMIVector returns the non-maskable interrupt vector address. In native
// mode this is the unadjusted base+6 slot, consistent with the other
// vectors.
func (b Board) NMIVector() uint32 {
	return b.vector(6, 16)
}

// ResetVector returns the reset vector address.
func (b Board) ResetVector() uint32 {
	return b.vector(8, 16)
}

// IRQVector returns the interrupt-request vector address.
func (b Board) IRQVector() uint32 {
	return b.vector(10, 16)
}

// HardwareAddress maps an offset onto the board's hardware port page: the
// high byte comes from HwVectorBase, the low byte from the offset.
func (b Board) HardwareAddress(offset uint32) uint32 {
	return b.HwVectorBase&0xFF00 | offset&0x00FF
}
