package board

// TIDE monitor protocol constants. These are fixed by the SXB monitor ROM
// firmware; treat them as a versioned protocol table, not configuration.

// Attention probe and its acknowledgement. The monitor answers every 55 AA
// probe with a single CC byte when it is ready to accept a command.
var AttentionProbe = [2]byte{0x55, 0xAA}

const AttentionOK = 0xCC

// Command opcodes.
const (
	// OpWrite writes a block of board memory; followed by a 3-byte address
	// and a 2-byte payload length, then the payload itself.
	OpWrite = 0x02

	// OpRead reads a block of board memory; followed by a 3-byte address
	// and a 2-byte length.
	OpRead = 0x03

	// OpTIDE queries the board identity block; no address, no length.
	OpTIDE = 0x04

	// OpExec loads processor state from monitor RAM and resumes execution;
	// no address, length fixed at 1.
	OpExec = 0x05
)

// BlockSize is the largest payload the monitor's receive buffer accepts in
// one link-level write, and the stride used when reading back.
const BlockSize = 62

// IdentBlockSize is how many bytes the board sends in reply to OpTIDE.
const IdentBlockSize = 0x20

// Executable image framing produced by the WDC toolchain with -g:
// flag byte, 3-byte load address, 2-byte code length, one pad byte,
// then the code payload.
const (
	ImageFlag       = 0x5A
	ImageHeaderSize = 7
)
