// Package mock provides an in-memory board that speaks just enough of the
// monitor protocol for tests and dry runs. It registers as the "mock"
// transport driver.
package mock

import (
	"fmt"

	"sxb/board"
)

// Ident holds the fields the mock encodes into its identity block.
type Ident struct {
	MonRAM           uint32
	CPUType          byte
	BoardID          byte
	MonROM           uint32
	ShadowVectorBase uint32
	HwIO             uint32
	HwVectorBase     uint32
}

// DefaultIdent resembles a W65C816SXB with the monitor workspace at the top
// of bank zero.
func DefaultIdent() Ident {
	return Ident{
		MonRAM:           0x007E00,
		CPUType:          1,
		BoardID:          0x58,
		MonROM:           0x008000,
		ShadowVectorBase: 0x007EE0,
		HwIO:             0x007F00,
		HwVectorBase:     0x007FC0,
	}
}

func (id Ident) encode() []byte {
	b := make([]byte, board.IdentBlockSize)
	copy(b[0:3], board.AppendAddr(nil, id.MonRAM))
	b[3] = id.CPUType
	b[4] = id.BoardID
	copy(b[8:11], board.AppendAddr(nil, id.MonROM))
	copy(b[11:14], board.AppendAddr(nil, id.ShadowVectorBase))
	copy(b[14:17], board.AppendAddr(nil, id.HwIO))
	copy(b[17:20], board.AppendAddr(nil, id.HwVectorBase))
	return b
}

// Device is a scripted board behind a board.Transport. It parses the probe
// and command stream byte-for-byte the way the monitor does and keeps a
// sparse memory map for WRITE/READ round trips.
//
// Every transport write is recorded in Writes so tests can assert on exact
// framing and chunking.
type Device struct {
	ident Ident

	mem map[uint32]byte

	// Writes records each transport-level write in order.
	Writes [][]byte

	// ExecCount counts dispatched EXEC commands.
	ExecCount int

	// ProbeReply is sent in answer to the 55 AA probe; anything but
	// AttentionOK makes the board look busy.
	ProbeReply byte

	// ReadChunk, when positive, caps how many bytes a single transport
	// read returns, forcing callers to loop.
	ReadChunk int

	// WriteErr, when set, fails every transport write after WriteErrAfter
	// more successful ones.
	WriteErr      error
	WriteErrAfter int

	awaitCmd    bool
	wrAddr      uint32
	wrRemaining int
	replies     []byte
	closed      bool
}

func NewDevice(id Ident) *Device {
	return &Device{
		ident:      id,
		mem:        make(map[uint32]byte),
		ProbeReply: board.AttentionOK,
	}
}

// SetMemory seeds the board memory map.
func (d *Device) SetMemory(addr uint32, data []byte) {
	for i, b := range data {
		d.mem[addr+uint32(i)] = b
	}
}

// Memory reads n bytes back out of the memory map; unwritten cells are zero.
func (d *Device) Memory(addr uint32, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = d.mem[addr+uint32(i)]
	}
	return out
}

// ResetLog clears the recorded writes.
func (d *Device) ResetLog() {
	d.Writes = nil
}

func (d *Device) Write(p []byte) (int, error) {
	if d.closed {
		return 0, fmt.Errorf("mock: write on closed device")
	}

	rec := make([]byte, len(p))
	copy(rec, p)
	d.Writes = append(d.Writes, rec)

	if d.WriteErr != nil {
		if d.WriteErrAfter <= 0 {
			return 0, d.WriteErr
		}
		d.WriteErrAfter--
	}

	switch {
	case d.wrRemaining > 0:
		for _, b := range p {
			d.mem[d.wrAddr] = b
			d.wrAddr++
			d.wrRemaining--
		}

	case len(p) == 2 && p[0] == board.AttentionProbe[0] && p[1] == board.AttentionProbe[1]:
		d.replies = append(d.replies, d.ProbeReply)
		d.awaitCmd = true

	case d.awaitCmd:
		d.awaitCmd = false
		d.handleCommand(p)
	}

	return len(p), nil
}

func (d *Device) handleCommand(p []byte) {
	switch p[0] {
	case board.OpTIDE:
		d.replies = append(d.replies, d.ident.encode()...)

	case board.OpRead:
		addr := board.DecodeUint(p[1:4])
		n := int(board.DecodeUint(p[4:6]))
		d.replies = append(d.replies, d.Memory(addr, n)...)

	case board.OpWrite:
		d.wrAddr = board.DecodeUint(p[1:4])
		d.wrRemaining = int(board.DecodeUint(p[4:6]))

	case board.OpExec:
		d.ExecCount++
	}
}

func (d *Device) Read(p []byte) (int, error) {
	if d.closed {
		return 0, fmt.Errorf("mock: read on closed device")
	}
	if len(d.replies) == 0 {
		return 0, fmt.Errorf("mock: read with nothing queued to send")
	}

	n := len(p)
	if n > len(d.replies) {
		n = len(d.replies)
	}
	if d.ReadChunk > 0 && n > d.ReadChunk {
		n = d.ReadChunk
	}
	copy(p, d.replies[:n])
	d.replies = d.replies[n:]
	return n, nil
}

func (d *Device) Close() error {
	d.closed = true
	return nil
}
