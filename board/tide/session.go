// Package tide implements the TIDE (Terbium IDE) monitor protocol spoken by
// the WDC W65C02SXB and W65C816SXB developer boards over their serial link.
//
// A Session owns its transport exclusively and is strictly synchronous: one
// caller, one in-flight command. Every operation probes the monitor for
// attention, frames a command packet, then moves any payload in 62-byte
// blocks, because the monitor's receive buffer cannot absorb more per write.
package tide

import (
	"fmt"
	"log"

	"sxb/board"
)

type Session struct {
	t board.Transport
	b Board

	// requested emulation mode; overridden to true for 65C02-class boards
	// during identity decode.
	emulationReq bool

	progress func(done, total int)
}

type Option func(*Session)

// WithEmulation selects 6502-emulation mode for 65816-class boards. It is
// ignored (forced on) when the board reports a 65C02-class CPU. The choice
// is fixed for the session lifetime.
func WithEmulation(on bool) Option {
	return func(s *Session) { s.emulationReq = on }
}

// WithProgress installs a callback invoked after each transferred block of a
// memory read or write, with the byte counts done so far and in total.
func WithProgress(fn func(done, total int)) Option {
	return func(s *Session) { s.progress = fn }
}

// Dial opens a transport to the board via the named registered driver and
// establishes a session over it.
func Dial(driverName, portName string, mode *board.Mode, opts ...Option) (*Session, error) {
	t, err := board.Open(driverName, portName, mode)
	if err != nil {
		return nil, err
	}

	s, err := NewSession(t, opts...)
	if err != nil {
		t.Close()
		return nil, err
	}
	return s, nil
}

// NewSession takes exclusive ownership of the transport, queries the board
// identity block and decodes the board model. The model is immutable for the
// life of the session; re-querying the board is not supported.
func NewSession(t board.Transport, opts ...Option) (*Session, error) {
	s := &Session{t: t, emulationReq: true}
	for _, o := range opts {
		o(s)
	}

	if !s.command(board.OpTIDE, nil, nil) {
		return nil, board.ErrNotReady
	}
	ident := make([]byte, board.IdentBlockSize)
	if err := board.ReadFull(t, ident); err != nil {
		return nil, fmt.Errorf("tide: read identity block: %w", err)
	}
	s.b = decodeIdent(ident, s.emulationReq)

	return s, nil
}

// Board returns the decoded board model.
func (s *Session) Board() Board {
	return s.b
}

func (s *Session) Close() error {
	return s.t.Close()
}

// attention probes the monitor with 55 AA and expects a single CC back.
// Every failure mode reads as "not ready"; the caller decides whether to
// retry.
func (s *Session) attention() bool {
	if err := board.WriteFull(s.t, board.AttentionProbe[:]); err != nil {
		log.Printf("tide: attention: %v\n", err)
		return false
	}

	var rsp [1]byte
	if err := board.ReadFull(s.t, rsp[:]); err != nil {
		log.Printf("tide: attention: %v\n", err)
		return false
	}
	return rsp[0] == board.AttentionOK
}

// command frames and transmits one command packet: opcode, then the 3-byte
// address and 2-byte length when the opcode takes them. Nothing is sent
// unless the attention probe succeeds first. Transport faults are swallowed
// into a false result; they never unwind past the session.
func (s *Session) command(op byte, addr, length *uint32) bool {
	if !s.attention() {
		return false
	}

	pkt := make([]byte, 1, 6)
	pkt[0] = op
	if addr != nil {
		pkt = board.AppendAddr(pkt, *addr)
	}
	if length != nil {
		pkt = board.AppendLen(pkt, *length)
	}

	if err := board.WriteFull(s.t, pkt); err != nil {
		log.Printf("tide: command %#02x: %v\n", op, err)
		return false
	}
	return true
}

func (s *Session) report(done, total int) {
	if s.progress != nil {
		s.progress(done, total)
	}
}
