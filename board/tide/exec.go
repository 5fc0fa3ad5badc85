package tide

import (
	"fmt"

	"sxb/board"
)

// DefaultFlags is the processor status byte the monitor conventionally
// starts programs with.
const DefaultFlags = 0x76

// ExecState carries the register values loaded into the CPU before
// execution starts.
type ExecState struct {
	A, X, Y uint16
	Flags   byte
}

// DefaultExecState returns an ExecState with cleared registers and the
// conventional status flags.
func DefaultExecState() ExecState {
	return ExecState{Flags: DefaultFlags}
}

// Exec writes a processor state record to the monitor's RAM block and
// dispatches the EXEC command, starting execution at addr. Execution begins
// asynchronously on the board; it is not awaited or confirmed.
//
// Record layout, all little-endian: A, X, Y as 2-byte pairs; 2-byte program
// counter; 2-byte direct register (zero); stack pointer FF 01; status
// flags; emulation flag; program bank; data bank.
func (s *Session) Exec(addr uint32, st ExecState) error {
	pc := board.AppendAddr(nil, addr)

	emu := byte(0)
	if s.b.Emulation {
		emu = 1
	}

	rec := make([]byte, 0, 16)
	rec = board.AppendLen(rec, uint32(st.A))
	rec = board.AppendLen(rec, uint32(st.X))
	rec = board.AppendLen(rec, uint32(st.Y))
	rec = append(rec, pc[0], pc[1]) // program counter, low 16 bits
	rec = append(rec, 0, 0)         // direct register
	rec = append(rec, 0xFF, 0x01)   // stack pointer
	rec = append(rec, st.Flags, emu)
	rec = append(rec, 0, 0) // program bank, data bank

	if _, err := s.WriteMemory(s.b.MonRAM, rec); err != nil {
		return fmt.Errorf("tide: load processor state: %w", err)
	}

	length := uint32(1)
	if !s.command(board.OpExec, nil, &length) {
		return board.ErrNotReady
	}
	return nil
}
