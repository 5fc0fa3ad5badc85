package tide

import (
	"fmt"

	"sxb/board"
)

// WriteMemory writes data into board memory starting at addr, splitting the
// payload into 62-byte blocks. No acknowledgement is read between blocks;
// the serial link is byte-ordered and the monitor consumes them as they
// arrive. Returns the count actually written and the first transport error,
// or ErrNotReady when the command dispatch failed and nothing was sent.
func (s *Session) WriteMemory(addr uint32, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	length := uint32(len(data))
	if !s.command(board.OpWrite, &addr, &length) {
		return 0, board.ErrNotReady
	}

	if len(data) < board.BlockSize {
		if err := board.WriteFull(s.t, data); err != nil {
			return 0, fmt.Errorf("tide: write %d bytes at %#06x: %w", len(data), addr, err)
		}
		s.report(len(data), len(data))
		return len(data), nil
	}

	sent := 0
	for blk := 0; blk < len(data); blk += board.BlockSize {
		end := blk + board.BlockSize
		if end > len(data) {
			end = len(data)
		}
		if err := board.WriteFull(s.t, data[blk:end]); err != nil {
			return sent, fmt.Errorf("tide: write block at %#06x: %w", addr+uint32(blk), err)
		}
		sent = end
		s.report(sent, len(data))
	}
	return sent, nil
}

// ReadMemory reads length bytes of board memory starting at addr. The
// assembled buffer is always exactly length bytes; short reads surface as
// errors from the transport, never as a short result.
func (s *Session) ReadMemory(addr uint32, length int) ([]byte, error) {
	if length == 0 {
		return []byte{}, nil
	}

	l := uint32(length)
	if !s.command(board.OpRead, &addr, &l) {
		return nil, board.ErrNotReady
	}
	return s.readStream(length)
}

// readStream collects length bytes the board is already sending, in
// 62-byte strides with a final partial stride.
func (s *Session) readStream(length int) ([]byte, error) {
	buf := make([]byte, length)

	if length < board.BlockSize {
		if err := board.ReadFull(s.t, buf); err != nil {
			return nil, fmt.Errorf("tide: read %d bytes: %w", length, err)
		}
		s.report(length, length)
		return buf, nil
	}

	for blk := 0; blk < length; blk += board.BlockSize {
		end := blk + board.BlockSize
		if end > length {
			end = length
		}
		if err := board.ReadFull(s.t, buf[blk:end]); err != nil {
			return nil, fmt.Errorf("tide: read block at offset %d: %w", blk, err)
		}
		s.report(end, length)
	}
	return buf, nil
}

// ReadStack reads the 6502 hardware stack page ($0100-$01FF).
func (s *Session) ReadStack() ([]byte, error) {
	return s.ReadMemory(0x0100, 256)
}

// ReadZeroPage reads the zero page ($0000-$00FF).
func (s *Session) ReadZeroPage() ([]byte, error) {
	return s.ReadMemory(0x0000, 256)
}

// ReadProcessorState reads the register-state block the monitor keeps in
// its RAM area.
func (s *Session) ReadProcessorState() ([]byte, error) {
	return s.ReadMemory(s.b.MonRAM, 16)
}
