package tide_test

import (
	"bytes"
	"testing"

	"sxb/board"
	"sxb/board/mock"
	"sxb/board/tide"
)

func TestExecWritesProcessorState(t *testing.T) {
	id := mock.DefaultIdent()
	id.MonRAM = 0x7E00
	dev := mock.NewDevice(id)
	s := newTestSession(t, dev)

	err := s.Exec(0x8000, tide.ExecState{A: 1, X: 2, Y: 3, Flags: tide.DefaultFlags})
	if err != nil {
		t.Fatal(err)
	}

	rec := dev.Memory(0x7E00, 16)
	want := []byte{
		0x01, 0x00, // A
		0x02, 0x00, // X
		0x03, 0x00, // Y
		0x00, 0x80, // PC
		0x00, 0x00, // direct register
		0xFF, 0x01, // stack pointer
		0x76,       // status flags
		0x01,       // emulation on
		0x00, 0x00, // program bank, data bank
	}
	if !bytes.Equal(rec, want) {
		t.Fatalf("state record:\n got % 02X\nwant % 02X", rec, want)
	}

	if dev.ExecCount != 1 {
		t.Fatalf("ExecCount = %d", dev.ExecCount)
	}

	// EXEC packet carries length=1 and no address
	last := dev.Writes[len(dev.Writes)-1]
	if !bytes.Equal(last, []byte{board.OpExec, 0x01, 0x00}) {
		t.Fatalf("EXEC packet: % 02X", last)
	}
}

func TestExecNativeModeEmulationByte(t *testing.T) {
	dev := mock.NewDevice(mock.DefaultIdent())
	s := newTestSession(t, dev, tide.WithEmulation(false))

	if err := s.Exec(0x1234, tide.DefaultExecState()); err != nil {
		t.Fatal(err)
	}

	rec := dev.Memory(mock.DefaultIdent().MonRAM, 16)
	if rec[6] != 0x34 || rec[7] != 0x12 {
		t.Fatalf("PC bytes: % 02X", rec[6:8])
	}
	if rec[13] != 0x00 {
		t.Fatalf("emulation byte = %#02x", rec[13])
	}
}

func TestExecNotReady(t *testing.T) {
	dev := mock.NewDevice(mock.DefaultIdent())
	s := newTestSession(t, dev)

	dev.ProbeReply = 0x00
	if err := s.Exec(0x8000, tide.DefaultExecState()); err == nil {
		t.Fatal("expected error when board is not ready")
	}
	if dev.ExecCount != 0 {
		t.Fatal("EXEC must not be dispatched when not ready")
	}
}
