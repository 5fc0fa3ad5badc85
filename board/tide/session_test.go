package tide_test

import (
	"bytes"
	"errors"
	"log"
	"os"
	"testing"

	"sxb/board"
	"sxb/board/mock"
	"sxb/board/tide"
	"sxb/util"
)

func newTestSession(t *testing.T, dev *mock.Device, opts ...tide.Option) *tide.Session {
	t.Helper()
	s, err := tide.NewSession(dev, opts...)
	if err != nil {
		t.Fatal(err)
	}
	dev.ResetLog()
	return s
}

func TestSessionQueriesIdentityOnConnect(t *testing.T) {
	dev := mock.NewDevice(mock.Ident{
		MonRAM:           0x123456,
		CPUType:          1,
		BoardID:          0x42,
		MonROM:           0x00F000,
		ShadowVectorBase: 0x007EE0,
		HwIO:             0x007F00,
		HwVectorBase:     0x007FC0,
	})

	s, err := tide.NewSession(dev)
	if err != nil {
		t.Fatal(err)
	}

	b := s.Board()
	if b.MonRAM != 0x123456 {
		t.Fatalf("MonRAM = %#x", b.MonRAM)
	}
	if b.CPUType != 1 || b.BoardID != 0x42 {
		t.Fatalf("CPUType=%d BoardID=%#x", b.CPUType, b.BoardID)
	}
	if b.MonROM != 0x00F000 || b.ShadowVectorBase != 0x007EE0 {
		t.Fatalf("MonROM=%#x ShadowVectorBase=%#x", b.MonROM, b.ShadowVectorBase)
	}
	if b.HwIO != 0x007F00 || b.HwVectorBase != 0x007FC0 {
		t.Fatalf("HwIO=%#x HwVectorBase=%#x", b.HwIO, b.HwVectorBase)
	}

	// the wire traffic must be exactly: probe, TIDE opcode alone
	if len(dev.Writes) != 2 {
		t.Fatalf("writes: %d", len(dev.Writes))
	}
	if !bytes.Equal(dev.Writes[0], board.AttentionProbe[:]) {
		t.Fatalf("probe: % 02X", dev.Writes[0])
	}
	if !bytes.Equal(dev.Writes[1], []byte{board.OpTIDE}) {
		t.Fatalf("TIDE packet: % 02X", dev.Writes[1])
	}
}

func TestEmulationForcedFor65C02(t *testing.T) {
	id := mock.DefaultIdent()
	id.CPUType = 0
	dev := mock.NewDevice(id)

	s := newTestSession(t, dev, tide.WithEmulation(false))
	if !s.Board().Emulation {
		t.Fatal("65C02-class board must run in emulation mode")
	}
}

func TestEmulationOptionFor65816(t *testing.T) {
	dev := mock.NewDevice(mock.DefaultIdent())
	s := newTestSession(t, dev, tide.WithEmulation(false))
	if s.Board().Emulation {
		t.Fatal("native mode requested but emulation is set")
	}

	dev = mock.NewDevice(mock.DefaultIdent())
	s = newTestSession(t, dev)
	if !s.Board().Emulation {
		t.Fatal("emulation must default to on")
	}
}

func TestHandshakeFailureSendsNoCommand(t *testing.T) {
	log.SetOutput(util.NewTestingLogger(t))
	defer log.SetOutput(os.Stderr)

	dev := mock.NewDevice(mock.DefaultIdent())
	s := newTestSession(t, dev)

	dev.ProbeReply = 0x00 // board busy

	_, err := s.ReadMemory(0x0200, 16)
	if !errors.Is(err, board.ErrNotReady) {
		t.Fatalf("err = %v", err)
	}
	// only the probe may have hit the wire
	if len(dev.Writes) != 1 || !bytes.Equal(dev.Writes[0], board.AttentionProbe[:]) {
		t.Fatalf("writes after failed handshake: %v", dev.Writes)
	}

	dev.ResetLog()
	if _, err = s.WriteMemory(0x0200, []byte{1, 2, 3}); !errors.Is(err, board.ErrNotReady) {
		t.Fatalf("err = %v", err)
	}
	if len(dev.Writes) != 1 {
		t.Fatalf("writes after failed handshake: %v", dev.Writes)
	}
}

func TestWriteTimeoutIsRecoverable(t *testing.T) {
	log.SetOutput(util.NewTestingLogger(t))
	defer log.SetOutput(os.Stderr)

	dev := mock.NewDevice(mock.DefaultIdent())
	s := newTestSession(t, dev)

	// fail the probe write itself
	dev.WriteErr = errors.New("serial: write timeout")

	if _, err := s.WriteMemory(0x0200, []byte{1}); !errors.Is(err, board.ErrNotReady) {
		t.Fatalf("err = %v", err)
	}
}

func TestDialUnknownDriver(t *testing.T) {
	if _, err := tide.Dial("no-such-driver", "", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestDialMockDriver(t *testing.T) {
	s, err := tide.Dial("mock", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.Board().CPUType == 0 {
		t.Fatal("default mock board should be 65816-class")
	}
}
