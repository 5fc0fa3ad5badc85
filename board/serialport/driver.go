// Package serialport provides the real serial-link transport driver for SXB
// boards, registered as "serial". The boards expose a USB-to-serial bridge;
// the monitor talks 8N1 at 9600 baud.
package serialport

import (
	"fmt"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"sxb/board"
)

const driverName = "serial"

// ftdiVID is the USB vendor ID of the FTDI bridge the SXB boards ship with.
const ftdiVID = "0403"

type Driver struct{}

// DetectDevice scans the system serial ports for a plausible board: an FTDI
// USB bridge if one is present, otherwise the first USB serial port.
func DetectDevice() (portName string, err error) {
	var ports []*enumerator.PortDetails

	ports, err = enumerator.GetDetailedPortsList()
	if err != nil {
		return
	}

	for _, port := range ports {
		if !port.IsUSB {
			continue
		}

		if port.VID == ftdiVID {
			portName = port.Name
			return
		}
		if portName == "" {
			portName = port.Name
		}
	}

	if portName == "" {
		err = board.ErrNoBoardFound
	}
	return
}

// Port wraps a serial.Port as a board.Transport.
type Port struct {
	f serial.Port
}

func (p *Port) Write(b []byte) (int, error) { return p.f.Write(b) }
func (p *Port) Read(b []byte) (int, error)  { return p.f.Read(b) }

func (p *Port) Close() error {
	// Clear DTR (ignore any errors since we're closing):
	p.f.SetDTR(false)

	if err := p.f.Close(); err != nil {
		return fmt.Errorf("serialport: could not close serial port: %w", err)
	}
	return nil
}

func (d *Driver) Open(portName string, mode *board.Mode) (board.Transport, error) {
	var err error

	if portName == "" {
		portName, err = DetectDevice()
		if err != nil {
			return nil, err
		}
	}

	baud := 9600
	if mode != nil && mode.BaudRate != 0 {
		baud = mode.BaudRate
	}

	f, err := serial.Open(portName, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("serialport: failed to open %s at %d baud: %w", portName, baud, err)
	}

	// set DTR:
	if err = f.SetDTR(true); err != nil {
		f.Close()
		return nil, fmt.Errorf("serialport: failed to set DTR: %w", err)
	}

	return &Port{f: f}, nil
}

func init() {
	board.Register(driverName, &Driver{})
}
