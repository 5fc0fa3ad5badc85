package mock

import "sxb/board"

const driverName = "mock"

type Driver struct{}

func (d *Driver) Open(portName string, mode *board.Mode) (board.Transport, error) {
	return NewDevice(DefaultIdent()), nil
}

func init() {
	board.Register(driverName, &Driver{})
}
