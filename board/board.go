package board

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Represents a synchronous byte-stream link to an SXB board. The monitor
// firmware speaks a strictly request/response protocol, so a Transport is
// owned by exactly one session and all access is serialized by the caller.
// Write may fail with the port's write-timeout error; Read blocks until at
// least one byte is available and may return short counts.
type Transport interface {
	io.Closer

	Write(p []byte) (n int, err error)
	Read(p []byte) (n int, err error)
}

// Mode carries link parameters a driver may honor when opening a port.
type Mode struct {
	// BaudRate of the link; 0 means the protocol default of 9600.
	BaudRate int
}

type Driver interface {
	Open(portName string, mode *Mode) (Transport, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a board transport driver available by the provided name.
// If Register is called twice with the same name or if driver is nil,
// it panics.
func Register(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("board: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("board: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

func unregisterAllDrivers() {
	driversMu.Lock()
	defer driversMu.Unlock()
	// For tests.
	drivers = make(map[string]Driver)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// Open opens a Transport to the board on the named port using the named
// registered driver.
func Open(driverName, portName string, mode *Mode) (Transport, error) {
	driversMu.RLock()
	driveri, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("board: unknown driver %q (forgotten import?)", driverName)
	}

	return driveri.Open(portName, mode)
}
