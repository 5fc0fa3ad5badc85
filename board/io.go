package board

import "fmt"

// WriteFull writes all of buf to the transport, retrying short writes.
// Serial ports may accept fewer bytes than offered without error.
func WriteFull(t Transport, buf []byte) error {
	sent := 0
	for sent < len(buf) {
		n, err := t.Write(buf[sent:])
		if err != nil {
			return err
		}
		sent += n
	}
	return nil
}

// ReadFull reads exactly len(buf) bytes from the transport, looping over
// whatever partial counts the port delivers.
func ReadFull(t Transport, buf []byte) error {
	o := 0
	for o < len(buf) {
		n, err := t.Read(buf[o:])
		if err != nil {
			return err
		}
		if n <= 0 {
			return fmt.Errorf("board: Read returned %d", n)
		}
		o += n
	}
	return nil
}
