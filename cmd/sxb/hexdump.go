package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var addrColumn = color.New(color.FgCyan).SprintfFunc()

// hexDump prints data 16 bytes per line with a colored address column and a
// gap after each group of 8, in the monitor's customary format:
//
//	0x0200:  A9 01 8D 00 02 A9 05 8D  01 02 60 00 00 00 00 00
func hexDump(w io.Writer, data []byte, startAddr uint32) {
	for i, b := range data {
		if i%16 == 0 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s ", addrColumn("%#06x:", startAddr+uint32(i)))
		}
		if i%8 == 0 && i%16 != 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, " %02X", b)
	}
	if len(data) > 0 {
		fmt.Fprintln(w)
	}
}
