package util

import (
	"bytes"
	"io"
	"testing"
)

type tbWriter struct {
	tb  testing.TB
	buf []byte
}

func (w *tbWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.tb.Log(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// NewTestingLogger returns an io.Writer that forwards complete log lines to
// tb.Log, for routing the package logger through the test runner.
func NewTestingLogger(tb testing.TB) io.Writer {
	return &tbWriter{tb: tb}
}
