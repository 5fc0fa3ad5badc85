package util

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// SetupLogging points the stdlib logger at stderr plus a timestamped file in
// the temp directory, and returns the file path. Logging still works if the
// file cannot be opened; it just goes to stderr only.
func SetupLogging(app string) string {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.LUTC)

	ts := time.Now().UTC().Format("2006-01-02T15-04-05Z")
	logPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.log", app, ts))

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("could not open log file '%s' for writing\n", logPath)
		return ""
	}

	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	return logPath
}
