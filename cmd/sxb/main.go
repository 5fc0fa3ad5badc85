// Command sxb drives a WDC W65C02SXB/W65C816SXB developer board over its
// serial link using the TIDE monitor protocol.
//
//	sxb [flags] info
//	sxb [flags] vectors
//	sxb [flags] read ADDR LEN
//	sxb [flags] load FILE
//	sxb [flags] run FILE
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/spf13/pflag"

	"sxb/board"
	"sxb/board/tide"
	"sxb/util"
)

// include these board transport drivers:
import (
	_ "sxb/board/mock"
	_ "sxb/board/serialport"
)

var (
	flagDriver  = pflag.String("driver", "", "transport driver to use (serial, mock)")
	flagPort    = pflag.StringP("port", "p", "", "serial port device (default: autodetect)")
	flagBaud    = pflag.Int("baud", 0, "link baud rate")
	flagNative  = pflag.Bool("native", false, "run a 65816-class board in native mode")
	flagConfig  = pflag.StringP("config", "c", "", "path to a TOML config file")
	flagVerbose = pflag.BoolP("verbose", "v", false, "report transfer progress and timing")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] {info|vectors|read ADDR LEN|load FILE|run FILE}\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "drivers: %v\n\nflags:\n", board.Drivers())
	pflag.PrintDefaults()
}

func main() {
	pflag.Usage = usage
	pflag.Parse()

	logPath := util.SetupLogging("sxb")
	if logPath != "" && *flagVerbose {
		log.Printf("logging to '%s'\n", logPath)
	}

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		log.Fatal(err)
	}
	applyFlags(&cfg)

	args := pflag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := dispatch(cfg, args[0], args[1:]); err != nil {
		log.Fatal(err)
	}
}

func dispatch(cfg config, cmd string, args []string) error {
	switch cmd {
	case "info":
		return withSession(cfg, cmdInfo)
	case "vectors":
		return withSession(cfg, cmdVectors)
	case "read":
		if len(args) != 2 {
			return fmt.Errorf("read needs ADDR and LEN arguments")
		}
		addr, err := parseNum(args[0], 24)
		if err != nil {
			return fmt.Errorf("bad address %q: %w", args[0], err)
		}
		length, err := parseNum(args[1], 16)
		if err != nil {
			return fmt.Errorf("bad length %q: %w", args[1], err)
		}
		return withSession(cfg, func(s *tide.Session) error {
			return cmdRead(s, addr, int(length))
		})
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("load needs a FILE argument")
		}
		return withSession(cfg, func(s *tide.Session) error {
			_, err := cmdLoad(s, args[0])
			return err
		})
	case "run":
		if len(args) != 1 {
			return fmt.Errorf("run needs a FILE argument")
		}
		return withSession(cfg, func(s *tide.Session) error {
			return cmdRun(s, args[0])
		})
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// parseNum accepts decimal, 0x hex and octal per strconv base 0.
func parseNum(s string, bits int) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	return uint32(v), err
}

// transfer latency samples collected by the progress callback, for the
// verbose histogram.
var chunkMillis []float64

func withSession(cfg config, fn func(*tide.Session) error) error {
	opts := []tide.Option{tide.WithEmulation(!cfg.Native)}
	if *flagVerbose {
		last := time.Now()
		opts = append(opts, tide.WithProgress(func(done, total int) {
			now := time.Now()
			chunkMillis = append(chunkMillis, float64(now.Sub(last).Microseconds())/1000.0)
			last = now
			fmt.Fprintf(os.Stderr, "\r%d/%d bytes", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}))
	}

	s, err := tide.Dial(cfg.Driver, cfg.Port, &board.Mode{BaudRate: cfg.Baud}, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

func cmdInfo(s *tide.Session) error {
	b := s.Board()

	cpu := "65C02"
	mode := "emulation"
	if b.CPUType != 0 {
		cpu = "65C816"
		if !b.Emulation {
			mode = "native"
		}
	}

	fmt.Printf("board id:       %#02x\n", b.BoardID)
	fmt.Printf("cpu:            %s (%s mode)\n", cpu, mode)
	fmt.Printf("monitor RAM:    %#06x\n", b.MonRAM)
	fmt.Printf("monitor ROM:    %#06x\n", b.MonROM)
	fmt.Printf("hardware I/O:   %#06x\n", b.HwIO)
	fmt.Printf("shadow vectors: %#06x\n", b.ShadowVectorBase)
	return nil
}

func cmdVectors(s *tide.Session) error {
	b := s.Board()

	if addr, ok := b.COPVector(); ok {
		fmt.Printf("COP:   %#06x\n", addr)
	}
	fmt.Printf("BRK:   %#06x\n", b.BRKVector())
	if addr, ok := b.AbortVector(); ok {
		fmt.Printf("ABORT: %#06x\n", addr)
	}
	fmt.Printf("NMI:   %#06x\n", b.NMIVector())
	fmt.Printf("RESET: %#06x\n", b.ResetVector())
	fmt.Printf("IRQ:   %#06x\n", b.IRQVector())
	return nil
}

func cmdRead(s *tide.Session, addr uint32, length int) error {
	data, err := s.ReadMemory(addr, length)
	if err != nil {
		return err
	}
	hexDump(os.Stdout, data, addr)
	return nil
}

func cmdLoad(s *tide.Session, path string) (*tide.Image, error) {
	img, err := tide.LoadImageFile(path)
	if err != nil {
		return nil, err
	}

	n, err := s.LoadImage(img)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	fmt.Printf("loaded %d bytes at %#06x\n", n, img.LoadAddr)

	if *flagVerbose && len(chunkMillis) > 1 {
		fmt.Println("per-block transfer time (ms):")
		hist := histogram.Hist(9, chunkMillis)
		if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
			log.Printf("histogram: %v\n", err)
		}
	}
	return img, nil
}

func cmdRun(s *tide.Session, path string) error {
	img, err := cmdLoad(s, path)
	if err != nil {
		return err
	}

	if err := s.Exec(img.LoadAddr, tide.DefaultExecState()); err != nil {
		return err
	}
	fmt.Printf("executing at %#06x\n", img.LoadAddr)
	return nil
}
