// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	stdio "io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/emulator"
	"github.com/ezrec/nibble/io"
	"github.com/ezrec/nibble/programs"
)

func main() {
	var source string
	var assemble string
	var output string
	var binary string
	var delay time.Duration
	var limit int
	var verbose bool

	// Pace execution for a human watching a terminal.
	defaultDelay := time.Duration(0)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		defaultDelay = 100 * time.Millisecond
	}

	flag.StringVar(&source, "c", "", ".hex program source to run")
	flag.StringVar(&assemble, "a", "", ".asm program source to assemble")
	flag.StringVar(&output, "o", "-", "Output token stream")
	flag.StringVar(&binary, "b", "", "Save program image to file, do not execute")
	flag.DurationVar(&delay, "d", defaultDelay, "Delay between instructions")
	flag.IntVar(&limit, "n", 0, "Maximum instructions to execute (0 is unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Delay = delay
	emu.Limit = limit

	var err error
	switch {
	case len(source) != 0 && len(assemble) != 0:
		log.Fatalf("%v: -c and -a are exclusive", os.Args[0])
	case len(source) != 0:
		inf, err := os.Open(source)
		if err != nil {
			log.Fatalf("%v: %v", source, err)
		}
		defer inf.Close()
		err = emu.LoadHex(inf)
		if err != nil {
			log.Fatalf("%v: %v", source, err)
		}
	case len(assemble) != 0:
		inf, err := os.Open(assemble)
		if err != nil {
			log.Fatalf("%v: %v", assemble, err)
		}
		defer inf.Close()
		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", assemble, err)
		}
	default:
		err = emu.LoadHex(strings.NewReader(programs.FibonacciHex))
		if err != nil {
			log.Fatal(err)
		}
	}

	err = emu.Reset()
	if errors.Is(err, cpu.ErrProgramTruncated) {
		log.Printf("%v: warning: %v", os.Args[0], err)
	} else if err != nil {
		log.Fatal(err)
	}

	if len(binary) != 0 {
		err = os.WriteFile(binary, emu.Cpu.State.Program[:], 0o644)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		return
	}

	var ouf stdio.Closer
	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		file, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		emu.Tape.Output = file
		ouf = file
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	cerr := closeOutput(&emu.Tape, ouf)
	if cerr != nil {
		log.Printf("%v: %v", output, cerr)
	}
	if err != nil {
		log.Print(err)
		if verbose {
			log.Printf("\n%v", emu.Cpu.String())
		}
		os.Exit(1)
	}

	if emu.Halt != nil {
		log.Print(emu.Halt)
	}

	if cerr != nil {
		os.Exit(1)
	}
}

// closeOutput terminates the token stream, then closes the output file
// if there is one. Both errors are reported.
func closeOutput(tape *io.Tape, ouf stdio.Closer) (err error) {
	err = tape.Close()
	if ouf != nil {
		err = errors.Join(err, ouf.Close())
	}

	return
}
