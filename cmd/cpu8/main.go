// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ezrec/cpu8/config"
	"github.com/ezrec/cpu8/cpu"
	"github.com/ezrec/cpu8/io"
	"github.com/ezrec/cpu8/translate"
)

var f = translate.From

func main() {
	var script string
	var halt string
	var device string
	var frequency int
	var input string
	var output string
	var verbose bool
	var watch bool
	var locale string

	flag.StringVar(&script, "c", "", ".star configuration file")
	flag.StringVar(&halt, "halt", "", "HALT policy: spin or terminate")
	flag.StringVar(&device, "d", "", "I/O device: none, tape, temp or rom")
	flag.IntVar(&frequency, "f", 0, "Cycles per second, 0 for unthrottled")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&verbose, "v", false, "Trace every cycle")
	flag.BoolVar(&watch, "watch", false, "Refresh the register dump on the console every cycle")
	flag.StringVar(&locale, "locale", "", "Message locale")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := config.Default()

	if len(script) != 0 {
		var err error
		cfg, err = config.Load(script, nil)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	}

	// Flags given on the command line override the configuration file.
	var err error
	flag.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "halt":
			cfg.Halt, err = config.ParseHaltPolicy(halt)
		case "d":
			cfg.Device, err = io.ParseDeviceId(device)
		case "f":
			cfg.Frequency = frequency
		case "v":
			cfg.Trace = verbose
		case "watch":
			cfg.Watch = watch
		case "locale":
			cfg.Locale = locale
		}
	})
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	err = cfg.ApplyLocale()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	tape := &io.Tape{}
	if cfg.Device == io.DEVICE_TAPE {
		if input == "-" {
			tape.Input = os.Stdin
		} else {
			inf, err := os.Open(input)
			if err != nil {
				log.Fatalf("%v: %v", input, err)
			}
			defer inf.Close()
			tape.Input = inf
		}

		if output == "-" {
			tape.Output = os.Stdout
		} else {
			ouf, err := os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
			tape.Output = ouf
		}
	}

	emu, err := cfg.NewEmulator(tape)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if cfg.Watch {
		watcher, ok := NewWatcher(os.Stderr)
		if ok {
			emu.Monitor = func(trace *cpu.Trace) {
				watcher.Refresh(emu.Cpu)
			}
		} else {
			log.Printf("%v", f("%v: -watch needs a terminal", os.Args[0]))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SIGUSR1 sets the trap flag.
	trap := make(chan os.Signal, 1)
	signal.Notify(trap, syscall.SIGUSR1)
	defer signal.Stop(trap)
	go func() {
		for range trap {
			if !emu.Trap() {
				log.Printf("%v", f("%v: trap request dropped", os.Args[0]))
			}
		}
	}()

	err = emu.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		log.Printf("%v", f("%v: interrupted at pc 0x%02x", os.Args[0], emu.Cpu.Pc))
	default:
		log.Print(emu.Cpu.String())
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if cfg.Trace {
		log.Printf("%v", f("%v: %d cycles", os.Args[0], emu.Ticks()))
	}
}
