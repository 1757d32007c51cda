// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	intcode_io "github.com/ezrec/intcode/io"
)

// openInput opens 'path' for reading; "-" is stdin.
func openInput(path string) (inf io.ReadCloser) {
	if path == "-" {
		return os.Stdin
	}

	inf, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	return
}

// createOutput opens 'path' for writing; "-" is stdout.
func createOutput(path string) (ouf io.WriteCloser) {
	if path == "-" {
		return os.Stdout
	}

	ouf, err := os.Create(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	return
}

func main() {
	var compile string
	var image string
	var configFile string
	var save bool
	var list bool
	var robot bool
	var report string
	var input string
	var output string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".ic file to compile")
	flag.StringVar(&image, "p", "", "Program image to load")
	flag.StringVar(&configFile, "f", "", ".toml configuration file")
	flag.BoolVar(&save, "s", false, "Save program image to output, do not execute")
	flag.BoolVar(&list, "l", false, "List disassembly to output, do not execute")
	flag.BoolVar(&robot, "robot", false, "Drive the hull painting robot")
	flag.StringVar(&report, "r", "-", "Robot report output")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(image) != 0 {
		log.Fatalf("%v: -c and -p are exclusive", os.Args[0])
	}

	cfg := config.Default()
	if len(configFile) != 0 {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	hull := &intcode_io.Hull{}
	if robot {
		emu.Channel = hull
	}

	cfg.Apply(emu)

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf := openInput(compile)
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: emu.Verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}

		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Program = prog
	}

	// Load an existing program image.
	if len(image) != 0 {
		inf := openInput(image)
		defer inf.Close()

		rom, err := intcode_io.ParseRom(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		emu.Program = cpu.NewProgramFromBinary(rom.Data)
	}

	if save || list {
		ouf := createOutput(output)
		defer ouf.Close()

		if save {
			rom := &intcode_io.Rom{Data: emu.Program.Binary()}
			_, err := rom.WriteTo(ouf)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
		}

		if list {
			for ip, text := range emu.Listing() {
				lineno := 0
				if dbg := emu.Program.Debug(ip); dbg.Opcode != nil {
					lineno = dbg.LineNo
				}
				_, err := fmt.Fprintf(ouf, "%04d: %-24s ; line %d\n", ip, text, lineno)
				if err != nil {
					log.Fatalf("%v: %v", output, err)
				}
			}
		}

		return
	}

	if !robot {
		tape := &intcode_io.Tape{}

		inf := openInput(input)
		defer inf.Close()
		tape.Input = inf

		ouf := createOutput(output)
		defer ouf.Close()
		tape.Output = ouf

		emu.Channel = tape
	}

	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if robot {
		ouf := createOutput(report)
		defer ouf.Close()

		err = hull.WriteReport(ouf)
		if err != nil {
			log.Fatalf("%v: %v", report, err)
		}
	}
}
