package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/famicore/pkg/gui"
	"github.com/famicore/pkg/input"
	"github.com/famicore/pkg/logger"
	"github.com/famicore/pkg/nes"
)

func main() {
	var (
		logLevel   = flag.String("log-level", "info", "Log level (off, error, warn, info, debug, trace)")
		logFile    = flag.String("log-file", "", "Log file path (empty for stdout)")
		cpuLog     = flag.Bool("cpu-log", false, "Enable CPU logging")
		ppuLog     = flag.Bool("ppu-log", false, "Enable PPU logging")
		apuLog     = flag.Bool("apu-log", false, "Enable APU logging")
		mapperLog  = flag.Bool("mapper-log", false, "Enable mapper logging")
		trace      = flag.Bool("trace", false, "Emit a disassembly line per instruction")
		headless   = flag.Bool("headless", false, "Run without a window")
		frames     = flag.Int("frames", 600, "Number of frames to run in headless mode")
		scale      = flag.Int("scale", 3, "Window scale factor")
		backupPath = flag.String("backup", "", "Battery RAM file (loaded at start, saved on exit)")
	)

	flag.Usage = func() {
		fmt.Printf("Usage: %s [options] <rom_file>\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println("\nControls:")
		fmt.Println("  Z - A button")
		fmt.Println("  X - B button")
		fmt.Println("  A - Select")
		fmt.Println("  S - Start")
		fmt.Println("  Arrow keys - D-pad")
		fmt.Println("  ESC - Quit")
	}

	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	romFile := flag.Arg(0)

	if err := logger.Initialize(logger.GetLogLevelFromString(*logLevel), *logFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.SetCPULogging(*cpuLog)
	logger.SetPPULogging(*ppuLog)
	logger.SetAPULogging(*apuLog)
	logger.SetMapperLogging(*mapperLog)
	logger.SetTraceLogging(*trace)

	dat, err := os.ReadFile(romFile)
	if err != nil {
		log.Fatalf("Failed to read ROM file: %v", err)
	}

	var backup []uint8
	if *backupPath != "" {
		if b, err := os.ReadFile(*backupPath); err == nil {
			backup = b
		}
	}

	core, err := nes.NewFromBytes(dat, backup)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", filepath.Base(romFile), err)
	}

	if *headless {
		runHeadless(core, *frames)
	} else {
		ui, err := gui.New(core, *scale)
		if err != nil {
			log.Fatalf("Failed to create window: %v", err)
		}
		defer ui.Destroy()
		ui.Run()
	}

	if *backupPath != "" {
		if b := core.Backup(); b != nil {
			if err := os.WriteFile(*backupPath, b, 0644); err != nil {
				logger.LogError("saving backup: %v", err)
			}
		}
	}
}

func runHeadless(core *nes.NES, frames int) {
	var in input.State
	for i := 0; i < frames; i++ {
		core.StepFrame(&in)
	}
	logger.LogInfo("ran %d frames, CPU cycles: %d", frames, core.CPU.Cycles)
}
