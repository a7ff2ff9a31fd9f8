package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/famicore/pkg/cartridge"
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Printf("Usage: %s <rom_file>...\n", os.Args[0])
		os.Exit(1)
	}

	for _, path := range flag.Args() {
		dat, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("reading %s: %v", path, err)
		}
		rom, err := cartridge.FromBytes(dat)
		if err != nil {
			log.Fatalf("parsing %s: %v", path, err)
		}

		format := "iNES"
		if rom.Format == cartridge.FormatNES20 {
			format = "NES 2.0"
		}

		fmt.Printf("%s:\n", path)
		fmt.Printf("  Format:    %s\n", format)
		fmt.Printf("  Mapper:    %d", rom.MapperID)
		if rom.SubmapperID != 0 {
			fmt.Printf(".%d", rom.SubmapperID)
		}
		fmt.Println()
		fmt.Printf("  PRG ROM:   %d KiB\n", len(rom.PRGROM)/1024)
		if len(rom.CHRROM) > 0 {
			fmt.Printf("  CHR ROM:   %d KiB\n", len(rom.CHRROM)/1024)
		} else {
			fmt.Printf("  CHR RAM:   %d KiB\n", rom.CHRRAMSize/1024)
		}
		if rom.PRGRAMSize > 0 || rom.PRGNVRAMSize > 0 {
			fmt.Printf("  PRG RAM:   %d KiB (%d KiB battery)\n",
				(rom.PRGRAMSize+rom.PRGNVRAMSize)/1024, rom.PRGNVRAMSize/1024)
		}
		fmt.Printf("  Mirroring: %s\n", rom.Mirroring)
		fmt.Printf("  Battery:   %v\n", rom.HasBattery)
		fmt.Printf("  Trainer:   %v\n", rom.Trainer != nil)
		fmt.Printf("  Timing:    %s\n", rom.Timing)
	}
}
