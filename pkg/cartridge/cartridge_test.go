package cartridge

import (
	"errors"
	"testing"
)

// newTestCartridge builds a cartridge with patterned PRG so bank
// mapping is observable.
func newTestCartridge(t *testing.T, prg16k, chr8k int, flags6 uint8) *Cartridge {
	t.Helper()
	dat := buildROM(prg16k, chr8k, flags6, 0, nil)
	// Stamp each 8 KiB PRG bank with its index.
	for bank := 0; bank < prg16k*2; bank++ {
		for i := 0; i < 0x2000; i++ {
			dat[16+bank*0x2000+i] = uint8(bank)
		}
	}
	rom, err := FromBytes(dat)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	cart, err := New(rom)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return cart
}

func TestPowerOnPalette(t *testing.T) {
	cart := newTestCartridge(t, 1, 1, 0)

	want := []uint8{
		0x09, 0x01, 0x00, 0x01, 0x00, 0x02, 0x02, 0x0D,
		0x08, 0x10, 0x08, 0x24, 0x00, 0x00, 0x04, 0x2C,
		0x09, 0x01, 0x34, 0x03, 0x00, 0x04, 0x00, 0x14,
		0x08, 0x3A, 0x00, 0x02, 0x00, 0x20, 0x2C, 0x08,
	}
	for i, w := range want {
		got := cart.ReadCHR(0x3F00 + uint16(i))
		// $3F10/$3F14/$3F18/$3F1C alias their background entries.
		if i&0x13 == 0x10 {
			w = want[i&0x0F]
		}
		if got != w {
			t.Errorf("palette[$%02X]: expected $%02X, got $%02X", i, w, got)
		}
	}
}

func TestPaletteAliasing(t *testing.T) {
	cart := newTestCartridge(t, 1, 1, 0)

	for _, i := range []uint16{0x10, 0x14, 0x18, 0x1C} {
		cart.WriteCHR(0x3F00+i, uint8(0x20+i))
		if got := cart.ReadCHR(0x3F00 + i - 0x10); got != uint8(0x20+i) {
			t.Errorf("write $3F%02X: read $3F%02X returned $%02X", i, i-0x10, got)
		}
	}
}

func TestPaletteWriteMasksTo6Bits(t *testing.T) {
	cart := newTestCartridge(t, 1, 1, 0)

	cart.WriteCHR(0x3F01, 0xFF)
	if got := cart.ReadCHR(0x3F01); got != 0x3F {
		t.Errorf("Expected $3F, got $%02X", got)
	}
}

func TestPRGBankMappingStaysInBounds(t *testing.T) {
	cart := newTestCartridge(t, 2, 1, 0) // 4 banks of 8 KiB

	// Banks wrap modulo the PRG size no matter how large the index.
	cart.MapPRG(0, 1000)
	if got := cart.ReadPRG(0x8000); got != uint8(1000%4) {
		t.Errorf("Expected bank %d, got %d", 1000%4, got)
	}

	cart.MapPRG(3, 5)
	if got := cart.ReadPRG(0xE000); got != 1 {
		t.Errorf("Expected bank 1, got %d", got)
	}
}

func TestPRGPageForAddr(t *testing.T) {
	cart := newTestCartridge(t, 2, 1, 0)

	cart.MapPRG(1, 3)
	if got := cart.PRGPageForAddr(0xA000); got != 3 {
		t.Errorf("Expected bank 3 at $A000, got %d", got)
	}
	if got := cart.PRGPageForAddr(0x4000); got != -1 {
		t.Errorf("Expected -1 below $8000, got %d", got)
	}
}

func TestPRGRAMAlwaysWritable(t *testing.T) {
	// Battery bit clear: PRG RAM must still accept writes.
	cart := newTestCartridge(t, 1, 1, 0)

	cart.WritePRG(0x6000, 0x55)
	if got := cart.ReadPRG(0x6000); got != 0x55 {
		t.Errorf("Expected $55, got $%02X", got)
	}
	if cart.Backup() != nil {
		t.Error("Backup should be nil without the battery bit")
	}
}

func TestROMWritesDoNotReachROM(t *testing.T) {
	cart := newTestCartridge(t, 1, 1, 0)

	before := cart.ReadPRG(0x8123)
	cart.WritePRG(0x8123, ^before)
	if got := cart.ReadPRG(0x8123); got != before {
		t.Errorf("ROM byte changed from $%02X to $%02X", before, got)
	}
}

func TestCHRROMWritesIgnored(t *testing.T) {
	cart := newTestCartridge(t, 1, 1, 0)

	before := cart.ReadCHR(0x0042)
	cart.WriteCHR(0x0042, ^before)
	if got := cart.ReadCHR(0x0042); got != before {
		t.Errorf("CHR ROM byte changed from $%02X to $%02X", before, got)
	}
}

func TestCHRRAMWritable(t *testing.T) {
	cart := newTestCartridge(t, 1, 0, 0) // no CHR ROM -> 8 KiB CHR RAM

	cart.WriteCHR(0x0042, 0xA5)
	if got := cart.ReadCHR(0x0042); got != 0xA5 {
		t.Errorf("Expected $A5, got $%02X", got)
	}
}

func TestMirroringPresets(t *testing.T) {
	cart := newTestCartridge(t, 1, 1, 0)

	check := func(name string, pairs [][2]uint16) {
		for _, p := range pairs {
			cart.WriteCHR(p[0], 0x5A)
			if got := cart.ReadCHR(p[1]); got != 0x5A {
				t.Errorf("%s: $%04X should alias $%04X", name, p[0], p[1])
			}
			cart.WriteCHR(p[0], 0x00)
		}
	}

	cart.SetMirroring(MirrorVertical)
	check("vertical", [][2]uint16{{0x2000, 0x2800}, {0x2400, 0x2C00}})

	cart.SetMirroring(MirrorHorizontal)
	check("horizontal", [][2]uint16{{0x2000, 0x2400}, {0x2800, 0x2C00}})

	cart.SetMirroring(MirrorOneScreenLow)
	check("one-screen", [][2]uint16{{0x2000, 0x2400}, {0x2000, 0x2800}, {0x2000, 0x2C00}})

	cart.SetMirroring(MirrorFourScreen)
	cart.WriteCHR(0x2000, 0x11)
	cart.WriteCHR(0x2400, 0x22)
	if cart.ReadCHR(0x2000) == cart.ReadCHR(0x2400) {
		t.Error("four-screen: nametables 0 and 1 should be distinct")
	}
}

func TestBackupSurface(t *testing.T) {
	cart := newTestCartridge(t, 1, 1, 0x02) // battery

	cart.WritePRG(0x6000, 0xDE)
	cart.WritePRG(0x6001, 0xAD)

	b := cart.Backup()
	if b == nil {
		t.Fatal("Backup returned nil with the battery bit set")
	}
	if b[0] != 0xDE || b[1] != 0xAD {
		t.Errorf("Backup content mismatch: % X", b[:2])
	}

	cart2 := newTestCartridge(t, 1, 1, 0x02)
	if err := cart2.LoadBackup(b); err != nil {
		t.Fatalf("LoadBackup failed: %v", err)
	}
	if got := cart2.ReadPRG(0x6000); got != 0xDE {
		t.Errorf("Expected $DE after preload, got $%02X", got)
	}

	var mismatch *BackupSizeMismatchError
	err := cart2.LoadBackup(make([]uint8, 3))
	if !errors.As(err, &mismatch) {
		t.Errorf("Expected BackupSizeMismatchError, got %v", err)
	}
}

func TestUnsupportedMapperRejected(t *testing.T) {
	dat := buildROM(1, 1, 0xF0, 0xF0, nil) // mapper 255
	rom, err := FromBytes(dat)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	_, err = New(rom)
	var unsupported *UnsupportedMapperError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedMapperError, got %v", err)
	}
	if unsupported.ID != 255 {
		t.Errorf("Expected mapper id 255, got %d", unsupported.ID)
	}
}
