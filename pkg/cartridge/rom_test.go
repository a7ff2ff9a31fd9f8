package cartridge

import (
	"bytes"
	"errors"
	"testing"
)

// buildROM assembles an iNES image in memory for tests.
func buildROM(prg16k, chr8k int, flags6, flags7 uint8, extra []uint8) []uint8 {
	header := make([]uint8, 16)
	copy(header, "NES\x1a")
	header[4] = uint8(prg16k)
	header[5] = uint8(chr8k)
	header[6] = flags6
	header[7] = flags7

	dat := header
	dat = append(dat, make([]uint8, prg16k*16*1024)...)
	dat = append(dat, make([]uint8, chr8k*8*1024)...)
	dat = append(dat, extra...)
	return dat
}

func TestFromBytesRejectsBadMagic(t *testing.T) {
	dat := buildROM(1, 1, 0, 0, nil)
	dat[0] = 'X'

	_, err := FromBytes(dat)
	if !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("Expected ErrInvalidMagic, got %v", err)
	}
}

func TestFromBytesRejectsTrailingBytes(t *testing.T) {
	dat := buildROM(1, 1, 0, 0, []uint8{0xFF})

	_, err := FromBytes(dat)
	if !errors.Is(err, ErrInvalidExtraBytes) {
		t.Errorf("Expected ErrInvalidExtraBytes, got %v", err)
	}
}

func TestFromBytesRejectsTruncated(t *testing.T) {
	dat := buildROM(2, 1, 0, 0, nil)
	dat = dat[:len(dat)-100]

	_, err := FromBytes(dat)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("Expected ErrTruncated, got %v", err)
	}
}

func TestFromBytesMirroring(t *testing.T) {
	cases := []struct {
		flags6 uint8
		want   Mirroring
	}{
		{0x00, MirrorHorizontal},
		{0x01, MirrorVertical},
		{0x08, MirrorFourScreen},
	}
	for _, tc := range cases {
		rom, err := FromBytes(buildROM(1, 1, tc.flags6, 0, nil))
		if err != nil {
			t.Fatalf("FromBytes failed: %v", err)
		}
		if rom.Mirroring != tc.want {
			t.Errorf("flags6=$%02X: expected %v, got %v", tc.flags6, tc.want, rom.Mirroring)
		}
	}

	// Vertical and four-screen bits together are rejected.
	_, err := FromBytes(buildROM(1, 1, 0x09, 0, nil))
	if !errors.Is(err, ErrInvalidMirroring) {
		t.Errorf("flags6=$09: expected ErrInvalidMirroring, got %v", err)
	}
}

func TestFromBytesMapperID(t *testing.T) {
	rom, err := FromBytes(buildROM(1, 1, 0x40, 0x00, nil))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if rom.MapperID != 4 {
		t.Errorf("Expected mapper 4, got %d", rom.MapperID)
	}

	rom, err = FromBytes(buildROM(1, 1, 0x10, 0x40, nil))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if rom.MapperID != 65 {
		t.Errorf("Expected mapper 65, got %d", rom.MapperID)
	}
}

func TestFromBytesTrainer(t *testing.T) {
	header := make([]uint8, 16)
	copy(header, "NES\x1a")
	header[4] = 1
	header[5] = 0
	header[6] = 0x04 // trainer present

	trainer := make([]uint8, 512)
	for i := range trainer {
		trainer[i] = uint8(i)
	}

	dat := append(header, trainer...)
	dat = append(dat, make([]uint8, 16*1024)...)

	rom, err := FromBytes(dat)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if !bytes.Equal(rom.Trainer, trainer) {
		t.Error("Trainer data not preserved")
	}
}

func TestFromBytesNES20(t *testing.T) {
	dat := buildROM(1, 1, 0x02, 0x08, nil)
	dat[10] = 0x77 // 8 KiB PRG RAM, 8 KiB PRG NVRAM
	dat[12] = 0x01 // PAL

	rom, err := FromBytes(dat)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if rom.Format != FormatNES20 {
		t.Error("Expected NES 2.0 format")
	}
	if rom.PRGRAMSize != 8*1024 {
		t.Errorf("Expected 8 KiB PRG RAM, got %d", rom.PRGRAMSize)
	}
	if rom.PRGNVRAMSize != 8*1024 {
		t.Errorf("Expected 8 KiB PRG NVRAM, got %d", rom.PRGNVRAMSize)
	}
	if rom.Timing != TimingPAL {
		t.Errorf("Expected PAL timing, got %v", rom.Timing)
	}
	if !rom.HasBattery {
		t.Error("Expected battery flag from flags6 bit 1")
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	cases := [][]uint8{
		buildROM(2, 1, 0x01, 0x00, nil),
		buildROM(1, 0, 0x02, 0x00, nil),
		buildROM(4, 2, 0x41, 0x00, nil), // mapper 4, vertical
	}
	for i, dat := range cases {
		rom, err := FromBytes(dat)
		if err != nil {
			t.Fatalf("case %d: FromBytes failed: %v", i, err)
		}
		h := rom.HeaderBytes()
		rom2, err := FromBytes(append(h[:], dat[16:]...))
		if err != nil {
			t.Fatalf("case %d: reparse failed: %v", i, err)
		}
		if rom2.MapperID != rom.MapperID {
			t.Errorf("case %d: mapper %d != %d", i, rom2.MapperID, rom.MapperID)
		}
		if rom2.Mirroring != rom.Mirroring {
			t.Errorf("case %d: mirroring %v != %v", i, rom2.Mirroring, rom.Mirroring)
		}
		if rom2.HasBattery != rom.HasBattery {
			t.Errorf("case %d: battery mismatch", i)
		}
		if len(rom2.PRGROM) != len(rom.PRGROM) || len(rom2.CHRROM) != len(rom.CHRROM) {
			t.Errorf("case %d: size mismatch", i)
		}
	}
}
