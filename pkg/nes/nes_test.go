package nes

import (
	"bytes"
	"errors"
	"testing"

	"github.com/famicore/pkg/cartridge"
	"github.com/famicore/pkg/input"
)

// buildTestROM assembles a 16 KiB NROM image whose reset code runs
// the given program at $8000 and then spins.
func buildTestROM(flags6 uint8, program ...uint8) []uint8 {
	header := make([]uint8, 16)
	copy(header, "NES\x1a")
	header[4] = 1
	header[5] = 1
	header[6] = flags6

	prg := make([]uint8, 16*1024)
	copy(prg, program)
	spin := len(program)
	// JMP back onto itself
	prg[spin] = 0x4C
	prg[spin+1] = uint8(0x8000 + spin)
	prg[spin+2] = uint8((0x8000 + spin) >> 8)
	// Reset and interrupt vectors all point at $8000.
	prg[0x3FFA] = 0x00
	prg[0x3FFB] = 0x80
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	prg[0x3FFE] = 0x00
	prg[0x3FFF] = 0x80

	chr := make([]uint8, 8*1024)
	dat := append(header, prg...)
	return append(dat, chr...)
}

func createTestNES(t *testing.T, flags6 uint8, program ...uint8) *NES {
	t.Helper()
	n, err := NewFromBytes(buildTestROM(flags6, program...), nil)
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	return n
}

func TestConstructionErrors(t *testing.T) {
	t.Run("BadMagic", func(t *testing.T) {
		dat := buildTestROM(0)
		dat[0] = 'Z'
		_, err := NewFromBytes(dat, nil)
		if !errors.Is(err, cartridge.ErrInvalidMagic) {
			t.Errorf("Expected ErrInvalidMagic, got %v", err)
		}
	})

	t.Run("BackupWithoutBattery", func(t *testing.T) {
		var mismatch *cartridge.BackupSizeMismatchError
		_, err := NewFromBytes(buildTestROM(0), make([]uint8, 123))
		if !errors.As(err, &mismatch) {
			t.Errorf("Expected BackupSizeMismatchError, got %v", err)
		}
	})
}

func TestStepFrameAdvancesOneFrame(t *testing.T) {
	n := createTestNES(t, 0)

	var in input.State
	start := n.PPU.Frame
	cyc := n.CPU.Cycles
	n.StepFrame(&in)

	if n.PPU.Frame != start+1 {
		t.Errorf("Expected one PPU frame, got %d", n.PPU.Frame-start)
	}

	// 89342 PPU dots make 29780.67 CPU cycles; the boundary lands
	// within one instruction of that.
	delta := int(n.CPU.Cycles - cyc)
	if delta < 29770 || delta > 29795 {
		t.Errorf("Frame took %d CPU cycles", delta)
	}
}

func TestFrameBufferAndAudioSizes(t *testing.T) {
	n := createTestNES(t, 0)

	var in input.State
	n.StepFrame(&in)

	if len(n.FrameBuffer()) != 256*240*3 {
		t.Errorf("Frame buffer size %d", len(n.FrameBuffer()))
	}
	samples := len(n.AudioSamples())
	if samples < 799 || samples > 801 {
		t.Errorf("Expected 799-801 samples, got %d", samples)
	}
}

func TestDeterminism(t *testing.T) {
	// Two cores fed identical input must agree byte for byte.
	run := func() ([]uint8, []int16) {
		n := createTestNES(t, 0,
			0xA9, 0x1E, // LDA #$1E: enable bg+sprites
			0x8D, 0x01, 0x20, // STA $2001
			0xA9, 0x80, // LDA #$80
			0x8D, 0x00, 0x20, // STA $2000: NMI on
		)
		var in input.State
		in.Pads[0].Start = true
		for i := 0; i < 5; i++ {
			n.StepFrame(&in)
		}
		fb := append([]uint8(nil), n.FrameBuffer()...)
		au := append([]int16(nil), n.AudioSamples()...)
		return fb, au
	}

	fb1, au1 := run()
	fb2, au2 := run()
	if !bytes.Equal(fb1, fb2) {
		t.Error("Frame buffers diverged between identical runs")
	}
	if len(au1) != len(au2) {
		t.Fatalf("Audio lengths differ: %d vs %d", len(au1), len(au2))
	}
	for i := range au1 {
		if au1[i] != au2[i] {
			t.Fatalf("Audio diverged at sample %d", i)
		}
	}
}

func TestVBlankVisibleToSoftware(t *testing.T) {
	// Spin on $2002 until bit 7 reads set, then raise a flag in
	// zero page. One frame is more than enough time.
	n := createTestNES(t, 0,
		0xAD, 0x02, 0x20, // wait: LDA $2002
		0x10, 0xFB, // BPL wait
		0xA9, 0x01, // LDA #1
		0x85, 0x10, // STA $10
	)

	var in input.State
	n.StepFrame(&in)

	if n.Memory.Peek(0x0010) != 0x01 {
		t.Error("Software never observed the vblank flag")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	n := createTestNES(t, 0,
		0xA9, 0x1E,
		0x8D, 0x01, 0x20,
	)

	var in input.State
	for i := 0; i < 3; i++ {
		n.StepFrame(&in)
	}

	snap, err := n.SaveState()
	if err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	n.StepFrame(&in)
	n.StepFrame(&in)
	after := append([]uint8(nil), n.FrameBuffer()...)
	cycles := n.CPU.Cycles

	if err := n.LoadState(snap); err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	n.StepFrame(&in)
	n.StepFrame(&in)

	if !bytes.Equal(after, n.FrameBuffer()) {
		t.Error("Replayed frames differ from the original run")
	}
	if n.CPU.Cycles != cycles {
		t.Errorf("Cycle counters diverged: %d vs %d", n.CPU.Cycles, cycles)
	}
}

func TestLoadStateRejectsGarbage(t *testing.T) {
	n := createTestNES(t, 0)

	err := n.LoadState([]byte{0x01, 0x02, 0x03})
	if !errors.Is(err, ErrSnapshotDecode) {
		t.Errorf("Expected ErrSnapshotDecode, got %v", err)
	}
}

func TestBackupRoundTrip(t *testing.T) {
	n := createTestNES(t, 0x02, // battery
		0xA9, 0x5A, // LDA #$5A
		0x8D, 0x00, 0x60, // STA $6000
	)

	var in input.State
	n.StepFrame(&in)

	b := n.Backup()
	if b == nil {
		t.Fatal("Expected a backup surface with the battery bit")
	}
	if b[0] != 0x5A {
		t.Errorf("Expected $5A in backup, got $%02X", b[0])
	}

	// A fresh core preloaded with the backup sees the value.
	n2, err := NewFromBytes(buildTestROM(0x02), b)
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	if got := n2.Cartridge.ReadPRG(0x6000); got != 0x5A {
		t.Errorf("Expected $5A after preload, got $%02X", got)
	}
}

func TestStaleBusThroughCore(t *testing.T) {
	// Writing $AA to $2000 then reading $2002: the top three bits
	// are hardware-driven, the low five are the stale bus value.
	n := createTestNES(t, 0,
		0xA9, 0xAA, // LDA #$AA
		0x8D, 0x00, 0x20, // STA $2000
		0xAD, 0x02, 0x20, // LDA $2002
		0x85, 0x10, // STA $10
	)

	var in input.State
	n.StepFrame(&in)

	if got := n.Memory.Peek(0x0010) & 0x1F; got != 0x0A {
		t.Errorf("Expected stale low bits $0A, got $%02X", got)
	}
}

func TestOAMDMAThroughCore(t *testing.T) {
	// Fill $0300 with a pattern, then DMA it into OAM.
	program := []uint8{
		0xA2, 0x00, // LDX #0
		0xA9, 0x77, // LDA #$77
		0x9D, 0x00, 0x03, // STA $0300,X
		0xE8,       // INX
		0xD0, 0xFA, // BNE loop
		0xA9, 0x03, // LDA #3
		0x8D, 0x14, 0x40, // STA $4014
	}
	n := createTestNES(t, 0, program...)

	var in input.State
	n.StepFrame(&in)

	if n.PPU.OAM[0] != 0x77 || n.PPU.OAM[255] != 0x77 {
		t.Errorf("OAM not filled by DMA: %02X %02X", n.PPU.OAM[0], n.PPU.OAM[255])
	}
}
