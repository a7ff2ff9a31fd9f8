package nes

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/famicore/pkg/apu"
	"github.com/famicore/pkg/cartridge"
	"github.com/famicore/pkg/cpu"
	"github.com/famicore/pkg/memory"
	"github.com/famicore/pkg/ppu"
)

// ErrSnapshotDecode is returned by LoadState for any blob that does
// not decode back into a snapshot.
var ErrSnapshotDecode = errors.New("snapshot decode failed")

// snapshot gathers every component's mutable state. The ROM image,
// frame buffer and audio buffer are deliberately absent.
type snapshot struct {
	CPU    cpu.State
	PPU    ppu.State
	APU    apu.State
	Memory memory.State
	Cart   cartridge.State
	Frame  uint64
}

// SaveState serializes all mutable state into an opaque blob:
// gob-encoded, zstd-compressed. The format is not stable across
// versions.
func (n *NES) SaveState() ([]byte, error) {
	snap := snapshot{
		CPU:    n.CPU.State(),
		PPU:    n.PPU.State(),
		APU:    n.APU.State(),
		Memory: n.Memory.State(),
		Cart:   n.Cartridge.State(),
		Frame:  n.Frame,
	}

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(&snap); err != nil {
		zw.Close()
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("flushing snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a snapshot produced by SaveState against the
// same ROM. A malformed blob leaves the core untouched.
func (n *NES) LoadState(dat []byte) error {
	zr, err := zstd.NewReader(bytes.NewReader(dat))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotDecode, err)
	}
	defer zr.Close()

	var snap snapshot
	if err := gob.NewDecoder(zr).Decode(&snap); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotDecode, err)
	}

	n.CPU.Restore(snap.CPU)
	n.PPU.Restore(snap.PPU)
	n.APU.Restore(snap.APU)
	n.Memory.Restore(snap.Memory)
	n.Cartridge.Restore(snap.Cart)
	n.Frame = snap.Frame
	return nil
}
