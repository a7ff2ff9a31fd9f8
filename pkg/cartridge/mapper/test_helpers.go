package mapper

// fakeBanks records slot assignments so tests can observe what a
// mapper did without a full cartridge.
type fakeBanks struct {
	prgSlots  [4]int
	chrSlots  [8]int
	mirroring Mirroring
	prgPages  int
	chrPages  int
}

func newFakeBanks(prgPages, chrPages int) *fakeBanks {
	b := &fakeBanks{prgPages: prgPages, chrPages: chrPages, mirroring: MirrorHorizontal}
	for i := range b.prgSlots {
		b.prgSlots[i] = i
	}
	for i := range b.chrSlots {
		b.chrSlots[i] = i
	}
	return b
}

func (b *fakeBanks) MapPRG(slot, bank8k int) {
	b.prgSlots[slot] = ((bank8k % b.prgPages) + b.prgPages) % b.prgPages
}

func (b *fakeBanks) MapCHR(slot, bank1k int) {
	b.chrSlots[slot] = ((bank1k % b.chrPages) + b.chrPages) % b.chrPages
}

func (b *fakeBanks) SetMirroring(m Mirroring) { b.mirroring = m }
func (b *fakeBanks) Mirroring() Mirroring     { return b.mirroring }
func (b *fakeBanks) PRGPages() int            { return b.prgPages }
func (b *fakeBanks) CHRPages() int            { return b.chrPages }

// writeSerial feeds a 5-bit value to MMC1 one bit at a time.
func writeSerial(m *Mapper1, addr uint16, value uint8) {
	for i := 0; i < 5; i++ {
		m.OnPRGWrite(addr, value>>i&1)
	}
}
