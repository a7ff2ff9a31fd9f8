package ppu

// Sprite attribute flags
const (
	attrPalette  = 0x03
	attrPriority = 0x20 // behind background when set
	attrFlipH    = 0x40
	attrFlipV    = 0x80
)

// renderScanline draws the current line into the frame buffer. The
// background fetches go through the cartridge's CHR bus so the mapper
// sees the pattern-table addresses, which is what MMC3's scanline
// counter listens for.
func (p *PPU) renderScanline() {
	y := p.Scanline

	// line holds 5-bit palette RAM indices; 0 is the universal
	// backdrop. bgOpaque marks pixels where the background pattern
	// bits were nonzero, which drives sprite priority and the
	// sprite-0 hit.
	var line [ScreenWidth]uint8
	var bgOpaque [ScreenWidth]bool

	if p.PPUMASK&MaskBGShow != 0 {
		p.renderBackground(&line, &bgOpaque)
	}
	if p.PPUMASK&MaskSpriteShow != 0 {
		p.renderSprites(y, &line, &bgOpaque)
	}

	grey := p.PPUMASK&MaskGreyscale != 0
	row := y * ScreenWidth * 3
	for xp := 0; xp < ScreenWidth; xp++ {
		c := p.cart.PeekPalette(line[xp])
		if grey {
			c &= 0x30
		}
		r, g, b := paletteRGB(c, p.PPUMASK)
		p.FrameBuffer[row+xp*3+0] = r
		p.FrameBuffer[row+xp*3+1] = g
		p.FrameBuffer[row+xp*3+2] = b
	}
}

// renderBackground walks 33 tile columns from the current v, fetching
// nametable, attribute and the two pattern planes per column.
func (p *PPU) renderBackground(line *[ScreenWidth]uint8, bgOpaque *[ScreenWidth]bool) {
	vv := p.v
	fineX := int(p.x)
	bgBase := uint16(0)
	if p.PPUCTRL&CtrlBGTable != 0 {
		bgBase = 0x1000
	}

	for col := 0; col < 33; col++ {
		fineY := vv >> 12 & 0x07
		tile := uint16(p.cart.ReadCHR(0x2000 | vv&0x0FFF))
		attr := p.cart.ReadCHR(0x23C0 | vv&0x0C00 | vv>>4&0x38 | vv>>2&0x07)
		shift := vv >> 4 & 0x04 | vv & 0x02
		palette := attr >> shift & 0x03

		patternAddr := bgBase | tile<<4 | fineY
		lo := p.cart.ReadCHR(patternAddr)
		hi := p.cart.ReadCHR(patternAddr + 8)

		for bit := 0; bit < 8; bit++ {
			xp := col*8 + bit - fineX
			if xp < 0 || xp >= ScreenWidth {
				continue
			}
			color := lo>>(7-bit)&1 | hi>>(7-bit)&1<<1
			if color == 0 {
				continue
			}
			line[xp] = palette<<2 | color
			bgOpaque[xp] = true
		}

		// Coarse-X wraps into the neighboring nametable.
		if vv&0x001F == 0x001F {
			vv &^= 0x001F
			vv ^= 0x0400
		} else {
			vv++
		}
	}

	if p.PPUMASK&MaskBGLeft == 0 {
		for i := 0; i < 8; i++ {
			line[i] = 0
			bgOpaque[i] = false
		}
	}
}

// renderSprites scans all 64 OAM entries in priority order and draws
// the first eight that land on this line.
func (p *PPU) renderSprites(y int, line *[ScreenWidth]uint8, bgOpaque *[ScreenWidth]bool) {
	height := 8
	if p.PPUCTRL&CtrlSpriteSize != 0 {
		height = 16
	}
	sprBase := uint16(0)
	if p.PPUCTRL&CtrlSpriteTable != 0 {
		sprBase = 0x1000
	}

	count := 0
	var covered [ScreenWidth]bool

	for i := 0; i < 64; i++ {
		sy := int(p.OAM[i*4]) + 1
		if y < sy || y >= sy+height {
			continue
		}
		count++
		if count > 8 {
			p.spriteOverflow = true
			break
		}

		tile := p.OAM[i*4+1]
		attr := p.OAM[i*4+2]
		sx := int(p.OAM[i*4+3])

		row := y - sy
		if attr&attrFlipV != 0 {
			row = height - 1 - row
		}

		var patternAddr uint16
		if height == 16 {
			// 8x16 sprites pick the table from the tile index's
			// low bit.
			base := uint16(tile&1) << 12
			t := uint16(tile &^ 1)
			if row >= 8 {
				t++
				row -= 8
			}
			patternAddr = base | t<<4 | uint16(row)
		} else {
			patternAddr = sprBase | uint16(tile)<<4 | uint16(row)
		}
		lo := p.cart.ReadCHR(patternAddr)
		hi := p.cart.ReadCHR(patternAddr + 8)

		palette := attr & attrPalette
		behind := attr&attrPriority != 0

		for bit := 0; bit < 8; bit++ {
			px := bit
			if attr&attrFlipH != 0 {
				px = 7 - bit
			}
			color := lo>>(7-px)&1 | hi>>(7-px)&1<<1
			if color == 0 {
				continue
			}
			xp := sx + bit
			if xp >= ScreenWidth {
				break
			}
			if xp < 8 && p.PPUMASK&MaskSpriteLeft == 0 {
				continue
			}
			if covered[xp] {
				continue
			}
			covered[xp] = true

			if i == 0 && bgOpaque[xp] && xp != 255 && p.PPUMASK&MaskBGShow != 0 {
				p.sprite0Hit = true
			}
			if !behind || !bgOpaque[xp] {
				line[xp] = 0x10 | palette<<2 | color
			}
		}
	}
}
