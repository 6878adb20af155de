package nes

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildROM assembles a well-formed single-bank image and lets a test bend
// the header before the bodies are appended.
func buildROM(mutate func(h []byte)) []byte {
	h := make([]byte, 16)
	copy(h, inesMagic)
	h[4] = 1 // PRG banks
	h[5] = 1 // CHR banks
	if mutate != nil {
		mutate(h)
	}

	rom := h
	if h[6]&rc1Trainer > 0 {
		rom = append(rom, make([]byte, trainerLen)...)
	}
	rom = append(rom, make([]byte, int(h[4])*prgMul)...)
	rom = append(rom, make([]byte, int(h[5])*chrMul)...)
	return rom
}

func TestLoadINESRejects(t *testing.T) {
	tests := []struct {
		name string
		rom  []byte
		want error
	}{
		{
			name: "empty",
			rom:  nil,
		},
		{
			name: "short header",
			rom:  []byte{'N', 'E', 'S', 0x1A, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "bad magic letter",
			rom:  buildROM(func(h []byte) { h[1] = 'O' }),
			want: errNoMagic,
		},
		{
			name: "bad magic terminator",
			rom:  buildROM(func(h []byte) { h[3] = ' ' }),
			want: errNoMagic,
		},
		{
			name: "nonzero low bits of control byte 2",
			rom:  buildROM(func(h []byte) { h[7] |= 0x01 }),
			want: errBadRevision,
		},
		{
			name: "mapper from low nibble",
			rom:  buildROM(func(h []byte) { h[6] |= 0x10 }),
			want: errBadMapper,
		},
		{
			name: "mapper from high nibble",
			rom:  buildROM(func(h []byte) { h[7] |= 0x40 }),
			want: errBadMapper,
		},
		{
			name: "zero PRG banks",
			rom:  buildROM(func(h []byte) { h[4] = 0 }),
			want: errMissingBanks,
		},
		{
			name: "too many PRG banks",
			rom:  buildROM(func(h []byte) { h[4] = 3 }),
			want: errOversizedPRG,
		},
		{
			name: "truncated PRG body",
			rom:  buildROM(nil)[:16+100],
			want: errTruncatedPRG,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadINES(bytes.NewReader(tt.rom))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLoadINESMetadata(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(h []byte)
		check  func(t *testing.T, c *Cartridge)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, c *Cartridge) {
				assert.Equal(t, Horizontal, c.MirrorMode)
				assert.False(t, c.SaveRAM)
				assert.Nil(t, c.Trainer)
				assert.Equal(t, byte(0), c.Mapper)
				assert.Equal(t, byte(1), c.PRGBanks)
				assert.Len(t, c.PRG, prgMul)
				assert.Len(t, c.CHR, chrMul)
			},
		},
		{
			name:   "vertical mirroring",
			mutate: func(h []byte) { h[6] |= rc1MirrorModeVertical },
			check: func(t *testing.T, c *Cartridge) {
				assert.Equal(t, Vertical, c.MirrorMode)
			},
		},
		{
			name:   "four screen wins over mirroring bit",
			mutate: func(h []byte) { h[6] |= rc1MirrorModeVertical | rc1FourScreen },
			check: func(t *testing.T, c *Cartridge) {
				assert.Equal(t, FourScreen, c.MirrorMode)
			},
		},
		{
			name:   "battery ram",
			mutate: func(h []byte) { h[6] |= rc1SaveRAM },
			check: func(t *testing.T, c *Cartridge) {
				assert.True(t, c.SaveRAM)
			},
		},
		{
			name:   "trainer consumed before PRG",
			mutate: func(h []byte) { h[6] |= rc1Trainer },
			check: func(t *testing.T, c *Cartridge) {
				assert.Len(t, c.Trainer, trainerLen)
				assert.Len(t, c.PRG, prgMul)
			},
		},
		{
			name:   "no CHR banks still allocates a writable bank",
			mutate: func(h []byte) { h[5] = 0 },
			check: func(t *testing.T, c *Cartridge) {
				assert.Equal(t, byte(0), c.CHRBanks)
				assert.Len(t, c.CHR, chrMul)
			},
		},
		{
			name:   "two PRG banks",
			mutate: func(h []byte) { h[4] = 2 },
			check: func(t *testing.T, c *Cartridge) {
				assert.Equal(t, byte(2), c.PRGBanks)
				assert.Len(t, c.PRG, 2*prgMul)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := LoadINES(bytes.NewReader(buildROM(tt.mutate)))
			require.NoError(t, err)
			tt.check(t, cart)
		})
	}
}

func TestPRGMask(t *testing.T) {
	one := &Cartridge{PRGBanks: 1}
	two := &Cartridge{PRGBanks: 2}

	assert.Equal(t, uint16(0x3FFF), one.prgMask())
	assert.Equal(t, uint16(0x7FFF), two.prgMask())
}
