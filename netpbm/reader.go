package netpbm

import (
	"image"
	"image/color"
	"io"
)

type variant struct {
	format Format
	header headerFunc
	pixels pixelFunc
}

var variants = map[byte]variant{
	'1': {PBMPlain, plainHeader(blackAndWhite, false, false), readBitmapText},
	'2': {PGMPlain, plainHeader(grayscale, true, false), readGrayText},
	'3': {PPMPlain, plainHeader(rgb, true, false), readRGBText},
	'4': {PBMRaw, plainHeader(blackAndWhite, false, true), readBitmapRaw},
	'5': {PGMRaw, plainHeader(grayscale, true, true), readRaw},
	'6': {PPMRaw, plainHeader(rgb, true, true), readRaw},
	'7': {PAM, pamHeader, readRaw},
}

// Raster is a decoded image: Width*Height pixels of 8-bit R, G, B, A stored
// row-major from the top left.
type Raster struct {
	Pix    []byte
	Width  int
	Height int
	Format Format
}

// Image returns an *image.NRGBA sharing the raster's pixel buffer.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * bytesPerPixel,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// minPayload is the fewest bytes the samples of an image described by h can
// occupy. ASCII samples need at least one digit each. The result can exceed
// the range of a 32-bit int.
func (v variant) minPayload(h *header) int64 {
	pixels := int64(h.width) * int64(h.height)
	switch v.format {
	case PBMPlain, PGMPlain:
		return pixels
	case PPMPlain:
		return pixels * 3
	case PBMRaw:
		return int64(h.height) * int64((h.width+7)>>3)
	}
	if h.maxval > 0xff {
		return pixels * int64(h.depth) * 2
	}
	return pixels * int64(h.depth)
}

type decoder struct {
	c       cursor
	variant variant
	header  *header
}

func (d *decoder) decodeHeader(b []byte) error {
	d.c = cursor{b: b}

	if d.c.atEnd() || d.c.advance() != 'P' || d.c.atEnd() {
		return ErrUnknownMagicNumber
	}

	v, ok := variants[d.c.advance()]
	if !ok {
		return ErrUnknownMagicNumber
	}
	d.variant = v

	h, err := v.header(&d.c)
	if err != nil {
		return err
	}
	d.header = h

	return nil
}

func (d *decoder) decode(b []byte) (*Raster, error) {
	if err := d.decodeHeader(b); err != nil {
		return nil, err
	}

	if int64(len(b)-d.c.pos) < d.variant.minPayload(d.header) {
		return nil, d.c.errorf(ErrInvalidFormat, "unexpected end of data")
	}

	r := &Raster{
		Pix:    make([]byte, d.header.width*d.header.height*bytesPerPixel),
		Width:  d.header.width,
		Height: d.header.height,
		Format: d.variant.format,
	}

	if err := d.variant.pixels(&d.c, d.header, r.Pix); err != nil {
		return nil, err
	}

	// A comment here could hide a stray byte so only whitespace may follow
	d.c.skipWhitespace()
	if !d.c.atEnd() {
		return nil, d.c.errorf(ErrInvalidFormat, "trailing data")
	}

	return r, nil
}

// DecodeBytes decodes a complete Netpbm image held in b. b is not modified
// and is not retained.
func DecodeBytes(b []byte) (*Raster, error) {
	var d decoder
	return d.decode(b)
}

// Decode reads a Netpbm image from r and returns it as an *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m, err := DecodeBytes(b)
	if err != nil {
		return nil, err
	}
	return m.Image(), nil
}

// DecodeConfig returns the color model and dimensions of a Netpbm image
// without decoding the samples.
func DecodeConfig(r io.Reader) (image.Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	var d decoder
	if err := d.decodeHeader(b); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      d.header.width,
		Height:     d.header.height,
	}, nil
}

func init() {
	for _, f := range []struct {
		name, magic string
	}{
		{"pbm", PBMPlain.Magic()},
		{"pgm", PGMPlain.Magic()},
		{"ppm", PPMPlain.Magic()},
		{"pbm", PBMRaw.Magic()},
		{"pgm", PGMRaw.Magic()},
		{"ppm", PPMRaw.Magic()},
		{"pam", PAM.Magic()},
	} {
		image.RegisterFormat(f.name, f.magic, Decode, DecodeConfig)
	}
}
