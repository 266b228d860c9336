package pnmview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/pnmview/netpbm"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type encodeFunc func(io.Writer, image.Image, ConvertConfig) error

var encoders = map[string]encodeFunc{
	"png": func(w io.Writer, m image.Image, _ ConvertConfig) error {
		return png.Encode(w, m)
	},
	"jpg":  encodeJPEG,
	"jpeg": encodeJPEG,
	"gif":  encodeGIF,
	"bmp": func(w io.Writer, m image.Image, _ ConvertConfig) error {
		return bmp.Encode(w, m)
	},
	"tif":  encodeTIFF,
	"tiff": encodeTIFF,
}

func encodeJPEG(w io.Writer, m image.Image, c ConvertConfig) error {
	return jpeg.Encode(w, m, &jpeg.Options{Quality: c.JPEGQuality})
}

func encodeTIFF(w io.Writer, m image.Image, _ ConvertConfig) error {
	return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
}

// encodeGIF reduces m to at most c.GIFColors colors with a median cut
// palette.
func encodeGIF(w io.Writer, m image.Image, c ConvertConfig) error {
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > c.GIFColors {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, c.GIFColors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	return gif.Encode(w, pm, &gif.Options{NumColors: len(pm.Palette)})
}

// Encode writes m to w in the named format, one of png, jpg, jpeg, gif, bmp,
// tif or tiff. A leading dot is ignored so a file extension can be passed
// directly.
func Encode(w io.Writer, m image.Image, format string, c ConvertConfig) error {
	enc, err := encoderFor(format)
	if err != nil {
		return err
	}
	return enc(w, m, c)
}

func encoderFor(format string) (encodeFunc, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	enc, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("pnmview: unknown output format %q", format)
	}
	return enc, nil
}

// Save writes the raster to dst, choosing the format from the extension of
// dst or the configured default if it has none. Nothing is written unless
// encoding succeeds.
func (v *Viewer) Save(m *netpbm.Raster, dst string) error {
	format := filepath.Ext(dst)
	if format == "" {
		format = v.config.Convert.Format
	}

	enc, err := encoderFor(format)
	if err != nil {
		return err
	}

	b := new(bytes.Buffer)
	if err := enc(b, m.Image(), v.config.Convert); err != nil {
		return fmt.Errorf("encoding %s: %w", dst, err)
	}

	if err := os.WriteFile(dst, b.Bytes(), 0o644); err != nil {
		return err
	}

	v.logger.Printf("Wrote %s image to \"%s\"\n", m.Format, dst)

	return nil
}

// Convert decodes the Netpbm image at src and writes it to dst.
func (v *Viewer) Convert(src, dst string) error {
	m, err := v.Load(src)
	if err != nil {
		return err
	}
	return v.Save(m, dst)
}
