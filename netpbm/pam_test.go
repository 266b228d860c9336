package netpbm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pamInput builds a single row PAM image with a maxval of 255.
func pamInput(tuple string, depth int, payload ...byte) []byte {
	header := fmt.Sprintf("P7\nWIDTH %d\nHEIGHT 1\nDEPTH %d\nMAXVAL 255\nTUPLTYPE %s\nENDHDR\n", len(payload)/depth, depth, tuple)
	return raw(header, payload...)
}

func TestDecodePAM(t *testing.T) {
	tables := []struct {
		name  string
		input []byte
		width int
		pix   []byte
	}{
		{
			"RGB_ALPHA keeps alpha",
			pamInput("RGB_ALPHA", 4, 1, 2, 3, 4, 5, 6, 7, 8),
			2,
			[]byte{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			"RGB",
			pamInput("RGB", 3, 10, 20, 30),
			1,
			[]byte{10, 20, 30, 255},
		},
		{
			"GRAYSCALE",
			pamInput("GRAYSCALE", 1, 0x0a, 0x20),
			2,
			[]byte{10, 10, 10, 255, 32, 32, 32, 255},
		},
		{
			"GRAYSCALE_ALPHA",
			pamInput("GRAYSCALE_ALPHA", 2, 10, 20),
			1,
			[]byte{10, 10, 10, 20},
		},
		{
			"BLACKANDWHITE",
			raw("P7\nWIDTH 2\nHEIGHT 1\nDEPTH 1\nMAXVAL 1\nTUPLTYPE BLACKANDWHITE\nENDHDR\n", 0, 1),
			2,
			[]byte{0, 0, 0, 255, 255, 255, 255, 255},
		},
		{
			"BLACKANDWHITE_ALPHA",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 2\nMAXVAL 1\nTUPLTYPE BLACKANDWHITE_ALPHA\nENDHDR\n", 1, 0),
			1,
			[]byte{255, 255, 255, 0},
		},
		{
			"16-bit RGB_ALPHA",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 4\nMAXVAL 65535\nTUPLTYPE RGB_ALPHA\nENDHDR\n", 0xff, 0xff, 0x00, 0x00, 0x80, 0x00, 0xff, 0xff),
			1,
			[]byte{255, 0, 127, 255},
		},
		{
			"comments, blank lines and any key order",
			raw("P7\n# made by hand\nTUPLTYPE RGB \r\n\nMAXVAL 255\n#x\nDEPTH 3\nHEIGHT 1\nWIDTH 1\nENDHDR\n", 1, 2, 3),
			1,
			[]byte{1, 2, 3, 255},
		},
		{
			"missing TUPLTYPE inferred from DEPTH",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 2\nMAXVAL 255\nENDHDR\n", 50, 60),
			1,
			[]byte{50, 50, 50, 60},
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m, err := DecodeBytes(table.input)
			require.NoError(t, err)
			assert.Equal(t, PAM, m.Format)
			assert.Equal(t, "PAM P7", m.Format.String())
			assert.Equal(t, table.width, m.Width)
			assert.Equal(t, 1, m.Height)
			assert.Equal(t, table.pix, m.Pix)
		})
	}
}

func TestDecodePAMErrors(t *testing.T) {
	tables := []struct {
		name  string
		input []byte
		err   error
	}{
		{
			"too wide",
			[]byte("P7\nWIDTH 20000\nHEIGHT 1\nDEPTH 3\nMAXVAL 255\nTUPLTYPE RGB\nENDHDR\n"),
			ErrImageTooLarge,
		},
		{
			"too tall",
			[]byte("P7\nWIDTH 1\nHEIGHT 16385\n"),
			ErrImageTooLarge,
		},
		{
			"unknown key",
			[]byte("P7\nWIDTH 1\nCOLOUR 3\nENDHDR\n"),
			ErrUnexpectedHeaderToken,
		},
		{
			"unsupported tuple type",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 4\nMAXVAL 255\nTUPLTYPE CMYK\nENDHDR\n", 1, 2, 3, 4),
			ErrUnsupportedTupleType,
		},
		{
			"no tuple type for depth",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 5\nMAXVAL 255\nENDHDR\n", 1, 2, 3, 4, 5),
			ErrUnsupportedTupleType,
		},
		{
			"depth does not match tuple type",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 3\nMAXVAL 255\nTUPLTYPE GRAYSCALE\nENDHDR\n", 1, 2, 3),
			ErrInvalidFormat,
		},
		{
			"maxval zero",
			[]byte("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 1\nMAXVAL 0\n"),
			ErrMaxColorValueOutOfRange,
		},
		{
			"maxval too big",
			[]byte("P7\nMAXVAL 65536\n"),
			ErrMaxColorValueOutOfRange,
		},
		{
			"missing HEIGHT",
			raw("P7\nWIDTH 1\nDEPTH 1\nMAXVAL 255\nTUPLTYPE GRAYSCALE\nENDHDR\n", 1),
			ErrInvalidFormat,
		},
		{
			"missing value",
			[]byte("P7\nWIDTH\nHEIGHT 1\n"),
			ErrInvalidFormat,
		},
		{
			"no ENDHDR",
			[]byte("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 1\nMAXVAL 255\nTUPLTYPE GRAYSCALE\n"),
			ErrInvalidFormat,
		},
		{
			"comment after ENDHDR",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 1\nMAXVAL 255\nTUPLTYPE GRAYSCALE\nENDHDR\n#c\n", 1),
			ErrInvalidFormat,
		},
		{
			"sample above maxval",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 1\nMAXVAL 1\nTUPLTYPE BLACKANDWHITE\nENDHDR\n", 7),
			ErrInvalidFormat,
		},
		{
			"alpha above maxval",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 2\nMAXVAL 100\nTUPLTYPE GRAYSCALE_ALPHA\nENDHDR\n", 50, 101),
			ErrInvalidFormat,
		},
		{
			"trailing comment",
			raw("P7\nWIDTH 1\nHEIGHT 1\nDEPTH 1\nMAXVAL 255\nTUPLTYPE GRAYSCALE\nENDHDR\n", 1, '\n', '#'),
			ErrInvalidFormat,
		},
		{
			"truncated samples",
			raw("P7\nWIDTH 2\nHEIGHT 1\nDEPTH 4\nMAXVAL 255\nTUPLTYPE RGB_ALPHA\nENDHDR\n", 1, 2, 3, 4, 5, 6, 7),
			ErrInvalidFormat,
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m, err := DecodeBytes(table.input)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, table.err)
		})
	}
}
