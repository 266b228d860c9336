/*
Package netpbm implements a decoder for the Netpbm family of image formats.

Seven sub-formats are recognised by their two byte magic number:

	P1  PBM bitmap, ASCII samples
	P2  PGM greyscale, ASCII samples
	P3  PPM RGB, ASCII samples
	P4  PBM bitmap, rows packed eight pixels to a byte
	P5  PGM greyscale, binary samples
	P6  PPM RGB, binary samples
	P7  PAM, binary samples described by a key/value header

Binary samples are one byte wide when the maximum sample value is below 256
and two bytes big-endian otherwise. Every format is normalized to 8 bits per
channel non-premultiplied RGBA with a linear 0..maxval to 0..255 mapping.
Alpha is fully opaque unless a PAM tuple type carries an alpha channel.

Importing the package registers the formats with the standard library image
package so that image.Decode recognises them.
*/
package netpbm

import "errors"

const (
	// MaxDimension is the largest width or height accepted from a header.
	MaxDimension = 16384

	// maxSampleValue is one past the largest legal maxval.
	maxSampleValue = 1 << 16

	bytesPerPixel = 4
)

var (
	// ErrUnknownMagicNumber is returned when the first two bytes do not
	// identify a supported sub-format.
	ErrUnknownMagicNumber = errors.New("netpbm: unknown magic number")
	// ErrInvalidFormat is returned when a literal byte, digit sequence or
	// separator is missing or malformed.
	ErrInvalidFormat = errors.New("netpbm: invalid format")
	// ErrMaxColorValueOutOfRange is returned when maxval is zero or does not
	// fit in 16 bits.
	ErrMaxColorValueOutOfRange = errors.New("netpbm: max color value out of range (0, 65536)")
	// ErrImageTooLarge is returned when width or height exceeds MaxDimension.
	ErrImageTooLarge = errors.New("netpbm: image too large")
	// ErrUnexpectedHeaderToken is returned for an unknown PAM header key.
	ErrUnexpectedHeaderToken = errors.New("netpbm: unexpected header token")
	// ErrUnsupportedTupleType is returned for an unknown PAM tuple type.
	ErrUnsupportedTupleType = errors.New("netpbm: unsupported tuple type")
)

// Format identifies the sub-format an image was decoded from.
type Format int

// Supported formats, in magic number order.
const (
	PBMPlain Format = iota + 1
	PGMPlain
	PPMPlain
	PBMRaw
	PGMRaw
	PPMRaw
	PAM
)

var formatNames = [...]string{
	PBMPlain: "PBM P1",
	PGMPlain: "PGM P2",
	PPMPlain: "PPM P3",
	PBMRaw:   "PBM P4",
	PGMRaw:   "PGM P5",
	PPMRaw:   "PPM P6",
	PAM:      "PAM P7",
}

// String returns a short label such as "PPM P6".
func (f Format) String() string {
	if f < PBMPlain || f > PAM {
		return "unknown"
	}
	return formatNames[f]
}

// Magic returns the two byte magic number of the format, for example "P6".
func (f Format) Magic() string {
	if f < PBMPlain || f > PAM {
		return ""
	}
	return string([]byte{'P', '0' + byte(f)})
}
