package netpbm

import (
	"fmt"
	"strings"
)

type tupleType int

const (
	blackAndWhite tupleType = iota + 1
	blackAndWhiteAlpha
	grayscale
	grayscaleAlpha
	rgb
	rgbAlpha
)

var tupleTypes = map[string]tupleType{
	"BLACKANDWHITE":       blackAndWhite,
	"BLACKANDWHITE_ALPHA": blackAndWhiteAlpha,
	"GRAYSCALE":           grayscale,
	"GRAYSCALE_ALPHA":     grayscaleAlpha,
	"RGB":                 rgb,
	"RGB_ALPHA":           rgbAlpha,
}

// Used when a PAM header omits TUPLTYPE.
var defaultTupleTypes = [...]tupleType{1: grayscale, 2: grayscaleAlpha, 3: rgb, 4: rgbAlpha}

func (t tupleType) depth() int {
	switch t {
	case blackAndWhite, grayscale:
		return 1
	case blackAndWhiteAlpha, grayscaleAlpha:
		return 2
	case rgb:
		return 3
	case rgbAlpha:
		return 4
	}
	return 0
}

type header struct {
	width     int
	height    int
	maxval    int
	depth     int
	tupleType tupleType
}

type headerFunc func(*cursor) (*header, error)

// plainHeader returns a parser for the P1-P6 header layout:
// width, height and, unless the format is a bitmap, maxval. Binary formats
// must then have exactly one whitespace byte before the samples.
func plainHeader(t tupleType, withMaxval, binary bool) headerFunc {
	return func(c *cursor) (*header, error) {
		h := &header{
			maxval:    1,
			depth:     t.depth(),
			tupleType: t,
		}

		var err error

		c.skipWhitespaceAndComments()
		if h.width, err = c.readDimension(); err != nil {
			return nil, err
		}

		c.skipWhitespaceAndComments()
		if h.height, err = c.readDimension(); err != nil {
			return nil, err
		}

		if withMaxval {
			c.skipWhitespaceAndComments()
			if h.maxval, err = c.readMaxval(); err != nil {
				return nil, err
			}
		}

		if binary {
			if err := c.expectWhitespace(); err != nil {
				return nil, err
			}
		} else {
			c.skipWhitespaceAndComments()
		}

		return h, nil
	}
}

func pamHeader(c *cursor) (*header, error) {
	h := new(header)

	var (
		tuple string
		seen  = make(map[string]bool)
	)

	for {
		c.skipWhitespaceAndComments()
		token, err := c.readToken()
		if err != nil {
			return nil, err
		}

		if token == "ENDHDR" {
			break
		}

		switch token {
		case "WIDTH", "HEIGHT":
			c.skipWhitespace()
			n, err := c.readDimension()
			if err != nil {
				return nil, err
			}
			if token == "WIDTH" {
				h.width = n
			} else {
				h.height = n
			}
		case "DEPTH":
			c.skipWhitespace()
			if h.depth, err = c.readUint(); err != nil {
				return nil, err
			}
		case "MAXVAL":
			c.skipWhitespace()
			if h.maxval, err = c.readMaxval(); err != nil {
				return nil, err
			}
		case "TUPLTYPE":
			tuple = strings.TrimSpace(c.readLine())
		default:
			return nil, fmt.Errorf("%w: %q at offset %d", ErrUnexpectedHeaderToken, token, c.pos-len(token))
		}
		seen[token] = true
	}

	if err := c.expectWhitespace(); err != nil {
		return nil, err
	}

	for _, key := range []string{"WIDTH", "HEIGHT", "DEPTH", "MAXVAL"} {
		if !seen[key] {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, key)
		}
	}

	if seen["TUPLTYPE"] {
		t, ok := tupleTypes[tuple]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedTupleType, tuple)
		}
		h.tupleType = t
	} else if h.depth > 0 && h.depth < len(defaultTupleTypes) {
		h.tupleType = defaultTupleTypes[h.depth]
	} else {
		return nil, fmt.Errorf("%w: no tuple type for depth %d", ErrUnsupportedTupleType, h.depth)
	}

	if h.depth != h.tupleType.depth() {
		return nil, fmt.Errorf("%w: depth %d does not match tuple type %s", ErrInvalidFormat, h.depth, tuple)
	}

	return h, nil
}
