package netpbm

// normalize maps v from [0, maxval] to [0, 255]. Callers reject samples
// above maxval; the clamp only guards the arithmetic.
func normalize(v, maxval int) byte {
	n := uint64(v) * 0xff / uint64(maxval)
	if n > 0xff {
		return 0xff
	}
	return byte(n)
}

// bit maps a bitmap sample, 0 to black and 1 to white.
func bit(v int) byte {
	return byte(v&1) * 0xff
}

func setGray(pix []byte, i int, g, a byte) {
	pix[i+0] = g
	pix[i+1] = g
	pix[i+2] = g
	pix[i+3] = a
}

type pixelFunc func(*cursor, *header, []byte) error

// readTextSample reads one ASCII sample and the separator before it. Nothing
// is skipped after the last sample so a trailing comment is left for the
// caller to reject.
func (c *cursor) readTextSample(maxval int) (int, error) {
	c.skipWhitespaceAndComments()
	v, err := c.readUint()
	if err != nil {
		return 0, err
	}
	if v > maxval {
		return 0, c.errorf(ErrInvalidFormat, "sample %d exceeds maxval %d", v, maxval)
	}
	return v, nil
}

func readBitmapText(c *cursor, _ *header, pix []byte) error {
	for i := 0; i < len(pix); i += bytesPerPixel {
		v, err := c.readTextSample(1)
		if err != nil {
			return err
		}
		setGray(pix, i, bit(v), 0xff)
	}
	return nil
}

func readGrayText(c *cursor, h *header, pix []byte) error {
	for i := 0; i < len(pix); i += bytesPerPixel {
		v, err := c.readTextSample(h.maxval)
		if err != nil {
			return err
		}
		setGray(pix, i, normalize(v, h.maxval), 0xff)
	}
	return nil
}

func readRGBText(c *cursor, h *header, pix []byte) error {
	for i := 0; i < len(pix); i += bytesPerPixel {
		for j := 0; j < 3; j++ {
			v, err := c.readTextSample(h.maxval)
			if err != nil {
				return err
			}
			pix[i+j] = normalize(v, h.maxval)
		}
		pix[i+3] = 0xff
	}
	return nil
}

// readBitmapRaw reads rows of ceil(width/8) bytes, most significant bit
// first. Padding bits at the end of each row are ignored.
func readBitmapRaw(c *cursor, h *header, pix []byte) error {
	stride := (h.width + 7) >> 3
	for y := 0; y < h.height; y++ {
		row, err := c.next(stride)
		if err != nil {
			return err
		}
		for x := 0; x < h.width; x++ {
			v := int(row[x>>3]>>(7-uint(x&7))) & 1
			setGray(pix, (y*h.width+x)*bytesPerPixel, bit(v), 0xff)
		}
	}
	return nil
}

func (c *cursor) readSample(wide bool) (int, error) {
	if !wide {
		if c.atEnd() {
			return 0, c.errorf(ErrInvalidFormat, "unexpected end of data")
		}
		return int(c.advance()), nil
	}
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return int(b[0])<<8 | int(b[1]), nil
}

// readRaw reads depth binary samples per pixel and assembles them into RGBA
// according to the tuple type. It serves P5, P6 and P7.
func readRaw(c *cursor, h *header, pix []byte) error {
	wide := h.maxval > 0xff

	var s [4]byte
	for i := 0; i < len(pix); i += bytesPerPixel {
		for j := 0; j < h.depth; j++ {
			v, err := c.readSample(wide)
			if err != nil {
				return err
			}
			if v > h.maxval {
				return c.errorf(ErrInvalidFormat, "sample %d exceeds maxval %d", v, h.maxval)
			}
			s[j] = normalize(v, h.maxval)
		}

		switch h.tupleType {
		case blackAndWhite, grayscale:
			setGray(pix, i, s[0], 0xff)
		case blackAndWhiteAlpha, grayscaleAlpha:
			setGray(pix, i, s[0], s[1])
		case rgb:
			pix[i+0], pix[i+1], pix[i+2], pix[i+3] = s[0], s[1], s[2], 0xff
		case rgbAlpha:
			copy(pix[i:i+4], s[:])
		}
	}
	return nil
}
