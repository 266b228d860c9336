package netpbm

import "math"

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\n', '\r', '\t', '\f', '\v':
		return true
	}
	return false
}

// skipWhitespace reports whether anything was consumed.
func (c *cursor) skipWhitespace() bool {
	start := c.pos
	for !c.atEnd() && isWhitespace(c.peek()) {
		c.pos++
	}
	return c.pos != start
}

// skipComment consumes a '#' through to, but not including, the next newline.
func (c *cursor) skipComment() bool {
	if c.atEnd() || c.peek() != '#' {
		return false
	}
	for !c.atEnd() && c.peek() != '\n' {
		c.pos++
	}
	return true
}

func (c *cursor) skipWhitespaceAndComments() {
	for c.skipWhitespace() || c.skipComment() {
	}
}

func (c *cursor) expectByte(b byte) error {
	if c.atEnd() {
		return c.errorf(ErrInvalidFormat, "expected %q, got end of data", b)
	}
	if got := c.advance(); got != b {
		c.pos--
		return c.errorf(ErrInvalidFormat, "expected %q, got %q", b, got)
	}
	return nil
}

// expectWhitespace consumes exactly one whitespace byte. It separates a
// header from binary data where a sample may itself look like whitespace.
func (c *cursor) expectWhitespace() error {
	if c.atEnd() || !isWhitespace(c.peek()) {
		return c.errorf(ErrInvalidFormat, "expected single whitespace before data")
	}
	c.pos++
	return nil
}

// readUint reads a maximal run of decimal digits. Values saturate at
// math.MaxInt32, which every range check downstream rejects.
func (c *cursor) readUint() (int, error) {
	start := c.pos
	var n int64
	for !c.atEnd() && isDigit(c.peek()) {
		n = n*10 + int64(c.advance()-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
		}
	}
	if c.pos == start {
		return 0, c.errorf(ErrInvalidFormat, "expected unsigned integer")
	}
	return int(n), nil
}

// readToken reads a maximal run of non-whitespace bytes.
func (c *cursor) readToken() (string, error) {
	start := c.pos
	for !c.atEnd() && !isWhitespace(c.peek()) {
		c.pos++
	}
	if c.pos == start {
		return "", c.errorf(ErrInvalidFormat, "expected header token")
	}
	return string(c.b[start:c.pos]), nil
}

// readLine returns everything up to, but not including, the next newline.
func (c *cursor) readLine() string {
	start := c.pos
	for !c.atEnd() && c.peek() != '\n' {
		c.pos++
	}
	return string(c.b[start:c.pos])
}

func (c *cursor) readDimension() (int, error) {
	n, err := c.readUint()
	if err != nil {
		return 0, err
	}
	if n > MaxDimension {
		return 0, c.errorf(ErrImageTooLarge, "%d exceeds %d", n, MaxDimension)
	}
	return n, nil
}

func (c *cursor) readMaxval() (int, error) {
	n, err := c.readUint()
	if err != nil {
		return 0, err
	}
	if n <= 0 || n >= maxSampleValue {
		return 0, c.errorf(ErrMaxColorValueOutOfRange, "maxval %d", n)
	}
	return n, nil
}
