package netpbm

import "fmt"

// cursor is a read position within an immutable buffer. Callers must check
// atEnd before peek or advance.
type cursor struct {
	b   []byte
	pos int
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.b)
}

func (c *cursor) peek() byte {
	return c.b[c.pos]
}

func (c *cursor) advance() byte {
	b := c.b[c.pos]
	c.pos++
	return b
}

// next returns the following n bytes without copying them.
func (c *cursor) next(n int) ([]byte, error) {
	if len(c.b)-c.pos < n {
		c.pos = len(c.b)
		return nil, c.errorf(ErrInvalidFormat, "unexpected end of data")
	}
	b := c.b[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) errorf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s at offset %d", kind, fmt.Sprintf(format, args...), c.pos)
}
