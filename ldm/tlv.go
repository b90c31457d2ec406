package ldm

import "encoding/binary"

// cursor is a read-only walker over an immutable VBLK record payload. Every
// read validates remaining length before advancing; malformed input may
// claim a length past the record end, so bounds checks are never skipped.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

// need fails invalid if fewer than n bytes remain.
func (c *cursor) need(n int) error {
	if c.remaining() < n {
		return newErrf(KindInvalid, "record truncated: need %d bytes, have %d", n, c.remaining())
	}
	return nil
}

// fixed reads and advances past n raw bytes.
func (c *cursor) fixed(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// skipFixed advances n bytes without returning them.
func (c *cursor) skipFixed(n int) error {
	_, err := c.fixed(n)
	return err
}

// byte1 reads a single unescaped byte.
func (c *cursor) byte1() (byte, error) {
	b, err := c.fixed(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// be64 reads a fixed-width big-endian uint64, used by partition records
// for start/vol_offset which are not length-prefixed.
func (c *cursor) be64() (uint64, error) {
	b, err := c.fixed(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// varLen reads the 1-byte TLV length prefix, validating remaining ≥ 1+L
// before the caller consumes the payload.
func (c *cursor) varLen() (int, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	l := int(c.data[c.pos])
	if c.remaining()-1 < l {
		return 0, newErrf(KindInvalid, "record truncated: TLV length %d exceeds remaining %d", l, c.remaining()-1)
	}
	c.pos++
	return l, nil
}

// varInt32 reads a var-int TLV field into a uint32, per the PARSE_VAR_INT
// convention: a 1-byte length L followed by L big-endian bytes
// shift-accumulated into the output. L > 4 is an internal error, not
// expected on well-formed input.
func (c *cursor) varInt32() (uint32, error) {
	l, err := c.varLen()
	if err != nil {
		return 0, err
	}
	if l > 4 {
		return 0, newErrf(KindInternal, "found %d byte integer for a 32-bit field", l)
	}
	var out uint32
	for i := 0; i < l; i++ {
		out = out<<8 + uint32(c.data[c.pos])
		c.pos++
	}
	return out, nil
}

// varInt64 is varInt32's 64-bit counterpart.
func (c *cursor) varInt64() (uint64, error) {
	l, err := c.varLen()
	if err != nil {
		return 0, err
	}
	if l > 8 {
		return 0, newErrf(KindInternal, "found %d byte integer for a 64-bit field", l)
	}
	var out uint64
	for i := 0; i < l; i++ {
		out = out<<8 + uint64(c.data[c.pos])
		c.pos++
	}
	return out, nil
}

// varString reads a length-prefixed field as a string of exactly L bytes;
// the returned string never contains the length byte, and any NUL bytes
// within the L bytes are kept.
func (c *cursor) varString() (string, error) {
	l, err := c.varLen()
	if err != nil {
		return "", err
	}
	s := string(c.data[c.pos : c.pos+l])
	c.pos += l
	return s, nil
}

// varSkip advances past a length-prefixed field without interpreting it,
// used for the volume-type-tag and volume-state regions whose layout is
// intentionally treated as opaque.
func (c *cursor) varSkip() error {
	l, err := c.varLen()
	if err != nil {
		return err
	}
	c.pos += l
	return nil
}
