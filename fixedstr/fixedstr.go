// Package fixedstr provides fixed-capacity packed strings stored in
// manually-managed memory.
//
// Both variants keep their bytes in a single region obtained through the
// mem handle API: a 4-byte little-endian length prefix followed by the
// character data. The capacity is fixed at construction; Set fails with
// ErrCapacity rather than growing. This layout round-trips through raw
// memory, so the strings can be embedded in unmanaged containers by
// address.
package fixedstr

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/memkit/mem"
)

var (
	// ErrCapacity indicates input longer than the string's fixed capacity.
	ErrCapacity = errors.New("fixedstr: capacity exceeded")

	// ErrNotASCII indicates non-ASCII input to an Ascii string.
	ErrNotASCII = errors.New("fixedstr: non-ASCII input")
)

// header is the byte size of the length prefix.
const header = 4

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Ascii is a fixed-capacity string of 7-bit characters, one byte each.
type Ascii struct {
	data mem.Address
}

// NewAscii allocates an empty ASCII string with room for capacity
// characters.
func NewAscii(capacity int) (Ascii, error) {
	data, err := mem.AllocZeroed(header + capacity)
	if err != nil {
		return Ascii{}, err
	}
	return Ascii{data: data}, nil
}

// Cap returns the character capacity.
func (s Ascii) Cap() int { return s.data.Size() - header }

// Len returns the current character count.
func (s Ascii) Len() int { return int(mem.Read[int32](s.data, 0)) }

// Set replaces the contents with v. Fails with ErrCapacity when v is too
// long and ErrNotASCII when v contains a byte above 0x7F; the stored value
// is unchanged on failure.
func (s Ascii) Set(v string) error {
	if len(v) > s.Cap() {
		return fmt.Errorf("fixedstr: %d chars into capacity %d: %w", len(v), s.Cap(), ErrCapacity)
	}
	for i := 0; i < len(v); i++ {
		if v[i] > 0x7F {
			return fmt.Errorf("fixedstr: byte 0x%x at index %d: %w", v[i], i, ErrNotASCII)
		}
	}
	mem.CopyFrom(s.data, header, []byte(v))
	mem.Write(s.data, 0, int32(len(v)))
	return nil
}

// String returns the contents as a Go string.
func (s Ascii) String() string {
	n := s.Len()
	b := make([]byte, n)
	mem.CopyTo(s.data, header, b)
	return string(b)
}

// Free releases the backing region.
func (s Ascii) Free() error { return mem.Free(s.data) }

// Utf16 is a fixed-capacity string of UTF-16 code units, two bytes each,
// little-endian. The length prefix counts code units, not runes.
type Utf16 struct {
	data mem.Address
}

// NewUtf16 allocates an empty UTF-16 string with room for capacity code
// units.
func NewUtf16(capacity int) (Utf16, error) {
	data, err := mem.AllocZeroed(header + 2*capacity)
	if err != nil {
		return Utf16{}, err
	}
	return Utf16{data: data}, nil
}

// Cap returns the capacity in UTF-16 code units.
func (s Utf16) Cap() int { return (s.data.Size() - header) / 2 }

// Len returns the current length in UTF-16 code units.
func (s Utf16) Len() int { return int(mem.Read[int32](s.data, 0)) }

// Set replaces the contents with v, encoding to UTF-16LE. Fails with
// ErrCapacity when the encoded form is too long; the stored value is
// unchanged on failure.
func (s Utf16) Set(v string) error {
	enc, err := utf16le.NewEncoder().Bytes([]byte(v))
	if err != nil {
		return fmt.Errorf("fixedstr: utf-16 encode: %w", err)
	}
	units := len(enc) / 2
	if units > s.Cap() {
		return fmt.Errorf("fixedstr: %d code units into capacity %d: %w", units, s.Cap(), ErrCapacity)
	}
	mem.CopyFrom(s.data, header, enc)
	mem.Write(s.data, 0, int32(units))
	return nil
}

// String decodes the contents back to a Go string.
func (s Utf16) String() string {
	b := make([]byte, 2*s.Len())
	mem.CopyTo(s.data, header, b)
	dec, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		// Stored bytes were produced by Set, so a decode failure means the
		// region was scribbled on through an alias.
		return ""
	}
	return string(dec)
}

// Free releases the backing region.
func (s Utf16) Free() error { return mem.Free(s.data) }
