package pdu

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// reader walks a PDU body octet by octet, enforcing the bounded-read
// discipline every C-string and TLV field needs. Grounded on
// ajankovic/smpp/pdu's pduReader.
type reader struct {
	buf []byte
	pos int
}

func newReader(body []byte) *reader {
	return &reader{buf: body}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) Byte() (byte, error) {
	if r.remaining() < 1 {
		return 0, fmt.Errorf("pdu: unexpected end of body reading byte")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) Uint16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, fmt.Errorf("pdu: unexpected end of body reading uint16")
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) Uint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, fmt.Errorf("pdu: unexpected end of body reading uint32")
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// Bytes reads exactly n raw octets.
func (r *reader) Bytes(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, fmt.Errorf("pdu: unexpected end of body reading %d bytes", n)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// CString reads a NUL-terminated string, refusing to scan past limit
// octets including the terminator (a malformed or hostile PDU must not
// be able to force an unbounded scan).
func (r *reader) CString(limit int) (string, error) {
	end := r.pos + limit
	if end > len(r.buf) {
		end = len(r.buf)
	}
	idx := bytes.IndexByte(r.buf[r.pos:end], 0)
	if idx < 0 {
		return "", fmt.Errorf("pdu: c-string exceeds %d-octet limit without terminator", limit)
	}
	s := string(r.buf[r.pos : r.pos+idx])
	r.pos += idx + 1
	return s, nil
}

// FixedString reads exactly n octets and trims trailing NUL padding.
func (r *reader) FixedString(n int) (string, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	idx := bytes.IndexByte(b, 0)
	if idx < 0 {
		return string(b), nil
	}
	return string(b[:idx]), nil
}

// Rest returns every remaining unread octet without advancing further
// than EOF; used to read a trailing TLV block.
func (r *reader) Rest() []byte {
	b := r.buf[r.pos:]
	r.pos = len(r.buf)
	return b
}

// TlvList consumes the remainder of the body as a sequence of
// tag/length/value triples.
func (r *reader) TlvList() (TlvList, error) {
	var out TlvList
	for r.remaining() > 0 {
		if r.remaining() < 4 {
			return nil, fmt.Errorf("pdu: truncated tlv header")
		}
		tag, err := r.Uint16()
		if err != nil {
			return nil, err
		}
		length, err := r.Uint16()
		if err != nil {
			return nil, err
		}
		value, err := r.Bytes(int(length))
		if err != nil {
			return nil, fmt.Errorf("pdu: truncated tlv value for tag %s: %w", Tag(tag), err)
		}
		out = append(out, Tlv{Tag: Tag(tag), Value: append([]byte(nil), value...)})
	}
	return out, nil
}

// writer accumulates a PDU body. Grounded on Ucell-first-smpp2/pdu.go's
// write/writeByte/writeString/writeTLV helpers, generalized to the full
// field-width vocabulary the grammars need.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

func (w *writer) Uint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) Uint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) Bytes(b []byte) {
	w.buf.Write(b)
}

// CString writes s followed by a single NUL terminator.
func (w *writer) CString(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

// FixedString writes s zero-padded (or truncated) to exactly n octets.
func (w *writer) FixedString(s string, n int) {
	b := make([]byte, n)
	copy(b, s)
	w.buf.Write(b)
}

func (w *writer) Tlv(t Tlv) {
	w.Uint16(uint16(t.Tag))
	w.Uint16(uint16(len(t.Value)))
	w.Bytes(t.Value)
}

func (w *writer) TlvList(list TlvList) {
	for _, t := range list {
		w.Tlv(t)
	}
}

// Body returns the accumulated body octets.
func (w *writer) Body() []byte {
	return w.buf.Bytes()
}
