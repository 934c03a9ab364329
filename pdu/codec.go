package pdu

import (
	"encoding/binary"
	"fmt"
)

// MinCommandLength is the smallest legal command_length: just the
// 16-octet header with an empty body.
const MinCommandLength = HeaderLength

// MaxCommandLength bounds a single PDU's declared size, guarding against
// a hostile or corrupt peer declaring an unbounded frame.
const MaxCommandLength = 65536

// Check inspects a would-be frame's leading command_length field without
// requiring the full frame to be buffered yet. It is the first of the
// codec's three operations: Check, DecodeHeader, and Registry.Decode
// for the body.
//
// It returns the declared total frame length and an error if that length
// is out of the legal range, before committing to reading the rest of
// the buffer.
func Check(buf []byte) (length uint32, err error) {
	if len(buf) < 4 {
		return 0, fmt.Errorf("pdu: buffer too short to read command_length")
	}
	length = binary.BigEndian.Uint32(buf[:4])
	if length < MinCommandLength || length > MaxCommandLength {
		return 0, NewFieldError("command_length", StatusInvalidCommandLength)
	}
	return length, nil
}

// DecodeHeader decodes the fixed 16-octet header from buf, which must be
// at least HeaderLength octets.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderLength {
		return Header{}, fmt.Errorf("pdu: buffer shorter than header length")
	}
	return Header{
		CommandLength:  binary.BigEndian.Uint32(buf[0:4]),
		CommandID:      CommandID(binary.BigEndian.Uint32(buf[4:8])),
		CommandStatus:  CommandStatus(binary.BigEndian.Uint32(buf[8:12])),
		SequenceNumber: binary.BigEndian.Uint32(buf[12:16]),
	}, nil
}

// EncodeHeader writes h's 16 octets into a fresh buffer.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLength)
	binary.BigEndian.PutUint32(buf[0:4], h.CommandLength)
	binary.BigEndian.PutUint32(buf[4:8], uint32(h.CommandID))
	binary.BigEndian.PutUint32(buf[8:12], uint32(h.CommandStatus))
	binary.BigEndian.PutUint32(buf[12:16], h.SequenceNumber)
	return buf
}

// Frame is a fully decoded PDU: its header plus the concrete body the
// registry resolved command_id to.
type Frame struct {
	Header Header
	Body   PDU
}

// EncodeFrame marshals body and backpatches command_length, returning
// the complete wire frame (header + body).
func EncodeFrame(id CommandID, status CommandStatus, seq uint32, body PDU) ([]byte, error) {
	bodyBytes, err := body.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("pdu: encoding %s body: %w", id, err)
	}
	header := EncodeHeader(Header{
		CommandLength:  uint32(HeaderLength + len(bodyBytes)),
		CommandID:      id,
		CommandStatus:  status,
		SequenceNumber: seq,
	})
	return append(header, bodyBytes...), nil
}
