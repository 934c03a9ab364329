// Package pdu implements the SMPP v3.4/v5.0 wire types: the fixed PDU
// header, the primitive field types each command body is built from, the
// per-command grammars, and the frame codec that ties header and body
// together.
package pdu

import "fmt"

// HeaderLength is the size in octets of the fixed SMPP PDU header.
const HeaderLength = 16

// Header is the 16-octet preamble common to every SMPP PDU.
type Header struct {
	CommandLength  uint32
	CommandID      CommandID
	CommandStatus  CommandStatus
	SequenceNumber uint32
}

func (h Header) String() string {
	return fmt.Sprintf("Header{len=%d id=%s status=%s seq=%d}", h.CommandLength, h.CommandID, h.CommandStatus, h.SequenceNumber)
}

// IsResponse reports whether id's high bit (bit 31) is set, the wire
// convention that marks a command_id as a response PDU.
func IsResponse(id CommandID) bool {
	return id&0x80000000 != 0
}

// IsRequest is the complement of IsResponse.
func IsRequest(id CommandID) bool {
	return !IsResponse(id)
}

// ResponseID returns the command_id a request PDU's matching response
// carries, i.e. id with bit 31 set.
func ResponseID(id CommandID) CommandID {
	return id | 0x80000000
}
