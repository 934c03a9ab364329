package pdu

// PDU is implemented by every concrete command body. A PDU knows its own
// command_id and can marshal/unmarshal its body (the header is handled
// separately by the codec). Grounded on ajankovic/smpp/pdu.PDU's
// interface shape.
type PDU interface {
	CommandID() CommandID
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// Request marks a PDU used as a request. It adds no methods to PDU, so
// every PDU satisfies it.
type Request interface {
	PDU
}

// MessageCarrier is implemented by PDUs whose message body may live in
// either a short_message field or a message_payload TLV, mutually
// exclusive per SMPP's grammar (submit_sm, deliver_sm, data_sm).
type MessageCarrier interface {
	PDU
	MessagePayload() ([]byte, bool)
}

// UnknownPDU wraps a body whose command_id is not recognized by the
// registry in use. The frame is still fully parsed at the header level;
// only the body is left opaque, rather than failing to decode.
type UnknownPDU struct {
	ID      CommandID
	RawBody []byte
}

func (u *UnknownPDU) CommandID() CommandID { return u.ID }

func (u *UnknownPDU) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), u.RawBody...), nil
}

func (u *UnknownPDU) UnmarshalBinary(data []byte) error {
	u.RawBody = append([]byte(nil), data...)
	return nil
}
