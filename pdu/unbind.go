package pdu

// Unbind has no body fields; it is a bare header request.
type Unbind struct{}

func (u *Unbind) CommandID() CommandID           { return UnbindID }
func (u *Unbind) MarshalBinary() ([]byte, error) { return nil, nil }
func (u *Unbind) UnmarshalBinary(data []byte) error {
	return nil
}

// UnbindResp has no body fields either.
type UnbindResp struct{}

func (u *UnbindResp) CommandID() CommandID           { return UnbindRespID }
func (u *UnbindResp) MarshalBinary() ([]byte, error) { return nil, nil }
func (u *UnbindResp) UnmarshalBinary(data []byte) error {
	return nil
}

// EnquireLink is the keep-alive probe request.
type EnquireLink struct{}

func (e *EnquireLink) CommandID() CommandID           { return EnquireLinkID }
func (e *EnquireLink) MarshalBinary() ([]byte, error) { return nil, nil }
func (e *EnquireLink) UnmarshalBinary(data []byte) error {
	return nil
}

// EnquireLinkResp is the keep-alive probe response. Per this library's
// resolution of the protocol's open question on the matter, it is
// treated as a normal response PDU whose header command_status may
// legitimately carry a non-OK value (e.g. under congestion); it is not
// hard-coded to always succeed.
type EnquireLinkResp struct{}

func (e *EnquireLinkResp) CommandID() CommandID           { return EnquireLinkRespID }
func (e *EnquireLinkResp) MarshalBinary() ([]byte, error) { return nil, nil }
func (e *EnquireLinkResp) UnmarshalBinary(data []byte) error {
	return nil
}

// GenericNack rejects a PDU the SMSC could not parse or associate with
// any known command_id; it carries no body, only the header's status.
type GenericNack struct{}

func (g *GenericNack) CommandID() CommandID           { return GenericNackID }
func (g *GenericNack) MarshalBinary() ([]byte, error) { return nil, nil }
func (g *GenericNack) UnmarshalBinary(data []byte) error {
	return nil
}

// AlertNotification is pushed unsolicited by the SMSC when a
// previously-unavailable mobile station becomes available again.
type AlertNotification struct {
	SourceAddr          Address
	EsmeAddr            Address
	MsAvailabilityStatus *byte // optional TLV, v5.0
}

func (a *AlertNotification) CommandID() CommandID { return AlertNotificationID }

func (a *AlertNotification) MarshalBinary() ([]byte, error) {
	w := &writer{}
	w.Byte(byte(a.SourceAddr.TON))
	w.Byte(byte(a.SourceAddr.NPI))
	w.CString(a.SourceAddr.Number)
	w.Byte(byte(a.EsmeAddr.TON))
	w.Byte(byte(a.EsmeAddr.NPI))
	w.CString(a.EsmeAddr.Number)
	if a.MsAvailabilityStatus != nil {
		w.Tlv(NewByteTlv(TagMsAvailabilityStatus, *a.MsAvailabilityStatus))
	}
	return w.Body(), nil
}

func (a *AlertNotification) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	ton, err := r.Byte()
	if err != nil {
		return err
	}
	npi, err := r.Byte()
	if err != nil {
		return err
	}
	num, err := r.CString(PhoneNumberLimit)
	if err != nil {
		return err
	}
	a.SourceAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}

	ton, err = r.Byte()
	if err != nil {
		return err
	}
	npi, err = r.Byte()
	if err != nil {
		return err
	}
	num, err = r.CString(PhoneNumberLimit)
	if err != nil {
		return err
	}
	a.EsmeAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}

	tlvs, err := r.TlvList()
	if err != nil {
		return err
	}
	if t, ok := tlvs.Get(TagMsAvailabilityStatus); ok {
		if v, ok := t.Byte(); ok {
			a.MsAvailabilityStatus = &v
		}
	}
	return nil
}
