package pdu

// QuerySm requests the current status of a previously submitted message.
type QuerySm struct {
	MessageID  string
	SourceAddr Address
}

func (q *QuerySm) CommandID() CommandID { return QuerySmID }

func (q *QuerySm) MarshalBinary() ([]byte, error) {
	if len(q.MessageID) > MessageIDLimit-1 {
		return nil, NewFieldError("message_id", StatusInvalidMessageID)
	}
	if err := q.SourceAddr.ValidateSource(); err != nil {
		return nil, err
	}
	w := &writer{}
	w.CString(q.MessageID)
	w.Byte(byte(q.SourceAddr.TON))
	w.Byte(byte(q.SourceAddr.NPI))
	w.CString(q.SourceAddr.Number)
	return w.Body(), nil
}

func (q *QuerySm) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if q.MessageID, err = r.CString(MessageIDLimit); err != nil {
		return err
	}
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
	q.SourceAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}
	return nil
}

// MessageState enumerates the lifecycle state a queried message may be
// reported in.
type MessageState byte

const (
	MessageStateEnroute       MessageState = 1
	MessageStateDelivered     MessageState = 2
	MessageStateExpired       MessageState = 3
	MessageStateDeleted       MessageState = 4
	MessageStateUndeliverable MessageState = 5
	MessageStateAccepted      MessageState = 6
	MessageStateUnknown       MessageState = 7
	MessageStateRejected      MessageState = 8
)

// QuerySmResp reports the final/current state of a queried message.
type QuerySmResp struct {
	MessageID    string
	FinalDate    SmppDateTime
	MessageState MessageState
	ErrorCode    byte
}

func (q *QuerySmResp) CommandID() CommandID { return QuerySmRespID }

func (q *QuerySmResp) MarshalBinary() ([]byte, error) {
	w := &writer{}
	w.CString(q.MessageID)
	w.CString(q.FinalDate.String())
	w.Byte(byte(q.MessageState))
	w.Byte(q.ErrorCode)
	return w.Body(), nil
}

func (q *QuerySmResp) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if q.MessageID, err = r.CString(MessageIDLimit); err != nil {
		return err
	}
	final, err := r.CString(ScheduleTimeLimit)
	if err != nil {
		return err
	}
	if q.FinalDate, err = ParseSmppDateTime(final); err != nil {
		return err
	}
	state, err := r.Byte()
	if err != nil {
		return err
	}
	q.MessageState = MessageState(state)
	if q.ErrorCode, err = r.Byte(); err != nil {
		return err
	}
	return nil
}

// CancelSm cancels a previously submitted, not-yet-delivered message.
type CancelSm struct {
	ServiceType string
	MessageID   string
	SourceAddr  Address
	DestAddr    Address
}

func (c *CancelSm) CommandID() CommandID { return CancelSmID }

func (c *CancelSm) MarshalBinary() ([]byte, error) {
	if err := c.SourceAddr.ValidateSource(); err != nil {
		return nil, err
	}
	if err := c.DestAddr.ValidateDest(); err != nil {
		return nil, err
	}
	w := &writer{}
	w.CString(c.ServiceType)
	w.CString(c.MessageID)
	w.Byte(byte(c.SourceAddr.TON))
	w.Byte(byte(c.SourceAddr.NPI))
	w.CString(c.SourceAddr.Number)
	w.Byte(byte(c.DestAddr.TON))
	w.Byte(byte(c.DestAddr.NPI))
	w.CString(c.DestAddr.Number)
	return w.Body(), nil
}

func (c *CancelSm) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if c.ServiceType, err = r.CString(ServiceTypeLimit); err != nil {
		return err
	}
	if c.MessageID, err = r.CString(MessageIDLimit); err != nil {
		return err
	}
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
	c.SourceAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}

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
	c.DestAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}
	return nil
}

// CancelSmResp has no body fields.
type CancelSmResp struct{}

func (c *CancelSmResp) CommandID() CommandID           { return CancelSmRespID }
func (c *CancelSmResp) MarshalBinary() ([]byte, error) { return nil, nil }
func (c *CancelSmResp) UnmarshalBinary(data []byte) error {
	return nil
}

// ReplaceSm replaces the content of a previously submitted message.
type ReplaceSm struct {
	MessageID            string
	SourceAddr           Address
	ScheduleDeliveryTime SmppDateTime
	ValidityPeriod       SmppDateTime
	RegisteredDelivery   RegisteredDelivery
	SmDefaultMsgID       byte
	ShortMessage         []byte
}

func (r *ReplaceSm) CommandID() CommandID { return ReplaceSmID }

func (rs *ReplaceSm) MarshalBinary() ([]byte, error) {
	if len(rs.ShortMessage) > ShortMessageMax {
		return nil, NewFieldError("sm_length", StatusInvalidMsgLength)
	}
	if err := rs.SourceAddr.ValidateSource(); err != nil {
		return nil, err
	}
	w := &writer{}
	w.CString(rs.MessageID)
	w.Byte(byte(rs.SourceAddr.TON))
	w.Byte(byte(rs.SourceAddr.NPI))
	w.CString(rs.SourceAddr.Number)
	w.CString(rs.ScheduleDeliveryTime.String())
	w.CString(rs.ValidityPeriod.String())
	w.Byte(rs.RegisteredDelivery.Byte())
	w.Byte(rs.SmDefaultMsgID)
	w.Byte(byte(len(rs.ShortMessage)))
	w.Bytes(rs.ShortMessage)
	return w.Body(), nil
}

func (rs *ReplaceSm) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if rs.MessageID, err = r.CString(MessageIDLimit); err != nil {
		return err
	}
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
	rs.SourceAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}

	sched, err := r.CString(ScheduleTimeLimit)
	if err != nil {
		return err
	}
	if rs.ScheduleDeliveryTime, err = ParseSmppDateTime(sched); err != nil {
		return err
	}
	validity, err := r.CString(ScheduleTimeLimit)
	if err != nil {
		return err
	}
	if rs.ValidityPeriod, err = ParseSmppDateTime(validity); err != nil {
		return err
	}
	regDelivery, err := r.Byte()
	if err != nil {
		return err
	}
	rs.RegisteredDelivery = ParseRegisteredDelivery(regDelivery)
	if rs.SmDefaultMsgID, err = r.Byte(); err != nil {
		return err
	}
	smLength, err := r.Byte()
	if err != nil {
		return err
	}
	if rs.ShortMessage, err = r.Bytes(int(smLength)); err != nil {
		return NewFieldError("sm_length", StatusInvalidMsgLength)
	}
	rs.ShortMessage = append([]byte(nil), rs.ShortMessage...)
	return nil
}

// ReplaceSmResp has no body fields.
type ReplaceSmResp struct{}

func (r *ReplaceSmResp) CommandID() CommandID           { return ReplaceSmRespID }
func (r *ReplaceSmResp) MarshalBinary() ([]byte, error) { return nil, nil }
func (r *ReplaceSmResp) UnmarshalBinary(data []byte) error {
	return nil
}
