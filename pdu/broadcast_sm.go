package pdu

// BroadcastSm submits a message for cell-broadcast delivery (v5.0). The
// broadcast area, content type, repetition count, and frequency
// interval are mandatory inline fields on this command, not TLVs; only
// message_payload and anything beyond the mandatory set travels in the
// TLV trailer.
type BroadcastSm struct {
	ServiceType               string
	SourceAddr                Address
	MessageID                 string
	PriorityFlag              PriorityFlag
	ScheduleDeliveryTime      SmppDateTime
	ValidityPeriod            SmppDateTime
	DataCoding                DataCoding
	BroadcastAreaIdentifier   []byte
	BroadcastContentType      byte
	BroadcastRepNum           uint16
	BroadcastFrequencyInterval uint32
	TLVs                      TlvList // message_payload, broadcast_channel_indicator, etc.
}

func (b *BroadcastSm) CommandID() CommandID { return BroadcastSmID }

func (b *BroadcastSm) MessagePayload() ([]byte, bool) {
	if t, ok := b.TLVs.Get(TagMessagePayload); ok {
		return t.Value, true
	}
	return nil, false
}

func (b *BroadcastSm) MarshalBinary() ([]byte, error) {
	if len(b.BroadcastAreaIdentifier) > 255 {
		return nil, NewFieldError("broadcast_area_identifier", StatusInvalidParameterLength)
	}
	if err := b.SourceAddr.ValidateSource(); err != nil {
		return nil, err
	}
	w := &writer{}
	w.CString(b.ServiceType)
	w.Byte(byte(b.SourceAddr.TON))
	w.Byte(byte(b.SourceAddr.NPI))
	w.CString(b.SourceAddr.Number)
	w.CString(b.MessageID)
	w.Byte(byte(b.PriorityFlag))
	w.CString(b.ScheduleDeliveryTime.String())
	w.CString(b.ValidityPeriod.String())
	w.Byte(b.DataCoding.Byte())
	w.Byte(byte(len(b.BroadcastAreaIdentifier)))
	w.Bytes(b.BroadcastAreaIdentifier)
	w.Byte(b.BroadcastContentType)
	w.Uint16(b.BroadcastRepNum)
	w.Uint32(b.BroadcastFrequencyInterval)
	w.TlvList(b.TLVs)
	return w.Body(), nil
}

func (b *BroadcastSm) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if b.ServiceType, err = r.CString(ServiceTypeLimit); err != nil {
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
	b.SourceAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}
	if b.MessageID, err = r.CString(MessageIDLimit); err != nil {
		return err
	}
	priority, err := r.Byte()
	if err != nil {
		return err
	}
	b.PriorityFlag = PriorityFlag(priority)
	sched, err := r.CString(ScheduleTimeLimit)
	if err != nil {
		return err
	}
	if b.ScheduleDeliveryTime, err = ParseSmppDateTime(sched); err != nil {
		return err
	}
	validity, err := r.CString(ScheduleTimeLimit)
	if err != nil {
		return err
	}
	if b.ValidityPeriod, err = ParseSmppDateTime(validity); err != nil {
		return err
	}
	dc, err := r.Byte()
	if err != nil {
		return err
	}
	b.DataCoding = NewDataCoding(dc)
	areaLen, err := r.Byte()
	if err != nil {
		return err
	}
	area, err := r.Bytes(int(areaLen))
	if err != nil {
		return err
	}
	b.BroadcastAreaIdentifier = append([]byte(nil), area...)
	if b.BroadcastContentType, err = r.Byte(); err != nil {
		return err
	}
	if b.BroadcastRepNum, err = r.Uint16(); err != nil {
		return err
	}
	if b.BroadcastFrequencyInterval, err = r.Uint32(); err != nil {
		return err
	}
	if b.TLVs, err = r.TlvList(); err != nil {
		return err
	}
	return nil
}

// BroadcastSmResp acknowledges a broadcast_sm.
type BroadcastSmResp struct {
	MessageID string
	TLVs      TlvList // broadcast_error_status if partially failed
}

func (b *BroadcastSmResp) CommandID() CommandID { return BroadcastSmRespID }

func (b *BroadcastSmResp) MarshalBinary() ([]byte, error) {
	w := &writer{}
	w.CString(b.MessageID)
	w.TlvList(b.TLVs)
	return w.Body(), nil
}

func (b *BroadcastSmResp) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if b.MessageID, err = r.CString(MessageIDLimit); err != nil {
		return err
	}
	if b.TLVs, err = r.TlvList(); err != nil {
		return err
	}
	return nil
}

// QueryBroadcastSm requests the status of a broadcast message.
type QueryBroadcastSm struct {
	MessageID  string
	SourceAddr Address
	TLVs       TlvList
}

func (q *QueryBroadcastSm) CommandID() CommandID { return QueryBroadcastSmID }

func (q *QueryBroadcastSm) MarshalBinary() ([]byte, error) {
	w := &writer{}
	w.CString(q.MessageID)
	w.Byte(byte(q.SourceAddr.TON))
	w.Byte(byte(q.SourceAddr.NPI))
	w.CString(q.SourceAddr.Number)
	w.TlvList(q.TLVs)
	return w.Body(), nil
}

func (q *QueryBroadcastSm) UnmarshalBinary(data []byte) error {
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
	if q.TLVs, err = r.TlvList(); err != nil {
		return err
	}
	return nil
}

// QueryBroadcastSmResp reports the current state of a queried broadcast
// message, plus optional TLVs (broadcast_area_identifier/
// broadcast_area_success pairs, one per area).
type QueryBroadcastSmResp struct {
	MessageID    string
	MessageState MessageState
	FinalDate    SmppDateTime
	TLVs         TlvList
}

func (q *QueryBroadcastSmResp) CommandID() CommandID { return QueryBroadcastSmRespID }

func (q *QueryBroadcastSmResp) MarshalBinary() ([]byte, error) {
	w := &writer{}
	w.CString(q.MessageID)
	w.Byte(byte(q.MessageState))
	w.CString(q.FinalDate.String())
	w.TlvList(q.TLVs)
	return w.Body(), nil
}

func (q *QueryBroadcastSmResp) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if q.MessageID, err = r.CString(MessageIDLimit); err != nil {
		return err
	}
	state, err := r.Byte()
	if err != nil {
		return err
	}
	q.MessageState = MessageState(state)
	final, err := r.CString(ScheduleTimeLimit)
	if err != nil {
		return err
	}
	if q.FinalDate, err = ParseSmppDateTime(final); err != nil {
		return err
	}
	if q.TLVs, err = r.TlvList(); err != nil {
		return err
	}
	return nil
}

// CancelBroadcastSm cancels a previously submitted broadcast.
type CancelBroadcastSm struct {
	ServiceType string
	MessageID   string
	SourceAddr  Address
	TLVs        TlvList
}

func (c *CancelBroadcastSm) CommandID() CommandID { return CancelBroadcastSmID }

func (c *CancelBroadcastSm) MarshalBinary() ([]byte, error) {
	w := &writer{}
	w.CString(c.ServiceType)
	w.CString(c.MessageID)
	w.Byte(byte(c.SourceAddr.TON))
	w.Byte(byte(c.SourceAddr.NPI))
	w.CString(c.SourceAddr.Number)
	w.TlvList(c.TLVs)
	return w.Body(), nil
}

func (c *CancelBroadcastSm) UnmarshalBinary(data []byte) error {
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
	if c.TLVs, err = r.TlvList(); err != nil {
		return err
	}
	return nil
}

// CancelBroadcastSmResp has no mandatory body fields.
type CancelBroadcastSmResp struct{}

func (c *CancelBroadcastSmResp) CommandID() CommandID           { return CancelBroadcastSmRespID }
func (c *CancelBroadcastSmResp) MarshalBinary() ([]byte, error) { return nil, nil }
func (c *CancelBroadcastSmResp) UnmarshalBinary(data []byte) error {
	return nil
}
