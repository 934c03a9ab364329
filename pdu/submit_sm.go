package pdu

// SubmitSm submits a single short message for delivery, using the
// TlvList-based optional-parameter model the rest of this package uses.
type SubmitSm struct {
	ServiceType          string
	SourceAddr           Address
	DestAddr             Address
	EsmClass             EsmClass
	ProtocolID           byte
	PriorityFlag         PriorityFlag
	ScheduleDeliveryTime SmppDateTime
	ValidityPeriod       SmppDateTime
	RegisteredDelivery   RegisteredDelivery
	ReplaceIfPresentFlag byte
	DataCoding           DataCoding
	SmDefaultMsgID       byte
	ShortMessage         []byte // mutually exclusive with MessagePayload TLV
	TLVs                 TlvList
}

func (s *SubmitSm) CommandID() CommandID { return SubmitSmID }

// MessagePayload returns whichever of short_message or the
// message_payload TLV is populated; the two are mutually exclusive.
func (s *SubmitSm) MessagePayload() ([]byte, bool) {
	if t, ok := s.TLVs.Get(TagMessagePayload); ok {
		return t.Value, true
	}
	if len(s.ShortMessage) > 0 {
		return s.ShortMessage, true
	}
	return nil, false
}

func (s *SubmitSm) MarshalBinary() ([]byte, error) {
	if _, hasPayload := s.TLVs.Get(TagMessagePayload); hasPayload && len(s.ShortMessage) > 0 {
		return nil, NewFieldError("message_payload", StatusOptionalParameterNotAllowed)
	}
	if len(s.ShortMessage) > ShortMessageMax {
		return nil, NewFieldError("sm_length", StatusInvalidMsgLength)
	}
	if err := s.EsmClass.Validate(); err != nil {
		return nil, err
	}
	if err := s.SourceAddr.ValidateSource(); err != nil {
		return nil, err
	}
	if err := s.DestAddr.ValidateDest(); err != nil {
		return nil, err
	}
	w := &writer{}
	w.CString(s.ServiceType)
	w.Byte(byte(s.SourceAddr.TON))
	w.Byte(byte(s.SourceAddr.NPI))
	w.CString(s.SourceAddr.Number)
	w.Byte(byte(s.DestAddr.TON))
	w.Byte(byte(s.DestAddr.NPI))
	w.CString(s.DestAddr.Number)
	w.Byte(s.EsmClass.Byte())
	w.Byte(s.ProtocolID)
	w.Byte(byte(s.PriorityFlag))
	w.CString(s.ScheduleDeliveryTime.String())
	w.CString(s.ValidityPeriod.String())
	w.Byte(s.RegisteredDelivery.Byte())
	w.Byte(s.ReplaceIfPresentFlag)
	w.Byte(s.DataCoding.Byte())
	w.Byte(s.SmDefaultMsgID)
	w.Byte(byte(len(s.ShortMessage)))
	w.Bytes(s.ShortMessage)
	w.TlvList(s.TLVs)
	return w.Body(), nil
}

func (s *SubmitSm) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if s.ServiceType, err = r.CString(ServiceTypeLimit); err != nil {
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
	s.SourceAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}

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
	s.DestAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}

	esm, err := r.Byte()
	if err != nil {
		return err
	}
	s.EsmClass = ParseEsmClass(esm)
	if s.ProtocolID, err = r.Byte(); err != nil {
		return err
	}
	priority, err := r.Byte()
	if err != nil {
		return err
	}
	s.PriorityFlag = PriorityFlag(priority)

	sched, err := r.CString(ScheduleTimeLimit)
	if err != nil {
		return err
	}
	if s.ScheduleDeliveryTime, err = ParseSmppDateTime(sched); err != nil {
		return NewFieldError("schedule_delivery_time", StatusInvalidScheduledDeliveryTime)
	}
	validity, err := r.CString(ScheduleTimeLimit)
	if err != nil {
		return err
	}
	if s.ValidityPeriod, err = ParseSmppDateTime(validity); err != nil {
		return NewFieldError("validity_period", StatusInvalidExpiryTime)
	}

	regDelivery, err := r.Byte()
	if err != nil {
		return err
	}
	s.RegisteredDelivery = ParseRegisteredDelivery(regDelivery)
	if s.ReplaceIfPresentFlag, err = r.Byte(); err != nil {
		return err
	}
	dc, err := r.Byte()
	if err != nil {
		return err
	}
	s.DataCoding = NewDataCoding(dc)
	if s.SmDefaultMsgID, err = r.Byte(); err != nil {
		return err
	}
	smLength, err := r.Byte()
	if err != nil {
		return err
	}
	if s.ShortMessage, err = r.Bytes(int(smLength)); err != nil {
		return NewFieldError("sm_length", StatusInvalidMsgLength)
	}
	s.ShortMessage = append([]byte(nil), s.ShortMessage...)

	if s.TLVs, err = r.TlvList(); err != nil {
		return err
	}
	if _, hasPayload := s.TLVs.Get(TagMessagePayload); hasPayload && smLength > 0 {
		return NewFieldError("message_payload", StatusOptionalParameterNotAllowed)
	}
	return nil
}

// SubmitSmResp acknowledges a submit_sm, returning the SMSC-assigned
// message_id.
type SubmitSmResp struct {
	MessageID string
}

func (s *SubmitSmResp) CommandID() CommandID { return SubmitSmRespID }

func (s *SubmitSmResp) MarshalBinary() ([]byte, error) {
	if len(s.MessageID) > MessageIDLimit-1 {
		return nil, NewFieldError("message_id", StatusInvalidMessageID)
	}
	w := &writer{}
	w.CString(s.MessageID)
	return w.Body(), nil
}

func (s *SubmitSmResp) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	id, err := r.CString(MessageIDLimit)
	if err != nil {
		return err
	}
	s.MessageID = id
	return nil
}
