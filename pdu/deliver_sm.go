package pdu

// DeliverSm is pushed by the SMSC to deliver a mobile-originated message
// or a delivery receipt to the ESME. Its body grammar mirrors submit_sm.
type DeliverSm struct {
	ServiceType          string
	SourceAddr           Address
	DestAddr             Address
	EsmClass             EsmClass
	ProtocolID           byte
	PriorityFlag         PriorityFlag
	RegisteredDelivery   RegisteredDelivery
	DataCoding           DataCoding
	ShortMessage         []byte
	TLVs                 TlvList
}

func (d *DeliverSm) CommandID() CommandID { return DeliverSmID }

func (d *DeliverSm) MessagePayload() ([]byte, bool) {
	if t, ok := d.TLVs.Get(TagMessagePayload); ok {
		return t.Value, true
	}
	if len(d.ShortMessage) > 0 {
		return d.ShortMessage, true
	}
	return nil, false
}

func (d *DeliverSm) MarshalBinary() ([]byte, error) {
	if _, hasPayload := d.TLVs.Get(TagMessagePayload); hasPayload && len(d.ShortMessage) > 0 {
		return nil, NewFieldError("message_payload", StatusOptionalParameterNotAllowed)
	}
	if err := d.EsmClass.Validate(); err != nil {
		return nil, err
	}
	if err := d.SourceAddr.ValidateSource(); err != nil {
		return nil, err
	}
	if err := d.DestAddr.ValidateDest(); err != nil {
		return nil, err
	}
	w := &writer{}
	w.CString(d.ServiceType)
	w.Byte(byte(d.SourceAddr.TON))
	w.Byte(byte(d.SourceAddr.NPI))
	w.CString(d.SourceAddr.Number)
	w.Byte(byte(d.DestAddr.TON))
	w.Byte(byte(d.DestAddr.NPI))
	w.CString(d.DestAddr.Number)
	w.Byte(d.EsmClass.Byte())
	w.Byte(d.ProtocolID)
	w.Byte(byte(d.PriorityFlag))
	w.CString("") // schedule_delivery_time, unused on deliver_sm
	w.CString("") // validity_period, unused on deliver_sm
	w.Byte(d.RegisteredDelivery.Byte())
	w.Byte(0) // replace_if_present_flag, unused on deliver_sm
	w.Byte(d.DataCoding.Byte())
	w.Byte(0) // sm_default_msg_id, unused on deliver_sm
	w.Byte(byte(len(d.ShortMessage)))
	w.Bytes(d.ShortMessage)
	w.TlvList(d.TLVs)
	return w.Body(), nil
}

func (d *DeliverSm) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if d.ServiceType, err = r.CString(ServiceTypeLimit); err != nil {
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
	d.SourceAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}

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
	d.DestAddr = Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}

	esm, err := r.Byte()
	if err != nil {
		return err
	}
	d.EsmClass = ParseEsmClass(esm)
	if d.ProtocolID, err = r.Byte(); err != nil {
		return err
	}
	priority, err := r.Byte()
	if err != nil {
		return err
	}
	d.PriorityFlag = PriorityFlag(priority)

	if _, err = r.CString(ScheduleTimeLimit); err != nil { // schedule_delivery_time, ignored
		return err
	}
	if _, err = r.CString(ScheduleTimeLimit); err != nil { // validity_period, ignored
		return err
	}
	regDelivery, err := r.Byte()
	if err != nil {
		return err
	}
	d.RegisteredDelivery = ParseRegisteredDelivery(regDelivery)
	if _, err = r.Byte(); err != nil { // replace_if_present_flag, ignored
		return err
	}
	dc, err := r.Byte()
	if err != nil {
		return err
	}
	d.DataCoding = NewDataCoding(dc)
	if _, err = r.Byte(); err != nil { // sm_default_msg_id, ignored
		return err
	}
	smLength, err := r.Byte()
	if err != nil {
		return err
	}
	if d.ShortMessage, err = r.Bytes(int(smLength)); err != nil {
		return NewFieldError("sm_length", StatusInvalidMsgLength)
	}
	d.ShortMessage = append([]byte(nil), d.ShortMessage...)

	if d.TLVs, err = r.TlvList(); err != nil {
		return err
	}
	return nil
}

// DeliverSmResp acknowledges a deliver_sm. message_id is conventionally
// empty in response to deliver_sm.
type DeliverSmResp struct {
	MessageID string
}

func (d *DeliverSmResp) CommandID() CommandID { return DeliverSmRespID }

func (d *DeliverSmResp) MarshalBinary() ([]byte, error) {
	w := &writer{}
	w.CString(d.MessageID)
	return w.Body(), nil
}

func (d *DeliverSmResp) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	id, err := r.CString(MessageIDLimit)
	if err != nil {
		return err
	}
	d.MessageID = id
	return nil
}
