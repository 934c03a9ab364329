package pdu

// DataSm is the interactive-mode equivalent of submit_sm/deliver_sm: the
// message body lives entirely in the message_payload TLV, never in a
// short_message field.
type DataSm struct {
	ServiceType        string
	SourceAddr         Address
	DestAddr           Address
	EsmClass           EsmClass
	RegisteredDelivery RegisteredDelivery
	DataCoding         DataCoding
	TLVs               TlvList
}

func (d *DataSm) CommandID() CommandID { return DataSmID }

func (d *DataSm) MessagePayload() ([]byte, bool) {
	if t, ok := d.TLVs.Get(TagMessagePayload); ok {
		return t.Value, true
	}
	return nil, false
}

func (d *DataSm) MarshalBinary() ([]byte, error) {
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
	w.Byte(d.RegisteredDelivery.Byte())
	w.Byte(d.DataCoding.Byte())
	w.TlvList(d.TLVs)
	return w.Body(), nil
}

func (d *DataSm) UnmarshalBinary(data []byte) error {
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
	regDelivery, err := r.Byte()
	if err != nil {
		return err
	}
	d.RegisteredDelivery = ParseRegisteredDelivery(regDelivery)
	dc, err := r.Byte()
	if err != nil {
		return err
	}
	d.DataCoding = NewDataCoding(dc)
	if d.TLVs, err = r.TlvList(); err != nil {
		return err
	}
	return nil
}

// DataSmResp acknowledges a data_sm.
type DataSmResp struct {
	MessageID string
	TLVs      TlvList // may carry delivery_failure_reason, network_error_code, etc.
}

func (d *DataSmResp) CommandID() CommandID { return DataSmRespID }

func (d *DataSmResp) MarshalBinary() ([]byte, error) {
	if len(d.MessageID) > MessageIDLimit-1 {
		return nil, NewFieldError("message_id", StatusInvalidMessageID)
	}
	w := &writer{}
	w.CString(d.MessageID)
	w.TlvList(d.TLVs)
	return w.Body(), nil
}

func (d *DataSmResp) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	id, err := r.CString(MessageIDLimit)
	if err != nil {
		return err
	}
	d.MessageID = id
	if d.TLVs, err = r.TlvList(); err != nil {
		return err
	}
	return nil
}
