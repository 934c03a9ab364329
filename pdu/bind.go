package pdu

// bindBody is the common layout shared by bind_transmitter, bind_receiver,
// and bind_transceiver request bodies.
type bindBody struct {
	id               CommandID
	SystemID         string
	Password         string
	SystemType       string
	InterfaceVersion InterfaceVersion
	AddrTON          TypeOfNumber
	AddrNPI          NumericPlanIndicator
	AddressRange     string
}

func (b *bindBody) CommandID() CommandID { return b.id }

func (b *bindBody) MarshalBinary() ([]byte, error) {
	if len(b.SystemID) > SystemIDLimit-1 {
		return nil, NewFieldError("system_id", StatusInvalidSystemID)
	}
	if len(b.Password) > PasswordLimit-1 {
		return nil, NewFieldError("password", StatusInvalidPassword)
	}
	if len(b.SystemType) > SystemTypeLimit-1 {
		return nil, NewFieldError("system_type", StatusInvalidSystemTypeField)
	}
	if len(b.AddressRange) > AddressRangeLimit-1 {
		return nil, NewFieldError("address_range", StatusInvalidSourceAddress)
	}
	w := &writer{}
	w.CString(b.SystemID)
	w.CString(b.Password)
	w.CString(b.SystemType)
	w.Byte(byte(b.InterfaceVersion))
	w.Byte(byte(b.AddrTON))
	w.Byte(byte(b.AddrNPI))
	w.CString(b.AddressRange)
	return w.Body(), nil
}

func (b *bindBody) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if b.SystemID, err = r.CString(SystemIDLimit); err != nil {
		return err
	}
	if b.Password, err = r.CString(PasswordLimit); err != nil {
		return err
	}
	if b.SystemType, err = r.CString(SystemTypeLimit); err != nil {
		return err
	}
	version, err := r.Byte()
	if err != nil {
		return err
	}
	b.InterfaceVersion = InterfaceVersion(version)
	ton, err := r.Byte()
	if err != nil {
		return err
	}
	b.AddrTON = TypeOfNumber(ton)
	npi, err := r.Byte()
	if err != nil {
		return err
	}
	b.AddrNPI = NumericPlanIndicator(npi)
	if b.AddressRange, err = r.CString(AddressRangeLimit); err != nil {
		return err
	}
	return nil
}

// BindTransmitter requests a transmitter-only session.
type BindTransmitter struct{ bindBody }

// NewBindTransmitter constructs a BindTransmitter with its command_id set.
func NewBindTransmitter() *BindTransmitter {
	return &BindTransmitter{bindBody{id: BindTransmitterID}}
}

// BindReceiver requests a receiver-only session.
type BindReceiver struct{ bindBody }

func NewBindReceiver() *BindReceiver {
	return &BindReceiver{bindBody{id: BindReceiverID}}
}

// BindTransceiver requests a combined transmit/receive session (v3.4+).
type BindTransceiver struct{ bindBody }

func NewBindTransceiver() *BindTransceiver {
	return &BindTransceiver{bindBody{id: BindTransceiverID}}
}

// bindRespBody is the common layout of the three bind_*_resp bodies.
type bindRespBody struct {
	id               CommandID
	SystemID         string
	ScInterfaceVersion *InterfaceVersion // optional TLV, v5.0
}

func (b *bindRespBody) CommandID() CommandID { return b.id }

func (b *bindRespBody) MarshalBinary() ([]byte, error) {
	if len(b.SystemID) > SystemIDLimit-1 {
		return nil, NewFieldError("system_id", StatusInvalidSystemID)
	}
	w := &writer{}
	w.CString(b.SystemID)
	if b.ScInterfaceVersion != nil {
		w.Tlv(NewByteTlv(TagSCInterfaceVersion, byte(*b.ScInterfaceVersion)))
	}
	return w.Body(), nil
}

func (b *bindRespBody) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if b.SystemID, err = r.CString(SystemIDLimit); err != nil {
		return err
	}
	tlvs, err := r.TlvList()
	if err != nil {
		return err
	}
	if t, ok := tlvs.Get(TagSCInterfaceVersion); ok {
		if v, ok := t.Byte(); ok {
			version := InterfaceVersion(v)
			b.ScInterfaceVersion = &version
		}
	}
	return nil
}

type BindTransmitterResp struct{ bindRespBody }

func NewBindTransmitterResp() *BindTransmitterResp {
	return &BindTransmitterResp{bindRespBody{id: BindTransmitterRespID}}
}

type BindReceiverResp struct{ bindRespBody }

func NewBindReceiverResp() *BindReceiverResp {
	return &BindReceiverResp{bindRespBody{id: BindReceiverRespID}}
}

type BindTransceiverResp struct{ bindRespBody }

func NewBindTransceiverResp() *BindTransceiverResp {
	return &BindTransceiverResp{bindRespBody{id: BindTransceiverRespID}}
}

// Outbind is sent unsolicited by the SMSC to request the ESME initiate a
// bind, used in the v3.4/v5.0 outbind flow.
type Outbind struct {
	SystemID string
	Password string
}

func (o *Outbind) CommandID() CommandID { return OutbindID }

func (o *Outbind) MarshalBinary() ([]byte, error) {
	w := &writer{}
	w.CString(o.SystemID)
	w.CString(o.Password)
	return w.Body(), nil
}

func (o *Outbind) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if o.SystemID, err = r.CString(SystemIDLimit); err != nil {
		return err
	}
	if o.Password, err = r.CString(PasswordLimit); err != nil {
		return err
	}
	return nil
}
