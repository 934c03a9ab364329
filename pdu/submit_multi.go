package pdu

// DestinationFlag distinguishes the two kinds of entry submit_multi's
// destination list may carry.
type DestinationFlag byte

const (
	DestFlagSMEAddress        DestinationFlag = 1
	DestFlagDistributionList DestinationFlag = 2
)

// MultiDestination is one entry of submit_multi's destination list: a
// direct SME address or a reference to a pre-defined distribution list.
type MultiDestination struct {
	Flag             DestinationFlag
	Address          Address // used when Flag == DestFlagSMEAddress
	DistributionList string  // used when Flag == DestFlagDistributionList
}

func (m MultiDestination) marshal(w *writer) error {
	w.Byte(byte(m.Flag))
	switch m.Flag {
	case DestFlagSMEAddress:
		w.Byte(byte(m.Address.TON))
		w.Byte(byte(m.Address.NPI))
		w.CString(m.Address.Number)
	case DestFlagDistributionList:
		w.CString(m.DistributionList)
	default:
		return NewFieldError("dest_flag", StatusInvalidDestinationFlag)
	}
	return nil
}

func unmarshalMultiDestination(r *reader) (MultiDestination, error) {
	flagByte, err := r.Byte()
	if err != nil {
		return MultiDestination{}, err
	}
	flag := DestinationFlag(flagByte)
	switch flag {
	case DestFlagSMEAddress:
		ton, err := r.Byte()
		if err != nil {
			return MultiDestination{}, err
		}
		npi, err := r.Byte()
		if err != nil {
			return MultiDestination{}, err
		}
		num, err := r.CString(PhoneNumberLimit)
		if err != nil {
			return MultiDestination{}, err
		}
		return MultiDestination{Flag: flag, Address: Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num}}, nil
	case DestFlagDistributionList:
		name, err := r.CString(AddressRangeLimit)
		if err != nil {
			return MultiDestination{}, err
		}
		return MultiDestination{Flag: flag, DistributionList: name}, nil
	default:
		return MultiDestination{}, NewFieldError("dest_flag", StatusInvalidDestinationFlag)
	}
}

// SubmitMulti submits one message to a list of destinations in a single
// request.
type SubmitMulti struct {
	ServiceType          string
	SourceAddr           Address
	Destinations         []MultiDestination
	EsmClass             EsmClass
	ProtocolID           byte
	PriorityFlag         PriorityFlag
	ScheduleDeliveryTime SmppDateTime
	ValidityPeriod       SmppDateTime
	RegisteredDelivery   RegisteredDelivery
	ReplaceIfPresentFlag byte
	DataCoding           DataCoding
	SmDefaultMsgID       byte
	ShortMessage         []byte
	TLVs                 TlvList
}

func (s *SubmitMulti) CommandID() CommandID { return SubmitMultiID }

func (s *SubmitMulti) MessagePayload() ([]byte, bool) {
	if t, ok := s.TLVs.Get(TagMessagePayload); ok {
		return t.Value, true
	}
	if len(s.ShortMessage) > 0 {
		return s.ShortMessage, true
	}
	return nil, false
}

func (s *SubmitMulti) MarshalBinary() ([]byte, error) {
	if len(s.Destinations) > 255 {
		return nil, NewFieldError("number_of_dests", StatusInvalidNumberOfDestinations)
	}
	if err := s.SourceAddr.ValidateSource(); err != nil {
		return nil, err
	}
	w := &writer{}
	w.CString(s.ServiceType)
	w.Byte(byte(s.SourceAddr.TON))
	w.Byte(byte(s.SourceAddr.NPI))
	w.CString(s.SourceAddr.Number)
	w.Byte(byte(len(s.Destinations)))
	for _, d := range s.Destinations {
		if err := d.marshal(w); err != nil {
			return nil, err
		}
	}
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

func (s *SubmitMulti) UnmarshalBinary(data []byte) error {
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

	count, err := r.Byte()
	if err != nil {
		return err
	}
	s.Destinations = make([]MultiDestination, 0, count)
	for i := 0; i < int(count); i++ {
		dest, err := unmarshalMultiDestination(r)
		if err != nil {
			return err
		}
		s.Destinations = append(s.Destinations, dest)
	}

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
		return err
	}
	validity, err := r.CString(ScheduleTimeLimit)
	if err != nil {
		return err
	}
	if s.ValidityPeriod, err = ParseSmppDateTime(validity); err != nil {
		return err
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
	return nil
}

// UnsuccessfulDelivery reports one destination submit_multi could not
// queue the message for.
type UnsuccessfulDelivery struct {
	Address Address
	Error   CommandStatus
}

// SubmitMultiResp reports the message_id plus any destinations that
// failed.
type SubmitMultiResp struct {
	MessageID     string
	Unsuccessful []UnsuccessfulDelivery
}

func (s *SubmitMultiResp) CommandID() CommandID { return SubmitMultiRespID }

func (s *SubmitMultiResp) MarshalBinary() ([]byte, error) {
	if len(s.Unsuccessful) > 255 {
		return nil, NewFieldError("no_unsuccess", StatusInvalidNumberOfDestinations)
	}
	w := &writer{}
	w.CString(s.MessageID)
	w.Byte(byte(len(s.Unsuccessful)))
	for _, u := range s.Unsuccessful {
		w.Byte(byte(u.Address.TON))
		w.Byte(byte(u.Address.NPI))
		w.CString(u.Address.Number)
		w.Uint32(uint32(u.Error))
	}
	return w.Body(), nil
}

func (s *SubmitMultiResp) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	var err error
	if s.MessageID, err = r.CString(MessageIDLimit); err != nil {
		return err
	}
	count, err := r.Byte()
	if err != nil {
		return err
	}
	s.Unsuccessful = make([]UnsuccessfulDelivery, 0, count)
	for i := 0; i < int(count); i++ {
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
		status, err := r.Uint32()
		if err != nil {
			return err
		}
		s.Unsuccessful = append(s.Unsuccessful, UnsuccessfulDelivery{
			Address: Address{TON: TypeOfNumber(ton), NPI: NumericPlanIndicator(npi), Number: num},
			Error:   CommandStatus(status),
		})
	}
	return nil
}
