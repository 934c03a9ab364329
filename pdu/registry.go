package pdu

import "fmt"

// Decoder constructs a fresh, zero-valued PDU body for a given
// command_id. Grounded on ajankovic/smpp/pdu's NewPDU factory switch,
// generalized here into a registry value so the set of known commands
// can vary by negotiated interface version.
type Decoder func() PDU

// Registry maps command_id to the PDU body type a given interface
// version recognizes, plus the set of TLV tags that version defines.
// Parameterized by interface_version; registries are upgrade-only
// (v3.3 -> v3.4 -> v5.0), never dropping a command or tag a lower
// version already recognized.
type Registry struct {
	version   InterfaceVersion
	decoders  map[CommandID]Decoder
	knownTags map[Tag]bool
}

// NewRegistry builds an empty registry for the given version.
func NewRegistry(version InterfaceVersion) *Registry {
	return &Registry{
		version:   version,
		decoders:  make(map[CommandID]Decoder),
		knownTags: make(map[Tag]bool),
	}
}

// Version reports the interface version this registry was built for.
func (r *Registry) Version() InterfaceVersion { return r.version }

// Register associates id with a body constructor.
func (r *Registry) Register(id CommandID, dec Decoder) {
	r.decoders[id] = dec
}

// RegisterTag marks tag as recognized by this version; unrecognized
// tags are still parsed generically (tag/length/value) but are not
// type-checked against a specific semantic meaning.
func (r *Registry) RegisterTag(tag Tag) {
	r.knownTags[tag] = true
}

// KnownTag reports whether tag is part of this version's TLV vocabulary.
func (r *Registry) KnownTag(tag Tag) bool {
	return r.knownTags[tag]
}

// Decode resolves header.CommandID to a concrete PDU type and unmarshals
// body into it. An unrecognized command_id yields an *UnknownPDU rather
// than an error, so a peer running a newer protocol revision doesn't
// break an older decoder.
func (r *Registry) Decode(header Header, body []byte) (PDU, error) {
	dec, ok := r.decoders[header.CommandID]
	if !ok {
		return &UnknownPDU{ID: header.CommandID, RawBody: body}, nil
	}
	p := dec()
	if err := p.UnmarshalBinary(body); err != nil {
		return nil, fmt.Errorf("pdu: decoding %s: %w", header.CommandID, err)
	}
	return p, nil
}

func registerCommon(r *Registry) {
	r.Register(GenericNackID, func() PDU { return &GenericNack{} })
	r.Register(BindReceiverID, func() PDU { return NewBindReceiver() })
	r.Register(BindReceiverRespID, func() PDU { return NewBindReceiverResp() })
	r.Register(BindTransmitterID, func() PDU { return NewBindTransmitter() })
	r.Register(BindTransmitterRespID, func() PDU { return NewBindTransmitterResp() })
	r.Register(QuerySmID, func() PDU { return &QuerySm{} })
	r.Register(QuerySmRespID, func() PDU { return &QuerySmResp{} })
	r.Register(SubmitSmID, func() PDU { return &SubmitSm{} })
	r.Register(SubmitSmRespID, func() PDU { return &SubmitSmResp{} })
	r.Register(DeliverSmID, func() PDU { return &DeliverSm{} })
	r.Register(DeliverSmRespID, func() PDU { return &DeliverSmResp{} })
	r.Register(UnbindID, func() PDU { return &Unbind{} })
	r.Register(UnbindRespID, func() PDU { return &UnbindResp{} })
	r.Register(ReplaceSmID, func() PDU { return &ReplaceSm{} })
	r.Register(ReplaceSmRespID, func() PDU { return &ReplaceSmResp{} })
	r.Register(CancelSmID, func() PDU { return &CancelSm{} })
	r.Register(CancelSmRespID, func() PDU { return &CancelSmResp{} })
	r.Register(OutbindID, func() PDU { return &Outbind{} })
	r.Register(EnquireLinkID, func() PDU { return &EnquireLink{} })
	r.Register(EnquireLinkRespID, func() PDU { return &EnquireLinkResp{} })
	r.Register(SubmitMultiID, func() PDU { return &SubmitMulti{} })
	r.Register(SubmitMultiRespID, func() PDU { return &SubmitMultiResp{} })
	r.Register(AlertNotificationID, func() PDU { return &AlertNotification{} })
	r.Register(DataSmID, func() PDU { return &DataSm{} })
	r.Register(DataSmRespID, func() PDU { return &DataSmResp{} })

	for _, tag := range []Tag{
		TagDestAddrSubunit, TagDestNetworkType, TagDestBearerType, TagDestTelematicsID,
		TagSourceAddrSubunit, TagSourceNetworkType, TagSourceBearerType, TagSourceTelematicsID,
		TagQosTimeToLive, TagPayloadType, TagAdditionalStatusInfoText, TagReceiptedMessageID,
		TagMsMsgWaitFacilities, TagPrivacyIndicator, TagSourceSubaddress, TagDestSubaddress,
		TagUserMessageReference, TagUserResponseCode, TagSourcePort, TagDestinationPort,
		TagSarMsgRefNum, TagLanguageIndicator, TagSarTotalSegments, TagSarSegmentSeqnum,
		TagCallbackNumPresInd, TagCallbackNumAtag, TagNumberOfMessages, TagCallbackNum,
		TagDpfResult, TagSetDpf, TagMsAvailabilityStatus, TagNetworkErrorCode,
		TagMessagePayload, TagDeliveryFailureReason, TagMoreMessagesToSend, TagMessageState,
		TagUssdServiceOp, TagDisplayTime, TagSmsSignal, TagMsValidity, TagAlertOnMsgDelivery,
		TagItsReplyType, TagItsSessionInfo,
	} {
		r.RegisterTag(tag)
	}
}

// DefaultRegistryV34 builds the registry for SMPP v3.4, the baseline
// protocol version.
func DefaultRegistryV34() *Registry {
	r := NewRegistry(InterfaceVersion34)
	r.Register(BindTransceiverID, func() PDU { return NewBindTransceiver() })
	r.Register(BindTransceiverRespID, func() PDU { return NewBindTransceiverResp() })
	registerCommon(r)
	return r
}

// DefaultRegistryV50 builds the registry for SMPP v5.0, layering the
// broadcast command family and its TLVs on top of v3.4. Registries are
// upgrade-only: a v5.0 registry recognizes everything a v3.4 registry
// does, never less.
func DefaultRegistryV50() *Registry {
	r := NewRegistry(InterfaceVersion50)
	r.Register(BindTransceiverID, func() PDU { return NewBindTransceiver() })
	r.Register(BindTransceiverRespID, func() PDU { return NewBindTransceiverResp() })
	registerCommon(r)
	r.Register(BroadcastSmID, func() PDU { return &BroadcastSm{} })
	r.Register(BroadcastSmRespID, func() PDU { return &BroadcastSmResp{} })
	r.Register(QueryBroadcastSmID, func() PDU { return &QueryBroadcastSm{} })
	r.Register(QueryBroadcastSmRespID, func() PDU { return &QueryBroadcastSmResp{} })
	r.Register(CancelBroadcastSmID, func() PDU { return &CancelBroadcastSm{} })
	r.Register(CancelBroadcastSmRespID, func() PDU { return &CancelBroadcastSmResp{} })
	r.RegisterTag(TagSCInterfaceVersion)
	r.RegisterTag(TagCongestionState)
	r.RegisterTag(TagBroadcastChannelIndicator)
	r.RegisterTag(TagBroadcastContentType)
	r.RegisterTag(TagBroadcastRepNum)
	r.RegisterTag(TagBroadcastFrequencyInterval)
	r.RegisterTag(TagBroadcastAreaIdentifier)
	r.RegisterTag(TagBroadcastErrorStatus)
	r.RegisterTag(TagBroadcastAreaSuccess)
	r.RegisterTag(TagBroadcastEndTime)
	r.RegisterTag(TagBroadcastServiceGroup)
	return r
}

// DefaultRegistry returns the standard registry for the given version.
// Only v3.4 and v5.0 are supported as named targets; v3.3 callers should
// use DefaultRegistryV34 and simply avoid transceiver/broadcast PDUs,
// since v3.3 is a strict subset with no additional wire differences this
// library's decoder needs to special-case.
func DefaultRegistry(version InterfaceVersion) (*Registry, error) {
	switch version {
	case InterfaceVersion33, InterfaceVersion34:
		return DefaultRegistryV34(), nil
	case InterfaceVersion50:
		return DefaultRegistryV50(), nil
	default:
		return nil, fmt.Errorf("pdu: unsupported interface version %s", version)
	}
}
