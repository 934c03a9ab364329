package pdu

// CommandID identifies the kind of PDU carried by a frame. Values and
// naming follow the SMPP v3.4/v5.0 command_id register.
type CommandID uint32

const (
	GenericNackID CommandID = 0x80000000

	BindReceiverID       CommandID = 0x00000001
	BindReceiverRespID   CommandID = 0x80000001
	BindTransmitterID     CommandID = 0x00000002
	BindTransmitterRespID CommandID = 0x80000002
	QuerySmID             CommandID = 0x00000003
	QuerySmRespID         CommandID = 0x80000003
	SubmitSmID            CommandID = 0x00000004
	SubmitSmRespID        CommandID = 0x80000004
	DeliverSmID           CommandID = 0x00000005
	DeliverSmRespID       CommandID = 0x80000005
	UnbindID              CommandID = 0x00000006
	UnbindRespID          CommandID = 0x80000006
	ReplaceSmID           CommandID = 0x00000007
	ReplaceSmRespID       CommandID = 0x80000007
	CancelSmID            CommandID = 0x00000008
	CancelSmRespID        CommandID = 0x80000008
	BindTransceiverID     CommandID = 0x00000009
	BindTransceiverRespID CommandID = 0x80000009
	OutbindID             CommandID = 0x0000000B

	EnquireLinkID     CommandID = 0x00000015
	EnquireLinkRespID CommandID = 0x80000015

	SubmitMultiID     CommandID = 0x00000021
	SubmitMultiRespID CommandID = 0x80000021

	AlertNotificationID CommandID = 0x00000102

	DataSmID     CommandID = 0x00000103
	DataSmRespID CommandID = 0x80000103

	// v5.0 broadcast extensions.
	BroadcastSmID          CommandID = 0x00000111
	BroadcastSmRespID      CommandID = 0x80000111
	QueryBroadcastSmID     CommandID = 0x00000112
	QueryBroadcastSmRespID CommandID = 0x80000112
	CancelBroadcastSmID     CommandID = 0x00000113
	CancelBroadcastSmRespID CommandID = 0x80000113
)

var commandIDNames = map[CommandID]string{
	GenericNackID:           "generic_nack",
	BindReceiverID:          "bind_receiver",
	BindReceiverRespID:      "bind_receiver_resp",
	BindTransmitterID:       "bind_transmitter",
	BindTransmitterRespID:   "bind_transmitter_resp",
	QuerySmID:               "query_sm",
	QuerySmRespID:           "query_sm_resp",
	SubmitSmID:              "submit_sm",
	SubmitSmRespID:          "submit_sm_resp",
	DeliverSmID:             "deliver_sm",
	DeliverSmRespID:         "deliver_sm_resp",
	UnbindID:                "unbind",
	UnbindRespID:            "unbind_resp",
	ReplaceSmID:             "replace_sm",
	ReplaceSmRespID:         "replace_sm_resp",
	CancelSmID:              "cancel_sm",
	CancelSmRespID:          "cancel_sm_resp",
	BindTransceiverID:       "bind_transceiver",
	BindTransceiverRespID:   "bind_transceiver_resp",
	OutbindID:               "outbind",
	EnquireLinkID:           "enquire_link",
	EnquireLinkRespID:       "enquire_link_resp",
	SubmitMultiID:           "submit_multi",
	SubmitMultiRespID:       "submit_multi_resp",
	AlertNotificationID:     "alert_notification",
	DataSmID:                "data_sm",
	DataSmRespID:            "data_sm_resp",
	BroadcastSmID:           "broadcast_sm",
	BroadcastSmRespID:       "broadcast_sm_resp",
	QueryBroadcastSmID:      "query_broadcast_sm",
	QueryBroadcastSmRespID:  "query_broadcast_sm_resp",
	CancelBroadcastSmID:     "cancel_broadcast_sm",
	CancelBroadcastSmRespID: "cancel_broadcast_sm_resp",
}

func (c CommandID) String() string {
	if name, ok := commandIDNames[c]; ok {
		return name
	}
	return "unknown"
}
