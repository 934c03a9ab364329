package pdu

import (
	"encoding/binary"
	"fmt"
)

// Tlv is an optional-parameter trailer field: a tag, a length, and a
// value of that length. Unknown tags are preserved verbatim so a PDU can
// be re-encoded without losing information the local registry doesn't
// recognize.
type Tlv struct {
	Tag    Tag
	Value  []byte
}

// Tag identifies a TLV's meaning. Values are the SMPP v3.4/v5.0 optional
// parameter tag register.
type Tag uint16

const (
	TagDestAddrSubunit          Tag = 0x0005
	TagDestNetworkType          Tag = 0x0006
	TagDestBearerType           Tag = 0x0007
	TagDestTelematicsID         Tag = 0x0008
	TagSourceAddrSubunit        Tag = 0x000D
	TagSourceNetworkType        Tag = 0x000E
	TagSourceBearerType         Tag = 0x000F
	TagSourceTelematicsID       Tag = 0x0010
	TagQosTimeToLive            Tag = 0x0017
	TagPayloadType              Tag = 0x0019
	TagAdditionalStatusInfoText Tag = 0x001D
	TagReceiptedMessageID       Tag = 0x001E
	TagMsMsgWaitFacilities      Tag = 0x0030
	TagPrivacyIndicator         Tag = 0x0201
	TagSourceSubaddress         Tag = 0x0202
	TagDestSubaddress           Tag = 0x0203
	TagUserMessageReference     Tag = 0x0204
	TagUserResponseCode         Tag = 0x0205
	TagSourcePort               Tag = 0x020A
	TagDestinationPort          Tag = 0x020B
	TagSarMsgRefNum              Tag = 0x020C
	TagLanguageIndicator        Tag = 0x020D
	TagSarTotalSegments         Tag = 0x020E
	TagSarSegmentSeqnum         Tag = 0x020F
	TagSCInterfaceVersion       Tag = 0x0210
	TagCallbackNumPresInd       Tag = 0x0302
	TagCallbackNumAtag          Tag = 0x0303
	TagNumberOfMessages         Tag = 0x0304
	TagCallbackNum              Tag = 0x0381
	TagDpfResult                Tag = 0x0420
	TagSetDpf                   Tag = 0x0421
	TagMsAvailabilityStatus     Tag = 0x0422
	TagNetworkErrorCode         Tag = 0x0423
	TagMessagePayload           Tag = 0x0424
	TagDeliveryFailureReason    Tag = 0x0425
	TagMoreMessagesToSend       Tag = 0x0426
	TagMessageState             Tag = 0x0427
	TagCongestionState          Tag = 0x0428 // v5.0 flow-control signal
	TagUssdServiceOp            Tag = 0x0501
	TagDisplayTime               Tag = 0x1201
	TagSmsSignal                 Tag = 0x1203
	TagMsValidity                Tag = 0x1204
	TagAlertOnMsgDelivery        Tag = 0x130C
	TagItsReplyType              Tag = 0x1380
	TagItsSessionInfo            Tag = 0x1383
	TagBroadcastChannelIndicator Tag = 0x0600
	TagBroadcastContentType      Tag = 0x0601
	TagBroadcastRepNum           Tag = 0x0603
	TagBroadcastFrequencyInterval Tag = 0x0604
	TagBroadcastAreaIdentifier   Tag = 0x0606
	TagBroadcastErrorStatus      Tag = 0x0607
	TagBroadcastAreaSuccess      Tag = 0x0608
	TagBroadcastEndTime          Tag = 0x0609
	TagBroadcastServiceGroup     Tag = 0x060A
)

func (t Tag) String() string {
	return fmt.Sprintf("0x%04x", uint16(t))
}

// Uint16 interprets the TLV value as a big-endian uint16. ok is false if
// the value is not exactly 2 octets.
func (t Tlv) Uint16() (v uint16, ok bool) {
	if len(t.Value) != 2 {
		return 0, false
	}
	return binary.BigEndian.Uint16(t.Value), true
}

// Uint32 interprets the TLV value as a big-endian uint32. ok is false if
// the value is not exactly 4 octets.
func (t Tlv) Uint32() (v uint32, ok bool) {
	if len(t.Value) != 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(t.Value), true
}

// Byte interprets the TLV value as a single octet. ok is false if the
// value is not exactly 1 octet.
func (t Tlv) Byte() (v byte, ok bool) {
	if len(t.Value) != 1 {
		return 0, false
	}
	return t.Value[0], true
}

// NewUint16Tlv builds a 2-octet TLV.
func NewUint16Tlv(tag Tag, v uint16) Tlv {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	return Tlv{Tag: tag, Value: buf}
}

// NewByteTlv builds a 1-octet TLV.
func NewByteTlv(tag Tag, v byte) Tlv {
	return Tlv{Tag: tag, Value: []byte{v}}
}

// TlvList is the ordered collection of optional parameters trailing a
// PDU body. Lookups return the first match; encoding preserves order.
type TlvList []Tlv

// Get returns the first TLV with the given tag.
func (l TlvList) Get(tag Tag) (Tlv, bool) {
	for _, t := range l {
		if t.Tag == tag {
			return t, true
		}
	}
	return Tlv{}, false
}

// Set replaces the first TLV with the given tag, or appends if absent.
func (l TlvList) Set(t Tlv) TlvList {
	for i, existing := range l {
		if existing.Tag == t.Tag {
			l[i] = t
			return l
		}
	}
	return append(l, t)
}
