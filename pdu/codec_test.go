package pdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{CommandLength: 42, CommandID: SubmitSmID, CommandStatus: StatusOK, SequenceNumber: 7}
	buf := EncodeHeader(h)
	require.Len(t, buf, HeaderLength)

	decoded, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, h, decoded)
}

func TestCheckBounds(t *testing.T) {
	_, err := Check([]byte{0, 0, 0})
	assert.Error(t, err, "too few bytes to read command_length")

	tooShort := EncodeHeader(Header{CommandLength: 4})
	_, err = Check(tooShort)
	assert.Error(t, err, "below minimum command_length")

	tooLong := EncodeHeader(Header{CommandLength: MaxCommandLength + 1})
	_, err = Check(tooLong)
	assert.Error(t, err, "above maximum command_length")

	ok := EncodeHeader(Header{CommandLength: HeaderLength})
	length, err := Check(ok)
	require.NoError(t, err)
	assert.Equal(t, uint32(HeaderLength), length)
}

func TestSubmitSmRoundTrip(t *testing.T) {
	orig := &SubmitSm{
		ServiceType: "",
		SourceAddr:  Address{TON: TONInternational, NPI: NPIISDN, Number: "15551234567"},
		DestAddr:    Address{TON: TONInternational, NPI: NPIISDN, Number: "15557654321"},
		EsmClass:    EsmClass{Mode: ModeDefault, Type: TypeNormal},
		DataCoding:  DataCodingDefault,
		ShortMessage: []byte("hello world"),
	}
	encoded, err := orig.MarshalBinary()
	require.NoError(t, err)

	var decoded SubmitSm
	require.NoError(t, decoded.UnmarshalBinary(encoded))

	assert.Equal(t, orig.SourceAddr, decoded.SourceAddr)
	assert.Equal(t, orig.DestAddr, decoded.DestAddr)
	assert.Equal(t, orig.ShortMessage, decoded.ShortMessage)
	assert.Equal(t, orig.EsmClass, decoded.EsmClass)
}

func TestSubmitSmMutualExclusion(t *testing.T) {
	s := &SubmitSm{
		DestAddr:     Address{Number: "123"},
		ShortMessage: []byte("short"),
		TLVs:         TlvList{{Tag: TagMessagePayload, Value: []byte("long payload")}},
	}
	_, err := s.MarshalBinary()
	assert.Error(t, err, "short_message and message_payload are mutually exclusive")
}

func TestSubmitSmMessagePayloadFallback(t *testing.T) {
	s := &SubmitSm{
		TLVs: TlvList{{Tag: TagMessagePayload, Value: []byte("via tlv")}},
	}
	payload, ok := s.MessagePayload()
	require.True(t, ok)
	assert.Equal(t, "via tlv", string(payload))
}

func TestRegistryUnknownCommandIsOpaque(t *testing.T) {
	reg := DefaultRegistryV34()
	body, err := reg.Decode(Header{CommandID: CommandID(0x12345678)}, []byte{1, 2, 3})
	require.NoError(t, err)
	unknown, ok := body.(*UnknownPDU)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, unknown.RawBody)
}

func TestRegistryV50HasBroadcastFamily(t *testing.T) {
	reg := DefaultRegistryV50()
	_, err := reg.Decode(Header{CommandID: BroadcastSmID}, []byte{0, 0, 0})
	assert.Error(t, err, "malformed body should still error, but command_id must be recognized (not UnknownPDU)")
}

func TestTlvListSetReplacesExisting(t *testing.T) {
	list := TlvList{NewByteTlv(TagMessageState, 1)}
	list = list.Set(NewByteTlv(TagMessageState, 2))
	require.Len(t, list, 1)
	v, ok := list.Get(TagMessageState)
	require.True(t, ok)
	b, _ := v.Byte()
	assert.Equal(t, byte(2), b)
}

func TestSmppDateTimeRoundTrip(t *testing.T) {
	dt := SmppDateTime{Year: 26, Month: 7, Day: 30, Hour: 12, Minute: 0, Second: 0, Tenths: 0, UTCOffsetQuarterHours: 0, Relation: '+'}
	s := dt.String()
	parsed, err := ParseSmppDateTime(s)
	require.NoError(t, err)
	assert.Equal(t, dt, parsed)
}

func TestSmppDateTimeEmpty(t *testing.T) {
	parsed, err := ParseSmppDateTime("")
	require.NoError(t, err)
	assert.True(t, parsed.Empty())
}

func TestEsmClassValidation(t *testing.T) {
	invalid := EsmClass{Mode: ModeDefault, Type: TypeStoreAndForward}
	assert.Error(t, invalid.Validate())

	valid := EsmClass{Mode: ModeStoreAndForward, Type: TypeStoreAndForward}
	assert.NoError(t, valid.Validate())
}

func TestFieldErrorsCarryCommandStatus(t *testing.T) {
	_, err := Check(EncodeHeader(Header{CommandLength: MaxCommandLength + 1}))
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StatusInvalidCommandLength, fe.Status)

	s := &SubmitSm{
		DestAddr:     Address{Number: "123"},
		ShortMessage: []byte("short"),
		TLVs:         TlvList{{Tag: TagMessagePayload, Value: []byte("long payload")}},
	}
	_, err = s.MarshalBinary()
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StatusOptionalParameterNotAllowed, fe.Status)

	bad := &SubmitSm{SourceAddr: Address{TON: TONInternational, Number: "not-a-number"}}
	_, err = bad.MarshalBinary()
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StatusInvalidSourceAddressTON, fe.Status)
}

func TestAddressValidation(t *testing.T) {
	intl := Address{TON: TONInternational, Number: "15551234567"}
	assert.NoError(t, intl.Validate())

	bad := Address{TON: TONInternational, Number: "not-a-number"}
	assert.Error(t, bad.Validate())

	alpha := Address{TON: TONAlphanumeric, Number: "ACME"}
	assert.NoError(t, alpha.Validate())
}
