package smpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smppgo/smpp/pdu"
)

func boundSession(t *testing.T, opts ...SessionOption) *Session {
	sess, _ := newTestSession(t, opts...)
	require.NoError(t, sess.Bind(BindTransceiver, BindCredentials{SystemID: "esme1", Password: "secret"}))
	return sess
}

func TestSessionQuerySm(t *testing.T) {
	sess := boundSession(t)
	resp, err := sess.QuerySm(&pdu.QuerySm{MessageID: "msg-001", SourceAddr: pdu.Address{Number: "1000"}})
	require.NoError(t, err)
	assert.Equal(t, "msg-001", resp.MessageID)
	assert.Equal(t, pdu.MessageStateDelivered, resp.MessageState)
}

func TestSessionCancelSm(t *testing.T) {
	sess := boundSession(t)
	err := sess.CancelSm(&pdu.CancelSm{MessageID: "msg-001", SourceAddr: pdu.Address{Number: "1000"}, DestAddr: pdu.Address{Number: "2000"}})
	require.NoError(t, err)
}

func TestSessionReplaceSm(t *testing.T) {
	sess := boundSession(t)
	err := sess.ReplaceSm(&pdu.ReplaceSm{MessageID: "msg-001", SourceAddr: pdu.Address{Number: "1000"}, ShortMessage: []byte("updated")})
	require.NoError(t, err)
}

func TestSessionSubmitMulti(t *testing.T) {
	sess := boundSession(t)
	resp, err := sess.SubmitMulti(&pdu.SubmitMulti{
		SourceAddr: pdu.Address{Number: "1000"},
		Destinations: []pdu.MultiDestination{
			{Flag: pdu.DestFlagSMEAddress, Address: pdu.Address{Number: "2000"}},
			{Flag: pdu.DestFlagSMEAddress, Address: pdu.Address{Number: "3000"}},
		},
		ShortMessage: []byte("hi all"),
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-001", resp.MessageID)
	assert.Empty(t, resp.Unsuccessful)
}

func TestSessionBroadcastSm(t *testing.T) {
	sess := boundSession(t, WithInterfaceVersion(pdu.InterfaceVersion50))
	id, err := sess.BroadcastSm(&pdu.BroadcastSm{
		SourceAddr:              pdu.Address{Number: "1000"},
		BroadcastAreaIdentifier: []byte{0x00},
		BroadcastRepNum:         1,
		BroadcastFrequencyInterval: 3600,
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-001", id)
}

func TestSessionQuerySmBeforeBindIsStateError(t *testing.T) {
	sess, _ := newTestSession(t)
	_, err := sess.QuerySm(&pdu.QuerySm{})
	require.Error(t, err)
	var smppErr *Error
	require.ErrorAs(t, err, &smppErr)
	assert.Equal(t, KindState, smppErr.Kind)
}
