package smpp

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smppgo/smpp/pdu"
)

// fakeSMSC answers bind_transceiver, submit_sm, enquire_link, and
// unbind on the server side of a net.Pipe, enough to drive Session
// through a full bind -> submit -> unbind lifecycle in-process without
// a real SMSC.
func fakeSMSC(t *testing.T, server net.Conn, messageID string) {
	conn := NewConnection(server)
	reg := pdu.DefaultRegistryV34()
	defer conn.Close()

	for {
		header, body, err := conn.ReadFrame(reg)
		if err != nil {
			return
		}
		switch header.CommandID {
		case pdu.BindTransceiverID:
			resp := pdu.NewBindTransceiverResp()
			resp.SystemID = "smsc-sim"
			if err := conn.WriteFrame(pdu.BindTransceiverRespID, pdu.StatusOK, header.SequenceNumber, resp); err != nil {
				return
			}
		case pdu.SubmitSmID:
			_ = body.(*pdu.SubmitSm)
			if err := conn.WriteFrame(pdu.SubmitSmRespID, pdu.StatusOK, header.SequenceNumber, &pdu.SubmitSmResp{MessageID: messageID}); err != nil {
				return
			}
		case pdu.EnquireLinkID:
			if err := conn.WriteFrame(pdu.EnquireLinkRespID, pdu.StatusOK, header.SequenceNumber, &pdu.EnquireLinkResp{}); err != nil {
				return
			}
		case pdu.UnbindID:
			if err := conn.WriteFrame(pdu.UnbindRespID, pdu.StatusOK, header.SequenceNumber, &pdu.UnbindResp{}); err != nil {
				return
			}
		case pdu.QuerySmID:
			resp := &pdu.QuerySmResp{MessageID: messageID, MessageState: pdu.MessageStateDelivered}
			if err := conn.WriteFrame(pdu.QuerySmRespID, pdu.StatusOK, header.SequenceNumber, resp); err != nil {
				return
			}
		case pdu.CancelSmID:
			if err := conn.WriteFrame(pdu.CancelSmRespID, pdu.StatusOK, header.SequenceNumber, &pdu.CancelSmResp{}); err != nil {
				return
			}
		case pdu.ReplaceSmID:
			if err := conn.WriteFrame(pdu.ReplaceSmRespID, pdu.StatusOK, header.SequenceNumber, &pdu.ReplaceSmResp{}); err != nil {
				return
			}
		case pdu.SubmitMultiID:
			resp := &pdu.SubmitMultiResp{MessageID: messageID}
			if err := conn.WriteFrame(pdu.SubmitMultiRespID, pdu.StatusOK, header.SequenceNumber, resp); err != nil {
				return
			}
		case pdu.BroadcastSmID:
			resp := &pdu.BroadcastSmResp{MessageID: messageID}
			if err := conn.WriteFrame(pdu.BroadcastSmRespID, pdu.StatusOK, header.SequenceNumber, resp); err != nil {
				return
			}
		default:
			return
		}
	}
}

func newTestSession(t *testing.T, opts ...SessionOption) (*Session, net.Conn) {
	client, server := net.Pipe()
	go fakeSMSC(t, server, "msg-001")
	sess := NewSession(NewConnection(client), append([]SessionOption{WithRequestTimeout(2 * time.Second)}, opts...)...)
	t.Cleanup(func() { _ = client.Close() })
	return sess, server
}

func TestSessionBindSubmitUnbind(t *testing.T) {
	sess, _ := newTestSession(t)

	require.Equal(t, StateOpen, sess.State())

	err := sess.Bind(BindTransceiver, BindCredentials{SystemID: "esme1", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, StateBoundTransceiver, sess.State())

	id, err := sess.SubmitSm(&pdu.SubmitSm{
		SourceAddr:   pdu.Address{Number: "1000"},
		DestAddr:     pdu.Address{Number: "2000"},
		ShortMessage: []byte("hi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-001", id)

	require.NoError(t, sess.Unbind())
	assert.Equal(t, StateClosed, sess.State())
}

func TestSessionSubmitBeforeBindIsStateError(t *testing.T) {
	sess, _ := newTestSession(t)
	_, err := sess.SubmitSm(&pdu.SubmitSm{})
	require.Error(t, err)
	var smppErr *Error
	require.ErrorAs(t, err, &smppErr)
	assert.Equal(t, KindState, smppErr.Kind)
}

func TestSessionEnquireLink(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Bind(BindTransceiver, BindCredentials{SystemID: "esme1", Password: "secret"}))
	require.NoError(t, sess.EnquireLink())
	assert.EqualValues(t, 1, sess.Stats().KeepAlive.TotalPingsSucceeded)
}

func TestSessionSequenceNumbersIncrease(t *testing.T) {
	sess, _ := newTestSession(t)
	first := sess.nextSequence()
	second := sess.nextSequence()
	assert.Equal(t, first+1, second)
	assert.NotZero(t, first)
}
