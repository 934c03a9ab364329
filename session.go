package smpp

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"github.com/smppgo/smpp/flowcontrol"
	"github.com/smppgo/smpp/keepalive"
	"github.com/smppgo/smpp/metrics"
	"github.com/smppgo/smpp/pdu"
)

// BindState is the session lifecycle state: the
// OPEN -> BOUND_{TX,RX,TRX} -> UNBOUND -> CLOSED progression.
type BindState int

const (
	StateOpen BindState = iota
	StateBoundTransmitter
	StateBoundReceiver
	StateBoundTransceiver
	StateUnbinding
	StateClosed
)

func (s BindState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateBoundTransmitter:
		return "bound_tx"
	case StateBoundReceiver:
		return "bound_rx"
	case StateBoundTransceiver:
		return "bound_trx"
	case StateUnbinding:
		return "unbinding"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// CanSend reports whether the state permits originating submit_sm-family
// requests (transmitter or transceiver bind).
func (s BindState) CanSend() bool {
	return s == StateBoundTransmitter || s == StateBoundTransceiver
}

// CanReceive reports whether the state permits the SMSC pushing
// deliver_sm/alert_notification (receiver or transceiver bind).
func (s BindState) CanReceive() bool {
	return s == StateBoundReceiver || s == StateBoundTransceiver
}

const (
	minSequenceNumber = 1
	maxSequenceNumber = 0x7FFFFFFF // high bit reserved, and 0/0xFFFFFFFF excluded

	defaultRequestTimeout = 30 * time.Second
	inboundQueueCapacity  = 64
)

// Session is a single ESME connection to an SMSC: the bind state
// machine, sequence-number correlation, and the full set of high-level
// submit/query/cancel/broadcast operations. Grounded on
// ajankovic/smpp/session.go's state-transition and Send/correlation
// shape and on Ucell-first-smpp2/api.go's Client wrapper
// (NewClient/Connect/SendSMS/Disconnect), adapted to a synchronous,
// single-threaded session rather than ajankovic's goroutine-per-session
// dispatch.
type Session struct {
	mu sync.Mutex

	id      string
	conn    *Connection
	reg     *pdu.Registry
	version pdu.InterfaceVersion
	state   BindState

	seq uint32

	logger      Logger
	metrics     *metrics.Collector
	keepalive   *keepalive.Manager
	flowcontrol *flowcontrol.Manager

	requestTimeout time.Duration

	inbound chan inboundPDU
}

type inboundPDU struct {
	header pdu.Header
	body   pdu.PDU
}

// SessionOption customizes a Session at construction time.
type SessionOption func(*Session)

// WithLogger attaches a Logger; the default is a no-op logger.
func WithLogger(l Logger) SessionOption {
	return func(s *Session) { s.logger = defaultLogger(l) }
}

// WithMetrics attaches a metrics.Collector; nil (the default) disables
// metrics recording entirely.
func WithMetrics(c *metrics.Collector) SessionOption {
	return func(s *Session) { s.metrics = c }
}

// WithKeepAlive overrides the default keepalive.Config.
func WithKeepAlive(cfg keepalive.Config) SessionOption {
	return func(s *Session) { s.keepalive = keepalive.NewManager(cfg) }
}

// WithFlowControl overrides the default flowcontrol.Config.
func WithFlowControl(cfg flowcontrol.Config) SessionOption {
	return func(s *Session) { s.flowcontrol = flowcontrol.NewManager(cfg) }
}

// WithRequestTimeout overrides the default 30s request/response timeout.
func WithRequestTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.requestTimeout = d }
}

// WithInterfaceVersion selects the protocol version (and hence PDU
// registry) the session negotiates. Default is SMPP v3.4.
func WithInterfaceVersion(v pdu.InterfaceVersion) SessionOption {
	return func(s *Session) {
		s.version = v
		reg, err := pdu.DefaultRegistry(v)
		if err == nil {
			s.reg = reg
		}
	}
}

// NewSession wraps conn in an unbound (OPEN-state) Session.
func NewSession(conn *Connection, opts ...SessionOption) *Session {
	id, err := uuid.NewV4()
	idStr := ""
	if err == nil {
		idStr = id.String()
	}
	s := &Session{
		id:             idStr,
		conn:           conn,
		reg:            pdu.DefaultRegistryV34(),
		version:        pdu.InterfaceVersion34,
		state:          StateOpen,
		logger:         noopLogger{},
		keepalive:      keepalive.NewManager(keepalive.DefaultConfig()),
		flowcontrol:    flowcontrol.NewManager(flowcontrol.DefaultConfig()),
		requestTimeout: defaultRequestTimeout,
		inbound:        make(chan inboundPDU, inboundQueueCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session's generated identifier, for correlating log
// lines across a process running multiple sessions.
func (s *Session) ID() string { return s.id }

// State returns the current bind state.
func (s *Session) State() BindState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stats is a snapshot of the session's health and flow-control state.
type Stats struct {
	State            BindState
	InterfaceVersion pdu.InterfaceVersion
	KeepAlive        keepalive.Status
	FlowControl      flowcontrol.Statistics
}

// Stats returns a snapshot combining bind state, keep-alive counters,
// and flow-control counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		State:            s.state,
		InterfaceVersion: s.version,
		KeepAlive:        s.keepalive.Status(),
		FlowControl:      s.flowcontrol.Statistics(),
	}
}

// nextSequence returns the next sequence number to stamp on an
// outbound request: pre-incremented from 0, skipping the reserved
// values 0 and 0xFFFFFFFF (modeled here as wrapping within
// [1, 0x7FFFFFFF], which keeps bit 31 clear so a request's sequence
// number is never confusable with the all-ones reserved value).
func (s *Session) nextSequence() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.seq > maxSequenceNumber || s.seq < minSequenceNumber {
		s.seq = minSequenceNumber
	}
	return s.seq
}

// roundTrip writes a request and blocks until its correlated response
// arrives, transparently answering any enquire_link probe from the peer
// and queuing any other unsolicited request PDU (deliver_sm,
// alert_notification) onto the inbound queue for Receive to consume. A
// response with any other command_id or sequence number ends the wait
// with a KindCorrelation error.
func (s *Session) roundTrip(id pdu.CommandID, body pdu.PDU) (pdu.Header, pdu.PDU, error) {
	seq := s.nextSequence()
	if err := s.conn.SetDeadline(time.Now().Add(s.requestTimeout)); err != nil {
		return pdu.Header{}, nil, newTransportError(err)
	}
	if err := s.conn.WriteFrame(id, pdu.StatusOK, seq, body); err != nil {
		return pdu.Header{}, nil, err
	}
	s.keepalive.RecordActivity()
	if s.metrics != nil {
		s.metrics.RecordSent(id.String())
	}
	expectedResp := pdu.ResponseID(id)

	for {
		header, respBody, err := s.conn.ReadFrame(s.reg)
		if err != nil {
			return pdu.Header{}, nil, err
		}
		s.keepalive.RecordActivity()
		if s.metrics != nil {
			s.metrics.RecordReceived(header.CommandID.String())
		}

		switch {
		case header.CommandID == expectedResp && header.SequenceNumber == seq:
			if !header.CommandStatus.Ok() {
				return header, respBody, newProtocolError(header.CommandStatus)
			}
			return header, respBody, nil
		case header.CommandID == pdu.EnquireLinkID:
			if err := s.conn.WriteFrame(pdu.EnquireLinkRespID, pdu.StatusOK, header.SequenceNumber, &pdu.EnquireLinkResp{}); err != nil {
				return pdu.Header{}, nil, err
			}
		case header.CommandID == pdu.GenericNackID:
			return header, respBody, newProtocolError(header.CommandStatus)
		case pdu.IsResponse(header.CommandID):
			// A response that does not answer the outstanding request.
			s.logger.Warnf("session %s: unexpected response seq=%d id=%s", s.id, header.SequenceNumber, header.CommandID)
			return header, respBody, newCorrelationError(expectedResp, header.CommandID)
		default:
			s.enqueueInbound(header, respBody)
		}
	}
}

func (s *Session) enqueueInbound(header pdu.Header, body pdu.PDU) {
	select {
	case s.inbound <- inboundPDU{header: header, body: body}:
	default:
		s.logger.Warnf("session %s: inbound queue full, dropping %s", s.id, header.CommandID)
	}
}

// requireState returns a KindState error unless the session is
// currently in one of the allowed states.
func (s *Session) requireState(op string, allowed ...BindState) error {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	for _, a := range allowed {
		if state == a {
			return nil
		}
	}
	return newStateError(fmt.Sprintf("%s not permitted in state %s", op, state))
}

func (s *Session) setState(state BindState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Bind performs a bind_transmitter, bind_receiver, or bind_transceiver
// exchange depending on kind, and on success transitions the session
// into the matching bound state.
type BindKind int

const (
	BindTransmitter BindKind = iota
	BindReceiver
	BindTransceiver
)

// BindCredentials names the fields every bind variant shares.
type BindCredentials struct {
	SystemID     string
	Password     string
	SystemType   string
	AddrTON      pdu.TypeOfNumber
	AddrNPI      pdu.NumericPlanIndicator
	AddressRange string
}

// Bind negotiates a session of the given kind.
func (s *Session) Bind(kind BindKind, creds BindCredentials) error {
	if err := s.requireState("bind", StateOpen); err != nil {
		return err
	}

	var id pdu.CommandID
	var body pdu.PDU
	switch kind {
	case BindTransmitter:
		id = pdu.BindTransmitterID
		b := pdu.NewBindTransmitter()
		b.SystemID, b.Password, b.SystemType = creds.SystemID, creds.Password, creds.SystemType
		b.InterfaceVersion, b.AddrTON, b.AddrNPI, b.AddressRange = s.version, creds.AddrTON, creds.AddrNPI, creds.AddressRange
		body = b
	case BindReceiver:
		id = pdu.BindReceiverID
		b := pdu.NewBindReceiver()
		b.SystemID, b.Password, b.SystemType = creds.SystemID, creds.Password, creds.SystemType
		b.InterfaceVersion, b.AddrTON, b.AddrNPI, b.AddressRange = s.version, creds.AddrTON, creds.AddrNPI, creds.AddressRange
		body = b
	case BindTransceiver:
		id = pdu.BindTransceiverID
		b := pdu.NewBindTransceiver()
		b.SystemID, b.Password, b.SystemType = creds.SystemID, creds.Password, creds.SystemType
		b.InterfaceVersion, b.AddrTON, b.AddrNPI, b.AddressRange = s.version, creds.AddrTON, creds.AddrNPI, creds.AddressRange
		body = b
	default:
		return newStateError("unknown bind kind")
	}

	_, _, err := s.roundTrip(id, body)
	if err != nil {
		return err
	}

	switch kind {
	case BindTransmitter:
		s.setState(StateBoundTransmitter)
	case BindReceiver:
		s.setState(StateBoundReceiver)
	case BindTransceiver:
		s.setState(StateBoundTransceiver)
	}
	s.logger.Infof("session %s: bound as %s for system_id=%s", s.id, s.State(), creds.SystemID)
	return nil
}

// SubmitSm submits req, returning the SMSC-assigned message_id.
func (s *Session) SubmitSm(req *pdu.SubmitSm) (string, error) {
	if err := s.requireState("submit_sm", StateBoundTransmitter, StateBoundTransceiver); err != nil {
		return "", err
	}
	_, body, err := s.roundTrip(pdu.SubmitSmID, req)
	if err != nil {
		return "", err
	}
	resp, ok := body.(*pdu.SubmitSmResp)
	if !ok {
		return "", newCorrelationError(pdu.SubmitSmRespID, body.CommandID())
	}
	return resp.MessageID, nil
}

// DataSm submits req in interactive mode, returning the SMSC-assigned
// message_id.
func (s *Session) DataSm(req *pdu.DataSm) (string, error) {
	if err := s.requireState("data_sm", StateBoundTransmitter, StateBoundTransceiver); err != nil {
		return "", err
	}
	_, body, err := s.roundTrip(pdu.DataSmID, req)
	if err != nil {
		return "", err
	}
	resp, ok := body.(*pdu.DataSmResp)
	if !ok {
		return "", newCorrelationError(pdu.DataSmRespID, body.CommandID())
	}
	return resp.MessageID, nil
}

// SubmitMulti submits req to its list of destinations.
func (s *Session) SubmitMulti(req *pdu.SubmitMulti) (*pdu.SubmitMultiResp, error) {
	if err := s.requireState("submit_multi", StateBoundTransmitter, StateBoundTransceiver); err != nil {
		return nil, err
	}
	_, body, err := s.roundTrip(pdu.SubmitMultiID, req)
	if err != nil {
		return nil, err
	}
	resp, ok := body.(*pdu.SubmitMultiResp)
	if !ok {
		return nil, newCorrelationError(pdu.SubmitMultiRespID, body.CommandID())
	}
	return resp, nil
}

// QuerySm requests the delivery status of a previously submitted
// message.
func (s *Session) QuerySm(req *pdu.QuerySm) (*pdu.QuerySmResp, error) {
	if err := s.requireState("query_sm", StateBoundTransmitter, StateBoundTransceiver); err != nil {
		return nil, err
	}
	_, body, err := s.roundTrip(pdu.QuerySmID, req)
	if err != nil {
		return nil, err
	}
	resp, ok := body.(*pdu.QuerySmResp)
	if !ok {
		return nil, newCorrelationError(pdu.QuerySmRespID, body.CommandID())
	}
	return resp, nil
}

// CancelSm cancels a previously submitted, undelivered message.
func (s *Session) CancelSm(req *pdu.CancelSm) error {
	if err := s.requireState("cancel_sm", StateBoundTransmitter, StateBoundTransceiver); err != nil {
		return err
	}
	_, _, err := s.roundTrip(pdu.CancelSmID, req)
	return err
}

// ReplaceSm replaces the content of a previously submitted message.
func (s *Session) ReplaceSm(req *pdu.ReplaceSm) error {
	if err := s.requireState("replace_sm", StateBoundTransmitter, StateBoundTransceiver); err != nil {
		return err
	}
	_, _, err := s.roundTrip(pdu.ReplaceSmID, req)
	return err
}

// BroadcastSm submits req for cell-broadcast delivery (v5.0).
func (s *Session) BroadcastSm(req *pdu.BroadcastSm) (string, error) {
	if err := s.requireState("broadcast_sm", StateBoundTransmitter, StateBoundTransceiver); err != nil {
		return "", err
	}
	_, body, err := s.roundTrip(pdu.BroadcastSmID, req)
	if err != nil {
		return "", err
	}
	resp, ok := body.(*pdu.BroadcastSmResp)
	if !ok {
		return "", newCorrelationError(pdu.BroadcastSmRespID, body.CommandID())
	}
	return resp.MessageID, nil
}

// QueryBroadcastSm requests the status of a broadcast message (v5.0).
func (s *Session) QueryBroadcastSm(req *pdu.QueryBroadcastSm) (*pdu.QueryBroadcastSmResp, error) {
	if err := s.requireState("query_broadcast_sm", StateBoundTransmitter, StateBoundTransceiver); err != nil {
		return nil, err
	}
	_, body, err := s.roundTrip(pdu.QueryBroadcastSmID, req)
	if err != nil {
		return nil, err
	}
	resp, ok := body.(*pdu.QueryBroadcastSmResp)
	if !ok {
		return nil, newCorrelationError(pdu.QueryBroadcastSmRespID, body.CommandID())
	}
	return resp, nil
}

// CancelBroadcastSm cancels a previously submitted broadcast (v5.0).
func (s *Session) CancelBroadcastSm(req *pdu.CancelBroadcastSm) error {
	if err := s.requireState("cancel_broadcast_sm", StateBoundTransmitter, StateBoundTransceiver); err != nil {
		return err
	}
	_, _, err := s.roundTrip(pdu.CancelBroadcastSmID, req)
	return err
}

// Receive returns the next unsolicited request PDU pushed by the SMSC
// (deliver_sm, alert_notification). It first drains anything already
// queued by a prior round trip, then reads directly off the
// connection, transparently answering any enquire_link probe.
func (s *Session) Receive() (pdu.Header, pdu.PDU, error) {
	if err := s.requireState("receive", StateBoundReceiver, StateBoundTransceiver); err != nil {
		return pdu.Header{}, nil, err
	}
	select {
	case item := <-s.inbound:
		return item.header, item.body, nil
	default:
	}

	for {
		header, body, err := s.conn.ReadFrame(s.reg)
		if err != nil {
			return pdu.Header{}, nil, err
		}
		s.keepalive.RecordActivity()
		if s.metrics != nil {
			s.metrics.RecordReceived(header.CommandID.String())
		}
		if header.CommandID == pdu.EnquireLinkID {
			if err := s.conn.WriteFrame(pdu.EnquireLinkRespID, pdu.StatusOK, header.SequenceNumber, &pdu.EnquireLinkResp{}); err != nil {
				return pdu.Header{}, nil, err
			}
			continue
		}
		return header, body, nil
	}
}

// RespondDeliverSm acknowledges a deliver_sm previously returned by
// Receive.
func (s *Session) RespondDeliverSm(seq uint32, status pdu.CommandStatus, messageID string) error {
	resp := &pdu.DeliverSmResp{MessageID: messageID}
	return s.conn.WriteFrame(pdu.DeliverSmRespID, status, seq, resp)
}

// EnquireLink sends an explicit keep-alive probe and waits for its
// response. Most callers instead rely on Poll to send probes
// automatically on the keepalive.Manager's schedule.
func (s *Session) EnquireLink() error {
	s.keepalive.OnPingSent()
	_, _, err := s.roundTrip(pdu.EnquireLinkID, &pdu.EnquireLink{})
	if err != nil {
		s.keepalive.OnPingFailure()
		return err
	}
	s.keepalive.OnPingSuccess()
	return nil
}

// Poll is the cooperative maintenance tick a caller's event loop should
// invoke periodically: it sends a keep-alive probe when one is due and
// advances the flow-control manager's decay/recovery schedule. It never
// blocks waiting for unrelated traffic.
func (s *Session) Poll() error {
	s.flowcontrol.Tick()
	if s.keepalive.PingTimedOut() {
		s.keepalive.OnPingFailure()
	}
	if s.keepalive.IsConnectionFailed() {
		return newTransportError(fmt.Errorf("keep-alive failure threshold exceeded"))
	}
	if s.keepalive.ShouldPing() {
		return s.EnquireLink()
	}
	return nil
}

// Unbind gracefully ends the session: sends unbind, waits for
// unbind_resp, and transitions to StateClosed. The connection itself is
// left open; call Disconnect (or Close) to release it.
func (s *Session) Unbind() error {
	if err := s.requireState("unbind", StateBoundTransmitter, StateBoundReceiver, StateBoundTransceiver); err != nil {
		return err
	}
	s.setState(StateUnbinding)
	_, _, err := s.roundTrip(pdu.UnbindID, &pdu.Unbind{})
	if err != nil {
		return err
	}
	s.setState(StateClosed)
	return nil
}

// Disconnect unbinds if still bound, then closes the underlying
// connection unconditionally.
func (s *Session) Disconnect() error {
	if s.State() != StateClosed && s.State() != StateOpen {
		if err := s.Unbind(); err != nil {
			s.logger.Warnf("session %s: unbind during disconnect failed: %v", s.id, err)
		}
	}
	s.setState(StateClosed)
	return s.conn.Close()
}
