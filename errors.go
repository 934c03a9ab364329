package smpp

import (
	"errors"
	"fmt"

	"github.com/smppgo/smpp/pdu"
)

// Kind classifies an Error into one of the five error families this
// library distinguishes.
type Kind int

const (
	// KindTransport covers I/O failures: dial errors, read/write errors,
	// and an unexpectedly closed connection.
	KindTransport Kind = iota
	// KindCodec covers frame/body decode failures: malformed lengths,
	// truncated C-strings, inconsistent sm_length, and similar.
	KindCodec
	// KindProtocol covers a response PDU carrying a non-OK command_status.
	KindProtocol
	// KindCorrelation covers a response whose command_id or sequence
	// number didn't match the outstanding request it was expected to
	// answer.
	KindCorrelation
	// KindState covers an operation attempted while the session isn't in
	// a state that permits it (e.g. submit_sm before bind completes).
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindCodec:
		return "codec"
	case KindProtocol:
		return "protocol"
	case KindCorrelation:
		return "correlation"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is the error type every exported Session/Connection operation
// returns on failure. It carries enough structure for a caller to branch
// on errors.As without parsing a message string.
type Error struct {
	Kind    Kind
	Status  pdu.CommandStatus // set when Kind == KindProtocol or KindCodec maps to a status
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("smpp: %s error: %v", e.Kind, e.Wrapped)
	}
	return fmt.Sprintf("smpp: %s error", e.Kind)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is supports errors.Is(err, ErrConnectionClosed) style sentinel checks
// by kind as well as by wrapped identity.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newTransportError(err error) error {
	return &Error{Kind: KindTransport, Wrapped: err}
}

func newCodecError(err error) error {
	e := &Error{Kind: KindCodec, Wrapped: err}
	var fe *pdu.FieldError
	if errors.As(err, &fe) {
		e.Status = fe.Status
	}
	return e
}

func newProtocolError(status pdu.CommandStatus) error {
	return &Error{Kind: KindProtocol, Status: status, Wrapped: pdu.NewStatusError(status)}
}

func newCorrelationError(expected, actual pdu.CommandID) error {
	return &Error{Kind: KindCorrelation, Wrapped: fmt.Errorf("expected response to %s, got %s", expected, actual)}
}

func newStateError(msg string) error {
	return &Error{Kind: KindState, Wrapped: errors.New(msg)}
}

// ErrConnectionClosed is a sentinel transport error for a cleanly closed
// connection: EOF with no partial frame buffered.
var ErrConnectionClosed = &Error{Kind: KindTransport, Wrapped: errors.New("connection closed")}

// ErrTimeout is a sentinel transport error for an operation that
// exceeded its deadline.
var ErrTimeout = &Error{Kind: KindTransport, Wrapped: errors.New("operation timeout")}
