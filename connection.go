package smpp

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/smppgo/smpp/pdu"
)

// initialBufferSize is the read buffer's starting capacity.
const initialBufferSize = 4 * 1024

// Connection wraps a bidirectional byte stream (ordinarily a net.Conn)
// with SMPP frame-level read/write operations. It owns a growable read
// buffer and leaves PDU body interpretation to a Registry. Grounded on
// Ucell-first-smpp2/connection.go's dial/TLS/timeout handling,
// generalized to a buffered parse-then-read discipline instead of
// Ucell's read-exactly-once-per-call shape.
type Connection struct {
	conn net.Conn

	dialTimeout time.Duration

	readBuf []byte // unparsed bytes read so far
	scratch []byte // temporary read-into buffer
}

// Dial opens a plain TCP connection to host:port.
func Dial(host string, port int, dialTimeout time.Duration) (*Connection, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, newTransportError(fmt.Errorf("dialing %s: %w", addr, err))
	}
	return newConnection(conn, dialTimeout), nil
}

// DialTLS opens a TLS connection to host:port.
func DialTLS(host string, port int, dialTimeout time.Duration, tlsConfig *tls.Config) (*Connection, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	dialer := &net.Dialer{Timeout: dialTimeout}
	if tlsConfig == nil {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
	if err != nil {
		return nil, newTransportError(fmt.Errorf("dialing %s over tls: %w", addr, err))
	}
	return newConnection(conn, dialTimeout), nil
}

// NewConnection adapts an already-established net.Conn (e.g. from a
// listener, or a test pipe) into a Connection.
func NewConnection(conn net.Conn) *Connection {
	return newConnection(conn, 0)
}

func newConnection(conn net.Conn, dialTimeout time.Duration) *Connection {
	return &Connection{
		conn:        conn,
		dialTimeout: dialTimeout,
		readBuf:     make([]byte, 0, initialBufferSize),
		scratch:     make([]byte, initialBufferSize),
	}
}

// Close closes the underlying stream.
func (c *Connection) Close() error {
	return c.conn.Close()
}

// WriteFrame encodes id/status/seq/body and writes the complete frame in
// one Write call, backpatching command_length the way
// Ucell-first-smpp2/connection.go's writePDU does.
func (c *Connection) WriteFrame(id pdu.CommandID, status pdu.CommandStatus, seq uint32, body pdu.PDU) error {
	frame, err := pdu.EncodeFrame(id, status, seq, body)
	if err != nil {
		return newCodecError(err)
	}
	if _, err := c.conn.Write(frame); err != nil {
		return newTransportError(fmt.Errorf("writing frame: %w", err))
	}
	return nil
}

// ReadFrame reads the next complete frame off the stream, using reg to
// resolve command_id to a concrete body type. It blocks until a full
// frame is available, the stream is cleanly closed (returns
// ErrConnectionClosed), or a read error occurs.
//
// Tries to parse a frame already sitting in the buffer before asking
// the stream for more bytes.
func (c *Connection) ReadFrame(reg *pdu.Registry) (pdu.Header, pdu.PDU, error) {
	for {
		header, body, ok, err := c.tryParseFrame(reg)
		if err != nil {
			return pdu.Header{}, nil, err
		}
		if ok {
			return header, body, nil
		}

		n, err := c.conn.Read(c.scratch)
		if err != nil {
			if err == io.EOF {
				if len(c.readBuf) == 0 {
					return pdu.Header{}, nil, ErrConnectionClosed
				}
				return pdu.Header{}, nil, newTransportError(fmt.Errorf("connection reset with %d unparsed bytes buffered", len(c.readBuf)))
			}
			return pdu.Header{}, nil, newTransportError(fmt.Errorf("reading frame: %w", err))
		}
		if n > 0 {
			c.readBuf = append(c.readBuf, c.scratch[:n]...)
		}
	}
}

// tryParseFrame attempts to carve one complete frame out of the
// already-buffered bytes without touching the stream. ok is false if
// more bytes are needed.
func (c *Connection) tryParseFrame(reg *pdu.Registry) (header pdu.Header, body pdu.PDU, ok bool, err error) {
	if len(c.readBuf) < 4 {
		return pdu.Header{}, nil, false, nil
	}
	length, err := pdu.Check(c.readBuf)
	if err != nil {
		return pdu.Header{}, nil, false, newCodecError(err)
	}
	if uint32(len(c.readBuf)) < length {
		c.growScratchFor(int(length))
		return pdu.Header{}, nil, false, nil
	}

	frame := c.readBuf[:length]
	header, err = pdu.DecodeHeader(frame)
	if err != nil {
		return pdu.Header{}, nil, false, newCodecError(err)
	}
	bodyBytes := frame[pdu.HeaderLength:length]
	body, err = reg.Decode(header, bodyBytes)
	if err != nil {
		return pdu.Header{}, nil, false, newCodecError(err)
	}

	remaining := make([]byte, len(c.readBuf)-int(length))
	copy(remaining, c.readBuf[length:])
	c.readBuf = remaining

	return header, body, true, nil
}

// growScratchFor ensures a single Read call can make meaningful progress
// toward a frame of the given total size.
func (c *Connection) growScratchFor(frameLen int) {
	if frameLen > cap(c.scratch) {
		c.scratch = make([]byte, frameLen)
	}
}

// RemoteAddr returns the peer address.
func (c *Connection) RemoteAddr() string {
	if c.conn == nil {
		return ""
	}
	return c.conn.RemoteAddr().String()
}

// SetDeadline forwards to the underlying net.Conn, used by Session to
// bound a single request/response round trip.
func (c *Connection) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}
