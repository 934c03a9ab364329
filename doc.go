// Package smpp implements an SMPP v3.4 (with v5.0 extensions) ESME
// client: connection framing, the bind/session state machine, and the
// keep-alive and flow-control layers that keep a long-lived session
// healthy. Wire types and per-command grammars live in the pdu
// subpackage; session health tracking lives in keepalive and
// flowcontrol.
package smpp
