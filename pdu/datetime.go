package pdu

import "fmt"

// SmppDateTime is the SMPP absolute/relative time format:
// YYMMDDhhmmsstnnp, a 16-character fixed layout whose last character
// is the terminal octet (p).
type SmppDateTime struct {
	Year, Month, Day      int // YY (00-99), 1-12, 1-31
	Hour, Minute, Second  int // 0-23, 0-59, 0-59
	Tenths                int // 0-9, tenths of a second
	UTCOffsetQuarterHours int // nn, 0-48
	Relation              byte // '+', '-', or 'R' (relative)
}

// Empty reports whether this is the zero-value "unspecified" time, which
// the wire format represents as an empty C-string rather than 16
// formatted characters.
func (t SmppDateTime) Empty() bool {
	return t == SmppDateTime{}
}

// Validate enforces each field's legal range, plus the terminal-octet
// vocabulary.
func (t SmppDateTime) Validate() error {
	if t.Empty() {
		return nil
	}
	switch {
	case t.Year < 0 || t.Year > 99:
		return fmt.Errorf("pdu: datetime year out of range: %d", t.Year)
	case t.Month < 1 || t.Month > 12:
		return fmt.Errorf("pdu: datetime month out of range: %d", t.Month)
	case t.Day < 1 || t.Day > 31:
		return fmt.Errorf("pdu: datetime day out of range: %d", t.Day)
	case t.Hour < 0 || t.Hour > 23:
		return fmt.Errorf("pdu: datetime hour out of range: %d", t.Hour)
	case t.Minute < 0 || t.Minute > 59:
		return fmt.Errorf("pdu: datetime minute out of range: %d", t.Minute)
	case t.Second < 0 || t.Second > 59:
		return fmt.Errorf("pdu: datetime second out of range: %d", t.Second)
	case t.Tenths < 0 || t.Tenths > 9:
		return fmt.Errorf("pdu: datetime tenths out of range: %d", t.Tenths)
	case t.UTCOffsetQuarterHours < 0 || t.UTCOffsetQuarterHours > 48:
		return fmt.Errorf("pdu: datetime utc offset out of range: %d", t.UTCOffsetQuarterHours)
	}
	switch t.Relation {
	case '+', '-', 'R':
	default:
		return fmt.Errorf("pdu: datetime relation must be one of +,-,R, got %q", t.Relation)
	}
	return nil
}

// String renders the YYMMDDhhmmsstnnp wire form, or "" if Empty.
func (t SmppDateTime) String() string {
	if t.Empty() {
		return ""
	}
	return fmt.Sprintf("%02d%02d%02d%02d%02d%02d%d%02d%c",
		t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Tenths, t.UTCOffsetQuarterHours, t.Relation)
}

// ParseSmppDateTime parses the 16-character wire form. An empty string
// parses to the zero value.
func ParseSmppDateTime(s string) (SmppDateTime, error) {
	if s == "" {
		return SmppDateTime{}, nil
	}
	if len(s) != 16 {
		return SmppDateTime{}, fmt.Errorf("pdu: datetime must be 16 characters, got %d", len(s))
	}
	var t SmppDateTime
	_, err := fmt.Sscanf(s[:15], "%02d%02d%02d%02d%02d%02d%1d%02d",
		&t.Year, &t.Month, &t.Day, &t.Hour, &t.Minute, &t.Second, &t.Tenths, &t.UTCOffsetQuarterHours)
	if err != nil {
		return SmppDateTime{}, fmt.Errorf("pdu: malformed datetime %q: %w", s, err)
	}
	t.Relation = s[15]
	if err := t.Validate(); err != nil {
		return SmppDateTime{}, err
	}
	return t, nil
}
