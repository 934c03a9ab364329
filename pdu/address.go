package pdu

import (
	"fmt"
	"regexp"
)

// Address is a TON/NPI-qualified subscriber address, the common shape
// of source_addr/destination_addr fields across the submit/deliver
// family. Validated as a plain string bounded by field limit at
// validation time rather than carried as a fixed byte array.
type Address struct {
	TON    TypeOfNumber
	NPI    NumericPlanIndicator
	Number string
}

var internationalPattern = regexp.MustCompile(`^\+?[0-9]+$`)
var numericPattern = regexp.MustCompile(`^[0-9]+$`)
var alphanumericPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
var printableASCIIPattern = regexp.MustCompile(`^[\x20-\x7E]*$`)

// AddressError reports why an address failed validation.
type AddressError struct {
	Reason string
}

func (e *AddressError) Error() string { return "pdu: invalid address: " + e.Reason }

// Validate checks Number against the constraints implied by TON.
func (a Address) Validate() error {
	if len(a.Number) > PhoneNumberLimit-1 {
		return &AddressError{Reason: fmt.Sprintf("number exceeds %d octets", PhoneNumberLimit-1)}
	}
	return a.ValidateForTON(a.TON)
}

// ValidateForTON re-checks Number against a TON other than the one
// currently stored, without constructing a new Address.
func (a Address) ValidateForTON(ton TypeOfNumber) error {
	if a.Number == "" {
		return nil // empty address is valid (unknown/unspecified)
	}
	switch ton {
	case TONInternational:
		if !internationalPattern.MatchString(a.Number) {
			return &AddressError{Reason: "international address must be digits, optionally '+'-prefixed"}
		}
	case TONNational, TONNetworkSpecific, TONSubscriberNumber:
		if !numericPattern.MatchString(a.Number) {
			return &AddressError{Reason: "numeric address must contain only digits"}
		}
	case TONAlphanumeric, TONAbbreviated:
		if !alphanumericPattern.MatchString(a.Number) {
			return &AddressError{Reason: "alphanumeric address must contain only letters and digits"}
		}
	case TONUnknown:
		if !printableASCIIPattern.MatchString(a.Number) {
			return &AddressError{Reason: "unknown-type address must be printable ascii"}
		}
	}
	return nil
}

func (a Address) String() string {
	return a.Number
}

// ValidateSource checks a as a source_addr, mapping a failure onto the
// source_addr-specific status family.
func (a Address) ValidateSource() error {
	return a.validateField("src_addr", StatusInvalidSourceAddress, StatusInvalidSourceAddressTON)
}

// ValidateDest checks a as a destination address, mapping a failure
// onto the destination-specific status family.
func (a Address) ValidateDest() error {
	return a.validateField("dest_addr", StatusInvalidDestinationAddress, StatusInvalidDestinationAddressTON)
}

func (a Address) validateField(field string, lengthStatus, tonStatus CommandStatus) error {
	if len(a.Number) > PhoneNumberLimit-1 {
		return NewFieldError(field, lengthStatus)
	}
	if err := a.ValidateForTON(a.TON); err != nil {
		return NewFieldError(field, tonStatus)
	}
	return nil
}
