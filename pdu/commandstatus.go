package pdu

import "fmt"

// CommandStatus is the command_status field of an SMPP PDU. It is
// meaningful only on response PDUs; requests carry StatusOK.
type CommandStatus uint32

const (
	StatusOK                            CommandStatus = 0x00000000
	StatusInvalidMsgLength               CommandStatus = 0x00000001
	StatusInvalidCommandLength           CommandStatus = 0x00000002
	StatusInvalidCommandID               CommandStatus = 0x00000003
	StatusIncorrectBindStatus            CommandStatus = 0x00000004
	StatusAlreadyBoundState              CommandStatus = 0x00000005
	StatusInvalidPriorityFlag            CommandStatus = 0x00000006
	StatusInvalidRegisteredDeliveryFlag  CommandStatus = 0x00000007
	StatusSystemError                    CommandStatus = 0x00000008
	StatusInvalidSourceAddress           CommandStatus = 0x0000000A
	StatusInvalidDestinationAddress      CommandStatus = 0x0000000B
	StatusInvalidMessageID               CommandStatus = 0x0000000C
	StatusBindFailed                     CommandStatus = 0x0000000D
	StatusInvalidPassword                CommandStatus = 0x0000000E
	StatusInvalidSystemID                CommandStatus = 0x0000000F
	StatusCancelSmFailed                 CommandStatus = 0x00000011
	StatusReplaceSmFailed                CommandStatus = 0x00000013
	StatusMessageQueueFull               CommandStatus = 0x00000014
	StatusInvalidServiceType             CommandStatus = 0x00000015
	StatusInvalidNumberOfDestinations    CommandStatus = 0x00000033
	StatusInvalidDistributionListName    CommandStatus = 0x00000034
	StatusInvalidDestinationFlag         CommandStatus = 0x00000040
	StatusInvalidSubmitWithReplaceRequest CommandStatus = 0x00000042
	StatusInvalidEsmClassFieldData       CommandStatus = 0x00000043
	StatusCannotSubmitToDistributionList CommandStatus = 0x00000044
	StatusSubmitFailed                   CommandStatus = 0x00000045
	StatusInvalidSourceAddressTON        CommandStatus = 0x00000048
	StatusInvalidSourceAddressNPI        CommandStatus = 0x00000049
	StatusInvalidDestinationAddressTON   CommandStatus = 0x00000050
	StatusInvalidDestinationAddressNPI   CommandStatus = 0x00000051
	StatusInvalidSystemTypeField         CommandStatus = 0x00000053
	StatusInvalidReplaceIfPresentFlag    CommandStatus = 0x00000054
	StatusInvalidNumberOfMessages        CommandStatus = 0x00000055
	StatusThrottlingError                CommandStatus = 0x00000058
	StatusInvalidScheduledDeliveryTime   CommandStatus = 0x00000061
	StatusInvalidExpiryTime              CommandStatus = 0x00000062
	StatusInvalidPredefinedMessageID     CommandStatus = 0x00000063
	StatusReceiverTemporaryAppError      CommandStatus = 0x00000064
	StatusReceiverPermanentAppError      CommandStatus = 0x00000065
	StatusReceiverRejectMessageError     CommandStatus = 0x00000066
	StatusQuerySmRequestFailed           CommandStatus = 0x00000067
	StatusErrorInOptionalPartOfPduBody   CommandStatus = 0x000000C0
	StatusOptionalParameterNotAllowed    CommandStatus = 0x000000C1
	StatusInvalidParameterLength         CommandStatus = 0x000000C2
	StatusExpectedOptionalParameterMissing CommandStatus = 0x000000C3
	StatusInvalidOptionalParameterValue  CommandStatus = 0x000000C4
	StatusDeliveryFailed                 CommandStatus = 0x000000FE
	StatusUnknownError                   CommandStatus = 0x000000FF

	// v5.0 congestion signaling, carried in a TLV rather than as a status,
	// but the rejection status it accompanies is a normal protocol status.
	StatusCongestionStateRejected CommandStatus = 0x00000058 // ThrottlingError family per v5.0 extension
)

var commandStatusMessages = map[CommandStatus]string{
	StatusOK:                              "no error",
	StatusInvalidMsgLength:                "message length is invalid",
	StatusInvalidCommandLength:            "command length is invalid",
	StatusInvalidCommandID:                "invalid command id",
	StatusIncorrectBindStatus:             "incorrect bind status for given command",
	StatusAlreadyBoundState:               "esme already in bound state",
	StatusInvalidPriorityFlag:             "invalid priority flag",
	StatusInvalidRegisteredDeliveryFlag:   "invalid registered delivery flag",
	StatusSystemError:                     "system error",
	StatusInvalidSourceAddress:            "invalid source address",
	StatusInvalidDestinationAddress:       "invalid destination address",
	StatusInvalidMessageID:                "message id is invalid",
	StatusBindFailed:                      "bind failed",
	StatusInvalidPassword:                 "invalid password",
	StatusInvalidSystemID:                 "invalid system id",
	StatusCancelSmFailed:                  "cancel sm failed",
	StatusReplaceSmFailed:                 "replace sm failed",
	StatusMessageQueueFull:                "message queue full",
	StatusInvalidServiceType:              "invalid service type",
	StatusInvalidNumberOfDestinations:     "invalid number of destinations",
	StatusInvalidDistributionListName:     "invalid distribution list name",
	StatusInvalidDestinationFlag:          "invalid destination flag",
	StatusInvalidSubmitWithReplaceRequest: "invalid submit with replace request",
	StatusInvalidEsmClassFieldData:        "invalid esm_class field data",
	StatusCannotSubmitToDistributionList:  "cannot submit to distribution list",
	StatusSubmitFailed:                    "submit_sm or submit_multi failed",
	StatusInvalidSourceAddressTON:         "invalid source address ton",
	StatusInvalidSourceAddressNPI:         "invalid source address npi",
	StatusInvalidDestinationAddressTON:    "invalid destination address ton",
	StatusInvalidDestinationAddressNPI:    "invalid destination address npi",
	StatusInvalidSystemTypeField:          "invalid system_type field",
	StatusInvalidReplaceIfPresentFlag:     "invalid replace_if_present flag",
	StatusInvalidNumberOfMessages:         "invalid number of messages",
	StatusThrottlingError:                 "throttling error, esme exceeded allowed message limits",
	StatusInvalidScheduledDeliveryTime:    "invalid scheduled delivery time",
	StatusInvalidExpiryTime:               "invalid message validity period",
	StatusInvalidPredefinedMessageID:      "predefined message invalid or not found",
	StatusReceiverTemporaryAppError:       "esme receiver temporary app error",
	StatusReceiverPermanentAppError:       "esme receiver permanent app error",
	StatusReceiverRejectMessageError:      "esme receiver reject message error",
	StatusQuerySmRequestFailed:            "query_sm request failed",
	StatusErrorInOptionalPartOfPduBody:    "error in the optional part of the pdu body",
	StatusOptionalParameterNotAllowed:     "optional parameter not allowed",
	StatusInvalidParameterLength:          "invalid parameter length",
	StatusExpectedOptionalParameterMissing: "expected optional parameter missing",
	StatusInvalidOptionalParameterValue:   "invalid optional parameter value",
	StatusDeliveryFailed:                  "delivery failed",
	StatusUnknownError:                    "unknown error",
}

// Message returns a human-readable description of the status, the way a
// log line or returned error would want to render it.
func (s CommandStatus) Message() string {
	if msg, ok := commandStatusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("unrecognized status 0x%08x", uint32(s))
}

func (s CommandStatus) String() string {
	return fmt.Sprintf("0x%08x(%s)", uint32(s), s.Message())
}

// Ok reports whether the status indicates success.
func (s CommandStatus) Ok() bool {
	return s == StatusOK
}

// StatusError adapts a non-OK CommandStatus into an error, grounded on
// ajankovic/smpp's toError status-to-message mapping.
type StatusError struct {
	Status CommandStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("smpp: %s", e.Status.Message())
}

// NewStatusError returns nil for StatusOK and a *StatusError otherwise.
func NewStatusError(status CommandStatus) error {
	if status.Ok() {
		return nil
	}
	return &StatusError{Status: status}
}

// FieldError reports a mandatory-field validation failure discovered
// while encoding or decoding a PDU body, tagged with the CommandStatus
// an SMSC would reject it with. smpp.newCodecError unwraps this to
// populate smpp.Error.Status.
type FieldError struct {
	Field  string
	Status CommandStatus
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("pdu: %s: %s", e.Field, e.Status.Message())
}

// NewFieldError builds a FieldError, the constructor every per-field
// validation check in this package should fail through.
func NewFieldError(field string, status CommandStatus) error {
	return &FieldError{Field: field, Status: status}
}
