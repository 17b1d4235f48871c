// Package errors provides the ledger's structured error kinds.
package errors

import "connectrpc.com/connect"

// Code is a machine-readable error kind.
type Code string

const (
	// CodeUnknown represents an error that is not a domain error.
	CodeUnknown Code = "UNKNOWN"

	// Lookup errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeShareNotFound Code = "SHARE_NOT_FOUND"

	// Authorization errors
	CodeForbidden Code = "FORBIDDEN"
	CodeNotMember Code = "NOT_MEMBER"

	// State errors
	CodeGroupClosed Code = "GROUP_CLOSED"

	// Sum invariant errors
	CodeAmountMismatch Code = "AMOUNT_MISMATCH"
	CodeAmountTooLow   Code = "AMOUNT_TOO_LOW"
	CodeEmptyGroup     Code = "EMPTY_GROUP"

	// Input errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Persistence errors
	CodeStorage Code = "STORAGE"
)

// ConnectCode maps domain codes to Connect status codes.
func (c Code) ConnectCode() connect.Code {
	switch c {
	case CodeNotFound, CodeShareNotFound:
		return connect.CodeNotFound

	case CodeForbidden, CodeNotMember:
		return connect.CodePermissionDenied

	// FailedPrecondition - state or stored sums don't allow the operation
	case CodeGroupClosed,
		CodeAmountMismatch,
		CodeAmountTooLow,
		CodeEmptyGroup:
		return connect.CodeFailedPrecondition

	case CodeInvalidArgument:
		return connect.CodeInvalidArgument

	case CodeStorage:
		return connect.CodeUnavailable

	default:
		return connect.CodeInternal
	}
}
