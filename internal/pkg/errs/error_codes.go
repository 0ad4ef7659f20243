/*
Package errs provides custom error types and application-level error code constants.

These error codes identify the failure classes the client distinguishes:
local request handling, backend REST calls, session state, and the realtime
channel.
*/
package errs

// 1xxx: General Request Handling Errors (frontend server)
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Backend REST API Errors
const (
	// ErrRequestFailed indicates a non-2xx response from the backend API.
	ErrRequestFailed = 2001

	// ErrResponseInvalid indicates that a backend response body could not be decoded.
	ErrResponseInvalid = 2002

	// ErrAuthRejected indicates that the backend refused a login or signup attempt.
	ErrAuthRejected = 2101
)

// 3xxx: Session Errors
const (
	// ErrNotAuthenticated indicates that no usable local session exists.
	// Malformed session data is deliberately folded into this code.
	ErrNotAuthenticated = 3001
)

// 4xxx: Realtime Channel Errors
const (
	// ErrChannelConnect indicates that the realtime connection could not be established.
	ErrChannelConnect = 4001

	// ErrChannelClosed indicates an operation on a channel that has disconnected.
	ErrChannelClosed = 4002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)
