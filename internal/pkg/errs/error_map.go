/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize error handling and the few HTTP responses the frontend server emits.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Backend REST API Errors
	ErrRequestFailed:   {Code: ErrRequestFailed, Message: "Chat server request failed with status %d."},
	ErrResponseInvalid: {Code: ErrResponseInvalid, Message: "Chat server sent an unreadable response."},
	ErrAuthRejected:    {Code: ErrAuthRejected, Message: "%s"},

	// 3xxx: Session Errors
	ErrNotAuthenticated: {Code: ErrNotAuthenticated, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 4xxx: Realtime Channel Errors
	ErrChannelConnect: {Code: ErrChannelConnect, Message: "Failed to connect to chat server."},
	ErrChannelClosed:  {Code: ErrChannelClosed, Message: "Chat connection is closed."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
