/*
Package api provides the REST client for the external chat backend.

This file implements the Client itself: one method per backend endpoint, a
size-limited JSON response decoder, and the User-Id header convention the
backend uses to scope directory requests to the authenticated user.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chatfront/internal/app/session"
	"chatfront/internal/pkg/errs"
)

const (
	// userIDHeader scopes directory and history requests to a user.
	userIDHeader = "User-Id"

	// maxResponseBytes caps how much of a backend response body is read.
	maxResponseBytes int64 = 4 << 20 // 4 MB

	defaultTimeout = 15 * time.Second
)

// Client talks to the chat backend REST API. The backend owns authentication,
// storage, and membership; the client only relays calls and decodes results.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the given base URL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Login exchanges credentials for a session record.
// A success=false response surfaces the backend's message to the caller,
// since login is one of the few places request failures are shown to the user.
func (c *Client) Login(ctx context.Context, usernameOrPhone, password string) (session.Session, error) {
	body := map[string]string{
		"usernameOrPhone": usernameOrPhone,
		"password":        password,
	}

	var result loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", 0, body, &result); err != nil {
		return session.Session{}, err
	}

	if !result.Success || result.User == nil {
		return session.Session{}, errs.NewError(errs.ErrAuthRejected, result.Message)
	}

	return session.Session{
		ID:       result.User.ID,
		Username: result.User.Username,
		Name:     result.User.Name,
	}, nil
}

// Signup registers a new account. The caller sends the user back to login on success.
func (c *Client) Signup(ctx context.Context, username, name, phoneNumber, password string) error {
	body := map[string]string{
		"username":    username,
		"name":        name,
		"phoneNumber": phoneNumber,
		"password":    password,
	}

	var result signupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", 0, body, &result); err != nil {
		return err
	}

	if !result.Success {
		return errs.NewError(errs.ErrAuthRejected, result.Message)
	}

	return nil
}

// Logout tells the backend to end the server-side session. Best effort; the
// local session record is cleared regardless of the outcome.
func (c *Client) Logout(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/api/auth/logout/%d", userID)
	return c.doJSON(ctx, http.MethodPost, path, 0, nil, nil)
}

// Contacts fetches the user's contact list.
func (c *Client) Contacts(ctx context.Context, userID int64) ([]Contact, error) {
	var result contactsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/contacts", userID, nil, &result); err != nil {
		return nil, err
	}
	return result.Contacts, nil
}

// Rooms fetches the user's private and group chat rooms.
func (c *Client) Rooms(ctx context.Context, userID int64) ([]ChatRoom, error) {
	var result roomsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/rooms", userID, nil, &result); err != nil {
		return nil, err
	}
	return result.ChatRooms, nil
}

// RoomMessages fetches the stored history of one room, in server order,
// which is assumed chronological.
func (c *Client) RoomMessages(ctx context.Context, userID int64, roomID int64) ([]HistoryMessage, error) {
	path := fmt.Sprintf("/api/chat/rooms/%d/messages", roomID)

	var result messagesResponse
	if err := c.doJSON(ctx, http.MethodGet, path, userID, nil, &result); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// SearchUsers runs a user search on the backend. Results are not cached.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	path := "/api/chat/search/users?query=" + url.QueryEscape(query)

	var result searchResponse
	if err := c.doJSON(ctx, http.MethodGet, path, 0, nil, &result); err != nil {
		return nil, err
	}
	return result.Users, nil
}

// AddContactByPhone adds the user with the given phone number to the contact list.
func (c *Client) AddContactByPhone(ctx context.Context, userID int64, phoneNumber string) error {
	path := "/api/chat/contacts/phone/" + url.PathEscape(phoneNumber)
	return c.doJSON(ctx, http.MethodPost, path, userID, nil, nil)
}

// CreateGroup creates a new group room with the given participants.
func (c *Client) CreateGroup(ctx context.Context, userID int64, name, description string, participantIDs []int64) error {
	body := map[string]any{
		"name":           name,
		"description":    description,
		"participantIds": participantIDs,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/chat/group", userID, body, nil)
}

// doJSON performs one request against the backend. A non-zero userID is sent
// as the User-Id header. A nil dst skips body decoding. Non-2xx statuses map
// to ErrRequestFailed; whether that is shown or silently dropped is the
// caller's decision.
func (c *Client) doJSON(ctx context.Context, method, path string, userID int64, body, dst any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set(userIDHeader, strconv.FormatInt(userID, 10))
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errs.NewError(errs.ErrRequestFailed, 0)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return errs.NewError(errs.ErrRequestFailed, res.StatusCode)
	}

	if dst == nil {
		return nil
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, res.Body, maxResponseBytes))

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrResponseInvalid)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrResponseInvalid)
	}

	return nil
}
