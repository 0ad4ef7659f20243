/*
Package api provides the REST client for the external chat backend.

This file defines the wire types the backend exchanges with the client. They
mirror backend state and are never persisted locally; the directory cache
simply holds the last-fetched copies.
*/
package api

import "time"

// RoomType distinguishes one-to-one rooms from group rooms.
type RoomType string

const (
	RoomPrivate RoomType = "PRIVATE"
	RoomGroup   RoomType = "GROUP"
)

// User is a backend user as returned by search and nested in other payloads.
type User struct {
	ID          int64  `json:"id,omitempty"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Contact is an entry in the local user's contact list.
type Contact struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// ChatRoom is a private or group room the local user participates in.
type ChatRoom struct {
	ID           int64    `json:"id"`
	Type         RoomType `json:"type"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Participants []User   `json:"participants"`
}

// HistoryMessage is one stored message from a room's history, as returned by
// GET /api/chat/rooms/{id}/messages. The sender is nested, unlike the flat
// realtime envelope.
type HistoryMessage struct {
	Sender      User      `json:"sender"`
	Content     string    `json:"content"`
	MessageType string    `json:"messageType"`
	Timestamp   time.Time `json:"timestamp"`
}

// loginResponse is the payload of POST /api/auth/login.
type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// signupResponse is the payload of POST /api/auth/signup.
type signupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type contactsResponse struct {
	Contacts []Contact `json:"contacts"`
}

type roomsResponse struct {
	ChatRooms []ChatRoom `json:"chatRooms"`
}

type messagesResponse struct {
	Messages []HistoryMessage `json:"messages"`
}

type searchResponse struct {
	Users []User `json:"users"`
}
