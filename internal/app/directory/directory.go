/*
Package directory holds the in-memory copy of the user's contacts and chat rooms.

Both lists are read-through caches of backend state: they are refetched
wholesale after any mutating call rather than patched locally, accepting one
extra round trip for the guarantee that the cache never drifts from what the
backend decided.
*/
package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"chatfront/internal/app/api"
	"chatfront/internal/pkg/logx"
)

// Backend is the subset of the REST client the directory depends on.
type Backend interface {
	Contacts(ctx context.Context, userID int64) ([]api.Contact, error)
	Rooms(ctx context.Context, userID int64) ([]api.ChatRoom, error)
	SearchUsers(ctx context.Context, query string) ([]api.User, error)
	AddContactByPhone(ctx context.Context, userID int64, phoneNumber string) error
	CreateGroup(ctx context.Context, userID int64, name, description string, participantIDs []int64) error
}

// Directory caches the last-fetched contacts and rooms for one user.
type Directory struct {
	backend      Backend
	userID       int64
	selfUsername string

	// mu protects contacts and rooms.
	mu       sync.RWMutex
	contacts []api.Contact
	rooms    []api.ChatRoom

	logger zerolog.Logger
}

// New returns an empty Directory for the given user.
func New(backend Backend, userID int64, selfUsername string) *Directory {
	dirLogger := logx.Logger().With().
		Str("component", "directory").
		Int64("user_id", userID).
		Logger()

	return &Directory{
		backend:      backend,
		userID:       userID,
		selfUsername: selfUsername,
		logger:       dirLogger,
	}
}

// Reload refetches contacts and rooms. The two fetches are independent: a
// failure in one still applies the result of the other, leaving stale data
// only for the half that failed. The joined error is returned for logging;
// callers are expected to drop it silently.
func (d *Directory) Reload(ctx context.Context) error {
	contacts, contactsErr := d.backend.Contacts(ctx, d.userID)
	if contactsErr != nil {
		d.logger.Warn().Err(contactsErr).Msg("Contacts reload failed. Keeping previous list.")
	}

	rooms, roomsErr := d.backend.Rooms(ctx, d.userID)
	if roomsErr != nil {
		d.logger.Warn().Err(roomsErr).Msg("Rooms reload failed. Keeping previous list.")
	}

	d.mu.Lock()
	if contactsErr == nil {
		d.contacts = contacts
	}
	if roomsErr == nil {
		d.rooms = rooms
	}
	d.mu.Unlock()

	return errors.Join(contactsErr, roomsErr)
}

// Contacts returns a copy of the cached contact list.
func (d *Directory) Contacts() []api.Contact {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]api.Contact, len(d.contacts))
	copy(out, d.contacts)
	return out
}

// Rooms returns a copy of the cached room list.
func (d *Directory) Rooms() []api.ChatRoom {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]api.ChatRoom, len(d.rooms))
	copy(out, d.rooms)
	return out
}

// PrivateRooms returns the cached rooms of type PRIVATE.
func (d *Directory) PrivateRooms() []api.ChatRoom {
	return d.roomsOfType(api.RoomPrivate)
}

// GroupRooms returns the cached rooms of type GROUP.
func (d *Directory) GroupRooms() []api.ChatRoom {
	return d.roomsOfType(api.RoomGroup)
}

func (d *Directory) roomsOfType(t api.RoomType) []api.ChatRoom {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []api.ChatRoom
	for _, room := range d.rooms {
		if room.Type == t {
			out = append(out, room)
		}
	}
	return out
}

// RoomByID looks a cached room up by id.
func (d *Directory) RoomByID(id int64) (api.ChatRoom, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, room := range d.rooms {
		if room.ID == id {
			return room, true
		}
	}
	return api.ChatRoom{}, false
}

// PeerOf returns the other participant's username for a private room, used
// to address outgoing messages when the room is opened from the room list.
func (d *Directory) PeerOf(room api.ChatRoom) string {
	for _, p := range room.Participants {
		if p.Username != d.selfUsername {
			return p.Username
		}
	}
	return ""
}

// SearchUsers runs an uncached backend search, excluding the local user from
// the results.
func (d *Directory) SearchUsers(ctx context.Context, query string) ([]api.User, error) {
	users, err := d.backend.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}

	out := users[:0]
	for _, u := range users {
		if u.Username == d.selfUsername {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// AddContact adds a contact by phone number and, on success, reloads the
// whole directory rather than patching the cached list.
func (d *Directory) AddContact(ctx context.Context, phoneNumber string) error {
	if err := d.backend.AddContactByPhone(ctx, d.userID, phoneNumber); err != nil {
		return err
	}

	d.Reload(ctx)
	return nil
}

// CreateGroup creates a group room and, on success, reloads the whole
// directory rather than patching the cached list.
func (d *Directory) CreateGroup(ctx context.Context, name, description string, participantIDs []int64) error {
	if err := d.backend.CreateGroup(ctx, d.userID, name, description, participantIDs); err != nil {
		return err
	}

	d.Reload(ctx)
	return nil
}
