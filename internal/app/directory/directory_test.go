package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatfront/internal/app/api"
)

type backendMock struct {
	mock.Mock
}

func (m *backendMock) Contacts(ctx context.Context, userID int64) ([]api.Contact, error) {
	args := m.Called(ctx, userID)
	var contacts []api.Contact
	if val := args.Get(0); val != nil {
		contacts = val.([]api.Contact)
	}
	return contacts, args.Error(1)
}

func (m *backendMock) Rooms(ctx context.Context, userID int64) ([]api.ChatRoom, error) {
	args := m.Called(ctx, userID)
	var rooms []api.ChatRoom
	if val := args.Get(0); val != nil {
		rooms = val.([]api.ChatRoom)
	}
	return rooms, args.Error(1)
}

func (m *backendMock) SearchUsers(ctx context.Context, query string) ([]api.User, error) {
	args := m.Called(ctx, query)
	var users []api.User
	if val := args.Get(0); val != nil {
		users = val.([]api.User)
	}
	return users, args.Error(1)
}

func (m *backendMock) AddContactByPhone(ctx context.Context, userID int64, phoneNumber string) error {
	args := m.Called(ctx, userID, phoneNumber)
	return args.Error(0)
}

func (m *backendMock) CreateGroup(ctx context.Context, userID int64, name, description string, participantIDs []int64) error {
	args := m.Called(ctx, userID, name, description, participantIDs)
	return args.Error(0)
}

var testRooms = []api.ChatRoom{
	{ID: 1, Type: api.RoomPrivate, Name: "alice-bob", Participants: []api.User{{Username: "alice"}, {Username: "bob"}}},
	{ID: 2, Type: api.RoomGroup, Name: "gophers"},
	{ID: 3, Type: api.RoomGroup, Name: "plumbers"},
}

func TestReloadPopulatesBothLists(t *testing.T) {
	backend := new(backendMock)
	backend.On("Contacts", mock.Anything, int64(7)).Return([]api.Contact{{Username: "bob"}}, nil)
	backend.On("Rooms", mock.Anything, int64(7)).Return(testRooms, nil)

	dir := New(backend, 7, "alice")
	require.NoError(t, dir.Reload(context.Background()))

	assert.Len(t, dir.Contacts(), 1)
	assert.Len(t, dir.Rooms(), 3)
	backend.AssertExpectations(t)
}

func TestReloadContactsFailureStillAppliesRooms(t *testing.T) {
	backend := new(backendMock)
	backend.On("Contacts", mock.Anything, int64(7)).Return(nil, errors.New("boom"))
	backend.On("Rooms", mock.Anything, int64(7)).Return(testRooms, nil)

	dir := New(backend, 7, "alice")
	err := dir.Reload(context.Background())

	require.Error(t, err)
	assert.Empty(t, dir.Contacts())
	assert.Len(t, dir.Rooms(), 3, "rooms fetch must not be blocked by contacts failure")
}

func TestReloadRoomsFailureKeepsPreviousRooms(t *testing.T) {
	backend := new(backendMock)
	backend.On("Contacts", mock.Anything, int64(7)).Return([]api.Contact{{Username: "bob"}}, nil)
	backend.On("Rooms", mock.Anything, int64(7)).Return(testRooms, nil).Once()
	backend.On("Rooms", mock.Anything, int64(7)).Return(nil, errors.New("down")).Once()

	dir := New(backend, 7, "alice")
	require.NoError(t, dir.Reload(context.Background()))
	require.Error(t, dir.Reload(context.Background()))

	// Stale but present beats empty.
	assert.Len(t, dir.Rooms(), 3)
}

func TestRoomTypeFilters(t *testing.T) {
	backend := new(backendMock)
	backend.On("Contacts", mock.Anything, int64(7)).Return(nil, nil)
	backend.On("Rooms", mock.Anything, int64(7)).Return(testRooms, nil)

	dir := New(backend, 7, "alice")
	require.NoError(t, dir.Reload(context.Background()))

	private := dir.PrivateRooms()
	require.Len(t, private, 1)
	assert.Equal(t, int64(1), private[0].ID)

	groups := dir.GroupRooms()
	require.Len(t, groups, 2)
	assert.Equal(t, "gophers", groups[0].Name)
}

func TestRoomByID(t *testing.T) {
	backend := new(backendMock)
	backend.On("Contacts", mock.Anything, int64(7)).Return(nil, nil)
	backend.On("Rooms", mock.Anything, int64(7)).Return(testRooms, nil)

	dir := New(backend, 7, "alice")
	require.NoError(t, dir.Reload(context.Background()))

	room, ok := dir.RoomByID(2)
	require.True(t, ok)
	assert.Equal(t, "gophers", room.Name)

	_, ok = dir.RoomByID(99)
	assert.False(t, ok)
}

func TestPeerOfPrivateRoom(t *testing.T) {
	dir := New(new(backendMock), 7, "alice")

	assert.Equal(t, "bob", dir.PeerOf(testRooms[0]))
}

func TestSearchUsersExcludesSelf(t *testing.T) {
	backend := new(backendMock)
	backend.On("SearchUsers", mock.Anything, "ali").Return([]api.User{
		{Username: "alice", Name: "Alice"},
		{Username: "alina", Name: "Alina"},
	}, nil)

	dir := New(backend, 7, "alice")
	users, err := dir.SearchUsers(context.Background(), "ali")
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, "alina", users[0].Username)
}

func TestAddContactReloadsOnSuccess(t *testing.T) {
	backend := new(backendMock)
	backend.On("AddContactByPhone", mock.Anything, int64(7), "555-1234").Return(nil)
	backend.On("Contacts", mock.Anything, int64(7)).Return([]api.Contact{{Username: "bob"}}, nil)
	backend.On("Rooms", mock.Anything, int64(7)).Return(nil, nil)

	dir := New(backend, 7, "alice")
	require.NoError(t, dir.AddContact(context.Background(), "555-1234"))

	assert.Len(t, dir.Contacts(), 1)
	backend.AssertCalled(t, "Contacts", mock.Anything, int64(7))
}

func TestAddContactFailureDoesNotReload(t *testing.T) {
	backend := new(backendMock)
	backend.On("AddContactByPhone", mock.Anything, int64(7), "555-1234").Return(errors.New("nope"))

	dir := New(backend, 7, "alice")
	require.Error(t, dir.AddContact(context.Background(), "555-1234"))

	backend.AssertNotCalled(t, "Contacts", mock.Anything, mock.Anything)
}

func TestCreateGroupReloadsOnSuccess(t *testing.T) {
	backend := new(backendMock)
	backend.On("CreateGroup", mock.Anything, int64(7), "gophers", "a group", []int64{2}).Return(nil)
	backend.On("Contacts", mock.Anything, int64(7)).Return(nil, nil)
	backend.On("Rooms", mock.Anything, int64(7)).Return(testRooms, nil)

	dir := New(backend, 7, "alice")
	require.NoError(t, dir.CreateGroup(context.Background(), "gophers", "a group", []int64{2}))

	assert.Len(t, dir.GroupRooms(), 2)
	backend.AssertExpectations(t)
}
