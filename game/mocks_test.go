package game

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

// --- NetworkSession ---

type MockNetworkSession struct {
	mock.Mock
}

func (m *MockNetworkSession) Close(errCode string) {
	m.Called(errCode)
}

func (m *MockNetworkSession) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockNetworkSession) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockNetworkSession) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// --- Player ---

type MockPlayer struct {
	mock.Mock
}

func (m *MockPlayer) Id() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Nickname() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) ProfileImage() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Send(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockPlayer) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPlayer) SetRoom(r Room) {
	m.Called(r)
}

func (m *MockPlayer) CancelAndRelease() {
	m.Called()
}

// --- Room ---

type MockRoom struct {
	mock.Mock
}

func (m *MockRoom) Tick(now time.Time) {
	m.Called(now)
}

func (m *MockRoom) PingPlayers() {
	m.Called()
}

func (m *MockRoom) Send(ctx context.Context, e clientPacketEnvelope) {
	m.Called(ctx, e)
}

func (m *MockRoom) RemoveMe(ctx context.Context, p Player) {
	m.Called(ctx, p)
}

func (m *MockRoom) RequestJoin(jreq roomJoinRequest) {
	m.Called(jreq)
}

func (m *MockRoom) GameLoop() {
	m.Called()
}

func (m *MockRoom) CloseAndRelease() {
	m.Called()
}

func (m *MockRoom) Description() RoomDescription {
	args := m.Called()
	return args.Get(0).(RoomDescription)
}

func (m *MockRoom) SetParentLobby(l Lobby) {
	m.Called(l)
}

// --- Lobby ---

type MockLobby struct {
	mock.Mock
}

func (m *MockLobby) RequestAddAndRunRoom(ctx context.Context, r Room) {
	m.Called(ctx, r)
}

func (m *MockLobby) ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest) {
	m.Called(ctx, jreq)
}

func (m *MockLobby) RequestUpdateDescription(desc RoomDescription) {
	m.Called(desc)
}

func (m *MockLobby) RemoveRoom(roomId string) {
	m.Called(roomId)
}

func (m *MockLobby) GetPublicGames(ctx context.Context) []RoomDescription {
	args := m.Called(ctx)
	return args.Get(0).([]RoomDescription)
}

// --- RoomStore ---

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) CreateRoom(ctx context.Context, room domain.Room, settings domain.RoomSettings) error {
	args := m.Called(ctx, room, settings)
	return args.Error(0)
}

func (m *MockRoomStore) GetRoom(ctx context.Context, roomId string) (domain.Room, error) {
	args := m.Called(ctx, roomId)
	return args.Get(0).(domain.Room), args.Error(1)
}

func (m *MockRoomStore) UpdateRoom(ctx context.Context, room domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomStore) DeleteRoom(ctx context.Context, roomId string) error {
	args := m.Called(ctx, roomId)
	return args.Error(0)
}

func (m *MockRoomStore) GetSettings(ctx context.Context, roomId string) (domain.RoomSettings, error) {
	args := m.Called(ctx, roomId)
	return args.Get(0).(domain.RoomSettings), args.Error(1)
}

func (m *MockRoomStore) UpdateSettings(ctx context.Context, roomId string, settings domain.RoomSettings) error {
	args := m.Called(ctx, roomId, settings)
	return args.Error(0)
}

func (m *MockRoomStore) ListPlayers(ctx context.Context, roomId string) ([]domain.Player, error) {
	args := m.Called(ctx, roomId)
	return args.Get(0).([]domain.Player), args.Error(1)
}

func (m *MockRoomStore) AddPlayer(ctx context.Context, roomId string, player domain.Player) error {
	args := m.Called(ctx, roomId, player)
	return args.Error(0)
}

func (m *MockRoomStore) UpdatePlayer(ctx context.Context, roomId string, player domain.Player) error {
	args := m.Called(ctx, roomId, player)
	return args.Error(0)
}

func (m *MockRoomStore) RemovePlayer(ctx context.Context, roomId string, playerId string) error {
	args := m.Called(ctx, roomId, playerId)
	return args.Error(0)
}

// --- WordSource ---

type MockWordSource struct {
	mock.Mock
}

func (m *MockWordSource) FetchWords(ctx context.Context, theme string, count int) ([]string, error) {
	args := m.Called(ctx, theme, count)
	return args.Get(0).([]string), args.Error(1)
}

// --- UniqueIdGenerator ---

type MockUniqueIdGenerator struct {
	mock.Mock
}

func (m *MockUniqueIdGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockUniqueIdGenerator) Dispose(id string) {
	m.Called(id)
}

// --- PeriodicTickerChannelCreator ---

type MockPeriodicTickerChannelCreator struct {
	mock.Mock
}

func (m *MockPeriodicTickerChannelCreator) Create(duration time.Duration) <-chan time.Time {
	args := m.Called(duration)
	return args.Get(0).(chan time.Time)
}

// --- TicketIssuer ---

type MockTicketIssuer struct {
	mock.Mock
}

func (m *MockTicketIssuer) Issue(roomId, playerId string, now time.Time) (string, error) {
	args := m.Called(roomId, playerId, now)
	return args.String(0), args.Error(1)
}

func (m *MockTicketIssuer) Verify(ticket string) (string, string, error) {
	args := m.Called(ticket)
	return args.String(0), args.String(1), args.Error(2)
}
