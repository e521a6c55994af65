package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/domain"
)

// Abandoned rooms are reaped by the game loop; the TTL is only a
// backstop for rooms whose process died before teardown.
const roomTTL = 24 * time.Hour

type RedisRoomStore struct {
	client *redis.Client
}

func NewRedisRoomStore(ctx context.Context, redisURL string) (*RedisRoomStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisRoomStore{client: client}, nil
}

func (s *RedisRoomStore) Close() error {
	return s.client.Close()
}

func roomKey(roomId string) string     { return "room:" + roomId }
func settingsKey(roomId string) string { return "room:" + roomId + ":settings" }
func playersKey(roomId string) string  { return "room:" + roomId + ":players" }

func wrapStorageErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.UnexpectedStorageError, err)
}

func (s *RedisRoomStore) CreateRoom(ctx context.Context, room domain.Room, settings domain.RoomSettings) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, roomKey(room.RoomID), room, roomTTL)
	pipe.Set(ctx, settingsKey(room.RoomID), settings, roomTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (s *RedisRoomStore) GetRoom(ctx context.Context, roomId string) (domain.Room, error) {
	data, err := s.client.Get(ctx, roomKey(roomId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, wrapStorageErr(err)
	}

	var room domain.Room
	if err := room.UnmarshalBinary(data); err != nil {
		return domain.Room{}, wrapStorageErr(err)
	}
	return room, nil
}

func (s *RedisRoomStore) UpdateRoom(ctx context.Context, room domain.Room) error {
	if err := s.client.Set(ctx, roomKey(room.RoomID), room, roomTTL).Err(); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (s *RedisRoomStore) DeleteRoom(ctx context.Context, roomId string) error {
	keys := []string{roomKey(roomId), settingsKey(roomId), playersKey(roomId)}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (s *RedisRoomStore) GetSettings(ctx context.Context, roomId string) (domain.RoomSettings, error) {
	data, err := s.client.Get(ctx, settingsKey(roomId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.RoomSettings{}, domain.ErrRoomNotFound
		}
		return domain.RoomSettings{}, wrapStorageErr(err)
	}

	var settings domain.RoomSettings
	if err := settings.UnmarshalBinary(data); err != nil {
		return domain.RoomSettings{}, wrapStorageErr(err)
	}
	return settings, nil
}

func (s *RedisRoomStore) UpdateSettings(ctx context.Context, roomId string, settings domain.RoomSettings) error {
	if err := s.client.Set(ctx, settingsKey(roomId), settings, roomTTL).Err(); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (s *RedisRoomStore) ListPlayers(ctx context.Context, roomId string) ([]domain.Player, error) {
	entries, err := s.client.HGetAll(ctx, playersKey(roomId)).Result()
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	players := make([]domain.Player, 0, len(entries))
	for _, raw := range entries {
		var p domain.Player
		if err := p.UnmarshalBinary([]byte(raw)); err != nil {
			return nil, wrapStorageErr(err)
		}
		players = append(players, p)
	}

	sort.Slice(players, func(i, j int) bool { return players[i].PlayerID < players[j].PlayerID })
	return players, nil
}

func (s *RedisRoomStore) AddPlayer(ctx context.Context, roomId string, player domain.Player) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, playersKey(roomId), player.PlayerID, player)
	pipe.Expire(ctx, playersKey(roomId), roomTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (s *RedisRoomStore) UpdatePlayer(ctx context.Context, roomId string, player domain.Player) error {
	if err := s.client.HSet(ctx, playersKey(roomId), player.PlayerID, player).Err(); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

// RemovePlayer is idempotent. Removing an already-removed player is
// not an error; the caller retries on transient failures.
func (s *RedisRoomStore) RemovePlayer(ctx context.Context, roomId string, playerId string) error {
	if err := s.client.HDel(ctx, playersKey(roomId), playerId).Err(); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}
