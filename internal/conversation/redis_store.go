package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements PersistenceStore on Redis. Each session uses two
// keys: a hash for the record metadata and a list for the message log, so an
// append is a single RPUSH instead of a whole-document rewrite.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// NewRedisStoreWithClient wraps an existing client. Used by tests.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) metaKey(sessionID string) string {
	return fmt.Sprintf("conversation:%s:meta", sessionID)
}

func (r *RedisStore) logKey(sessionID string) string {
	return fmt.Sprintf("conversation:%s:log", sessionID)
}

// Load reads the record hash and the message list, or returns nil when the
// session is unknown.
func (r *RedisStore) Load(ctx context.Context, sessionID string) (*State, error) {
	meta, err := r.client.HGetAll(ctx, r.metaKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation meta: %w", err)
	}
	if len(meta) == 0 {
		return nil, nil
	}

	raw, err := r.client.LRange(ctx, r.logKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation log: %w", err)
	}

	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to parse message: %w", err)
		}
		messages = append(messages, msg)
	}

	state := &State{
		SessionID:  sessionID,
		Messages:   messages,
		Status:     Status(meta["status"]),
		UserType:   meta["user_type"],
		UserRegion: meta["user_region"],
	}
	if ts, err := time.Parse(time.RFC3339Nano, meta["created_at"]); err == nil {
		state.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, meta["updated_at"]); err == nil {
		state.UpdatedAt = ts
	}

	return state, nil
}

// Create writes the record metadata; the log key is created lazily on the
// first append.
func (r *RedisStore) Create(ctx context.Context, state *State) error {
	key := r.metaKey(state.SessionID)

	fields := map[string]interface{}{
		"status":      string(state.Status),
		"user_type":   state.UserType,
		"user_region": state.UserRegion,
		"created_at":  state.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  state.UpdatedAt.Format(time.RFC3339Nano),
	}
	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	return r.refreshTTL(ctx, state.SessionID)
}

// Append pushes one message onto the session log.
func (r *RedisStore) Append(ctx context.Context, sessionID string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := r.client.RPush(ctx, r.logKey(sessionID), data).Err(); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	if err := r.client.HSet(ctx, r.metaKey(sessionID), "updated_at", msg.Timestamp.Format(time.RFC3339Nano)).Err(); err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}

	return r.refreshTTL(ctx, sessionID)
}

// SetStatus updates the lifecycle status field.
func (r *RedisStore) SetStatus(ctx context.Context, sessionID string, status Status) error {
	fields := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := r.client.HSet(ctx, r.metaKey(sessionID), fields).Err(); err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	return nil
}

// Reset drops the message log and returns the status to active.
func (r *RedisStore) Reset(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.logKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear log: %w", err)
	}
	return r.SetStatus(ctx, sessionID, StatusActive)
}

// Exists reports whether the session record exists.
func (r *RedisStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.metaKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check conversation existence: %w", err)
	}
	return exists > 0, nil
}

// refreshTTL renews the retention window on both session keys.
func (r *RedisStore) refreshTTL(ctx context.Context, sessionID string) error {
	if r.ttl <= 0 {
		return nil
	}
	if err := r.client.Expire(ctx, r.metaKey(sessionID), r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh ttl: %w", err)
	}
	// The log key may not exist yet; Expire on a missing key is a no-op.
	if err := r.client.Expire(ctx, r.logKey(sessionID), r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh ttl: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection is alive.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
