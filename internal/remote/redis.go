package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisMirror keeps each user's document in a hash keyed by user id, one
// field per collection, and signals every change on a pub/sub channel so
// subscribers can re-read the document.
type RedisMirror struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisMirror(rdb *redis.Client, logger *zap.Logger) *RedisMirror {
	return &RedisMirror{rdb: rdb, logger: logger}
}

func userKey(userID string) string {
	return fmt.Sprintf("planner:users:%s", userID)
}

func changeChannel(userID string) string {
	return fmt.Sprintf("planner:users:%s:changed", userID)
}

func (m *RedisMirror) Replace(ctx context.Context, userID, field string, value any) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", field, err)
	}
	if err := m.rdb.HSet(ctx, userKey(userID), field, string(blob)).Err(); err != nil {
		return fmt.Errorf("replace %s: %w", field, err)
	}
	return m.notify(ctx, userID)
}

func (m *RedisMirror) Patch(ctx context.Context, userID string, fields map[string]any) error {
	encoded := make([]any, 0, len(fields)*2)
	for field, value := range fields {
		blob, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", field, err)
		}
		encoded = append(encoded, field, string(blob))
	}
	if err := m.rdb.HSet(ctx, userKey(userID), encoded...).Err(); err != nil {
		return fmt.Errorf("patch user %s: %w", userID, err)
	}
	return m.notify(ctx, userID)
}

func (m *RedisMirror) notify(ctx context.Context, userID string) error {
	if err := m.rdb.Publish(ctx, changeChannel(userID), "changed").Err(); err != nil {
		return fmt.Errorf("publish change for user %s: %w", userID, err)
	}
	return nil
}

// Subscribe reads the current document, delivers it, then re-reads and
// re-delivers on every change message until cancelled. Delivery includes
// echoes of this process's own writes; the store's wholesale-replace
// handling makes those echoes converge instead of loop.
func (m *RedisMirror) Subscribe(ctx context.Context, userID string, fn func(Document)) (CancelFunc, error) {
	doc, found, err := m.readDocument(ctx, userID)
	if err != nil {
		return nil, err
	}

	pubsub := m.rdb.Subscribe(ctx, changeChannel(userID))
	// Force the subscription to be established before the first delivery so
	// no change between read and subscribe is lost silently.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe user %s: %w", userID, err)
	}

	if found {
		fn(doc)
	}

	go func() {
		for range pubsub.Channel() {
			doc, found, err := m.readDocument(context.Background(), userID)
			if err != nil {
				m.logger.Warn("Failed to read remote document after change",
					zap.String("user_id", userID),
					zap.Error(err),
				)
				continue
			}
			if found {
				fn(doc)
			}
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}

func (m *RedisMirror) readDocument(ctx context.Context, userID string) (Document, bool, error) {
	raw, err := m.rdb.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return Document{}, false, fmt.Errorf("read user %s: %w", userID, err)
	}
	if len(raw) == 0 {
		return Document{}, false, nil
	}

	var doc Document
	if blob, ok := raw[FieldTasks]; ok {
		if err := json.Unmarshal([]byte(blob), &doc.Tasks); err != nil {
			m.logger.Warn("Skipping corrupt remote tasks", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if blob, ok := raw[FieldTimer]; ok {
		if err := json.Unmarshal([]byte(blob), &doc.Timer); err != nil {
			m.logger.Warn("Skipping corrupt remote timer", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if blob, ok := raw[FieldProjects]; ok {
		if err := json.Unmarshal([]byte(blob), &doc.Projects); err != nil {
			m.logger.Warn("Skipping corrupt remote projects", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if blob, ok := raw[FieldCategories]; ok {
		if err := json.Unmarshal([]byte(blob), &doc.Categories); err != nil {
			m.logger.Warn("Skipping corrupt remote categories", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return doc, true, nil
}
