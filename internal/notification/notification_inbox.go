package notification

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	inboxKeyPrefix = "notifications:inbox:"
	HRInboxKey     = inboxKeyPrefix + "hr"
)

func InboxKey(employeeID string) string {
	return inboxKeyPrefix + "employee:" + employeeID
}

// KeyFor returns the inbox a message is delivered to.
func KeyFor(msg Message) string {
	if msg.Audience == AudienceHR || msg.RecipientID == "" {
		return HRInboxKey
	}
	return InboxKey(msg.RecipientID)
}

type Inbox interface {
	Push(ctx context.Context, msg Message) error
	List(ctx context.Context, key string, limit int) ([]Message, error)
}

type redisInbox struct {
	rdb  *redis.Client
	size int
}

// NewRedisInbox keeps at most size messages per inbox, newest first.
func NewRedisInbox(rdb *redis.Client, size int) Inbox {
	if size <= 0 {
		size = 50
	}
	return &redisInbox{rdb: rdb, size: size}
}

func (i *redisInbox) Push(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	key := KeyFor(msg)
	_, err = i.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, key, string(payload))
		p.LTrim(ctx, key, 0, int64(i.size-1))
		return nil
	})
	return err
}

func (i *redisInbox) List(ctx context.Context, key string, limit int) ([]Message, error) {
	if limit <= 0 || limit > i.size {
		limit = i.size
	}

	raw, err := i.rdb.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	msgs := make([]Message, 0, len(raw))
	for _, r := range raw {
		var m Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
