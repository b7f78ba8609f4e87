package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"contactbook/contact"
	"contactbook/errs"

	"github.com/redis/go-redis/v9"
)

// Records live at "contact:<id>". The id counter lives under the reserved
// "seq" tail, which is not a valid stringified id and so can never collide
// with a record key.
const (
	keyPrefix  = "contact"
	counterKey = keyPrefix + ":seq"
)

// ContactRepository implements contact.Repository on Redis. It holds no
// in-process state: the id counter is a Redis key bumped with INCR, so
// allocation stays atomic across concurrent callers and across restarts.
type ContactRepository struct {
	client *redis.Client
}

func NewContactRepository(client *redis.Client) *ContactRepository {
	return &ContactRepository{client: client}
}

func contactKey(id int) string {
	return fmt.Sprintf("%s:%d", keyPrefix, id)
}

// parseContactKey extracts the id from a record key. The counter key and any
// foreign key in the namespace fail the numeric parse and are rejected.
func parseContactKey(key string) (int, bool) {
	tail, ok := strings.CutPrefix(key, keyPrefix+":")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(tail)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (r *ContactRepository) NextID(ctx context.Context) (int, error) {
	n, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: incr %s: %w", counterKey, err)
	}
	return int(n), nil
}

func (r *ContactRepository) ListIDs(ctx context.Context) ([]int, error) {
	ids := []int{}
	iter := r.client.Scan(ctx, 0, keyPrefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if id, ok := parseContactKey(iter.Val()); ok {
			ids = append(ids, id)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis: scan contacts: %w", err)
	}
	return ids, nil
}

func (r *ContactRepository) GetContact(ctx context.Context, id int) (contact.Contact, error) {
	raw, err := r.client.Get(ctx, contactKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return contact.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact %d not found", id)
	}
	if err != nil {
		return contact.Contact{}, fmt.Errorf("redis: get contact %d: %w", id, err)
	}
	return decodeContact(raw, id)
}

func (r *ContactRepository) PutContact(ctx context.Context, c contact.Contact) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("redis: marshal contact %d: %w", c.ID, err)
	}
	if err := r.client.Set(ctx, contactKey(c.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis: set contact %d: %w", c.ID, err)
	}
	return nil
}

// DeleteContact removes the record and returns its last stored value.
// GETDEL makes the read-and-remove a single atomic step.
func (r *ContactRepository) DeleteContact(ctx context.Context, id int) (contact.Contact, error) {
	raw, err := r.client.GetDel(ctx, contactKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return contact.Contact{}, errs.Errorf(errs.ENOTFOUND, "contact %d not found", id)
	}
	if err != nil {
		return contact.Contact{}, fmt.Errorf("redis: getdel contact %d: %w", id, err)
	}
	return decodeContact(raw, id)
}

// decodeContact treats a present-but-undecodable value as a store error, not
// a not-found: only a truly absent key maps to ENOTFOUND.
func decodeContact(raw string, id int) (contact.Contact, error) {
	var c contact.Contact
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return contact.Contact{}, fmt.Errorf("redis: unmarshal contact %d: %w", id, err)
	}
	return c, nil
}
