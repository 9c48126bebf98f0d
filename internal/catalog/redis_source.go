package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/redis/go-redis/v9"
)

// RedisSource keeps JSON documents in Redis so several generator processes
// can share one imported content set. Documents live at
// <prefix>:<key> and every stored key is indexed in the <prefix>:keys set.
type RedisSource struct {
	client *redis.Client
	prefix string
}

// NewRedisSource creates a source over client using prefix for its keys
func NewRedisSource(client *redis.Client, prefix string) *RedisSource {
	if prefix == "" {
		prefix = "catalog"
	}
	return &RedisSource{client: client, prefix: prefix}
}

func (r *RedisSource) docKey(key Key) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisSource) indexKey() string {
	return fmt.Sprintf("%s:keys", r.prefix)
}

// Get implements Source.Get
func (r *RedisSource) Get(ctx context.Context, key Key) (*Resource, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, r.docKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, rcerr.NotFoundf("document %s not found", key)
		}
		return nil, rcerr.Wrapf(err, "failed to get %s from Redis", key)
	}

	return &Resource{
		Key:      key,
		Format:   FormatJSON,
		Location: "redis:" + r.docKey(key),
		Data:     data,
	}, nil
}

// Put implements Writer.Put
func (r *RedisSource) Put(ctx context.Context, key Key, doc *Node) error {
	if err := key.Validate(); err != nil {
		return err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return rcerr.Wrapf(err, "failed to encode %s", key)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.docKey(key), string(data), 0)
	pipe.SAdd(ctx, r.indexKey(), key.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return rcerr.Wrapf(err, "failed to put %s in Redis", key)
	}
	return nil
}

// List implements Lister.List from the key index
func (r *RedisSource) List(ctx context.Context) ([]Key, error) {
	members, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, rcerr.Wrap(err, "failed to list documents in Redis")
	}
	sort.Strings(members)

	keys := make([]Key, 0, len(members))
	for _, m := range members {
		key, err := ParseKey(m)
		if err != nil {
			return nil, rcerr.Wrapf(err, "bad index entry %q", m)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
