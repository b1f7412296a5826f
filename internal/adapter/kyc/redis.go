package kyc

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const verifiedSetKey = "kyc:verified_businesses"

// RedisVerifier answers the "may this business upload invoices" predicate
// from a redis set maintained by the external KYC service.
type RedisVerifier struct{ rdb *redis.Client }

func NewRedisVerifier(rdb *redis.Client) *RedisVerifier { return &RedisVerifier{rdb: rdb} }

func (v *RedisVerifier) IsVerified(ctx context.Context, businessID string) (bool, error) {
	return v.rdb.SIsMember(ctx, verifiedSetKey, businessID).Result()
}

// MarkVerified adds a business to the set. Reached through the admin
// verify endpoint; the external KYC service writes the same key.
func (v *RedisVerifier) MarkVerified(ctx context.Context, businessID string) error {
	return v.rdb.SAdd(ctx, verifiedSetKey, businessID).Err()
}
