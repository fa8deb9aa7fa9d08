package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fashionhub/auth-service/internal/domain"
)

// RevocationLedger implements auth.RevocationLedger on Redis:
//   - bl:<token>  -> "<uid>:<reason>", TTL = time until the token's own exp.
//     Redis expiry is the purge: once the token would be rejected by
//     signature verification anyway, its entry evaporates on its own.
//   - bluser:<uid> -> SET of that user's registered tokens, used for bulk
//     revocation. Members whose bl: key already expired simply count for
//     nothing when the set is drained.
type RevocationLedger struct {
	rdb *goredis.Client

	tokenPrefix string
	userPrefix  string
}

func NewRevocationLedger(c *Client) *RevocationLedger {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &RevocationLedger{
		rdb:         rdb,
		tokenPrefix: "bl:",
		userPrefix:  "bluser:",
	}
}

// Revoke registers the token until expiresAt. SetNX makes duplicate calls
// land on "already revoked" instead of an error. A token already past its
// expiry is skipped: signature verification rejects it without our help.
func (l *RevocationLedger) Revoke(ctx context.Context, token, userID string, reason domain.RevocationReason, expiresAt time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrMissingField("token")
	}
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingField("user_id")
	}
	if l.rdb == nil {
		return errors.New("redis revocation ledger not configured")
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := l.rdb.SetNX(ctx, l.tokenPrefix+token, userID+":"+string(reason), ttl).Err(); err != nil {
		return domain.ErrLedgerUnavailable(err)
	}

	userKey := l.userPrefix + userID
	pipe := l.rdb.Pipeline()
	pipe.SAdd(ctx, userKey, token)
	// keep the index alive at least as long as its longest-lived member
	pipe.ExpireGT(ctx, userKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.ErrLedgerUnavailable(err)
	}
	return nil
}

func (l *RevocationLedger) IsRevoked(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	if l.rdb == nil {
		return false, errors.New("redis revocation ledger not configured")
	}

	n, err := l.rdb.Exists(ctx, l.tokenPrefix+token).Result()
	if err != nil {
		return false, domain.ErrLedgerUnavailable(err)
	}
	return n > 0, nil
}

// RevokeAll drains the user's index set and deletes every live entry,
// returning how many were actually removed. Atomic so a concurrent Revoke
// is either fully counted or lands after the sweep.
func (l *RevocationLedger) RevokeAll(ctx context.Context, userID string, reason domain.RevocationReason) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, domain.ErrMissingField("user_id")
	}
	if l.rdb == nil {
		return 0, errors.New("redis revocation ledger not configured")
	}

	const lua = `
local toks = redis.call("SMEMBERS", KEYS[1])
local n = 0
for i = 1, #toks do
  n = n + redis.call("DEL", ARGV[1] .. toks[i])
end
redis.call("DEL", KEYS[1])
return n
`
	res, err := l.rdb.Eval(ctx, lua, []string{l.userPrefix + userID}, l.tokenPrefix).Result()
	if err != nil {
		return 0, domain.ErrLedgerUnavailable(err)
	}
	n, ok := res.(int64)
	if !ok {
		return 0, domain.ErrLedgerUnavailable(errors.New("unexpected eval result"))
	}
	return int(n), nil
}
