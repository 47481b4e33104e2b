package lock

import (
    "context"
    "crypto/rand"
    "encoding/hex"
    "fmt"
    "sync"
    "time"

    "github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still carries our token, so
// a holder whose TTL expired cannot release someone else's lock.
var releaseScript = redis.NewScript(`
    if redis.call('GET', KEYS[1]) == ARGV[1] then
        return redis.call('DEL', KEYS[1])
    end
    return 0
`)

// Redis is a RoomLocker shared by every server instance.  The lock key
// expires after ttl so a crashed holder cannot block a room forever.
type Redis struct {
    rdb     *redis.Client
    prefix  string
    timeout time.Duration
    ttl     time.Duration
    retry   time.Duration
}

// NewRedis returns a Redis locker.  timeout bounds how long Acquire
// waits; ttl bounds how long a lock may be held.
func NewRedis(rdb *redis.Client, prefix string, timeout, ttl time.Duration) *Redis {
    if prefix == "" {
        prefix = "lock:room"
    }
    return &Redis{rdb: rdb, prefix: prefix, timeout: timeout, ttl: ttl, retry: 25 * time.Millisecond}
}

func (r *Redis) key(roomID uint64) string { return fmt.Sprintf("%s:%d", r.prefix, roomID) }

// Acquire polls SET NX until it wins or the deadline passes.
func (r *Redis) Acquire(ctx context.Context, roomID uint64) (Release, error) {
    token, err := randomToken(16)
    if err != nil {
        return nil, err
    }
    key := r.key(roomID)
    deadline := time.Now().Add(r.timeout)
    for {
        ok, err := r.rdb.SetNX(ctx, key, token, r.ttl).Result()
        if err != nil {
            return nil, fmt.Errorf("redis lock %s: %w", key, err)
        }
        if ok {
            break
        }
        if !time.Now().Add(r.retry).Before(deadline) {
            return nil, ErrTimeout
        }
        select {
        case <-time.After(r.retry):
        case <-ctx.Done():
            return nil, ErrTimeout
        }
    }
    var once sync.Once
    return func() {
        once.Do(func() {
            // The request context may already be cancelled; release regardless.
            ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
            defer cancel()
            _ = releaseScript.Run(ctx, r.rdb, []string{key}, token).Err()
        })
    }, nil
}

func randomToken(n int) (string, error) {
    b := make([]byte, n)
    if _, err := rand.Read(b); err != nil {
        return "", err
    }
    return hex.EncodeToString(b), nil
}
