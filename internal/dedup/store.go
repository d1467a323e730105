package dedup

import "context"

// Store suppresses duplicate comments within a process lifetime. There is
// no cross-run persistence: a rerun may repost what an earlier run posted.
type Store interface {
	Seen(ctx context.Context, key string) bool
	Mark(ctx context.Context, key string) error
}
