package idgen

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULID returns a ULID for the current time. ULIDs sort by creation time.
func ULID() string {
	var (
		now     = time.Now()
		entropy = rand.New(rand.NewSource(now.UnixNano()))
		id      = ulid.MustNew(ulid.Timestamp(now), entropy)
	)
	return id.String()
}

// Sequence returns a Generator producing prefix1, prefix2, ... Useful in tests
// that need predictable IDs.
func Sequence(prefix string) Generator {
	var n atomic.Uint64
	return func() string {
		return prefix + strconv.FormatUint(n.Add(1), 10)
	}
}
