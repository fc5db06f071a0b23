package snapshot

import (
	"sync/atomic"
	"time"
)

var lastSeq atomic.Int64

// NextSeq returns a strictly increasing write sequence derived from
// wall-clock nanoseconds. Stores refuse payloads older than the one they
// hold, so a retried save never replaces a newer snapshot.
func NextSeq() int64 {
	for {
		last := lastSeq.Load()
		next := time.Now().UnixNano()
		if next <= last {
			next = last + 1
		}
		if lastSeq.CompareAndSwap(last, next) {
			return next
		}
	}
}
