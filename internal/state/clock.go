package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	sessionID string = uuid.NewString()
	revision  uint64
)

func nextRevision() uint64 {
	return atomic.AddUint64(&revision, 1)
}

// SessionID identifies this editor process, e.g. to viewers of a shared board.
func SessionID() string {
	return sessionID
}
