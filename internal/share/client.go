package share

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
)

// Follow connects to a shared board and hands every message to apply until
// ctx is cancelled or the host goes away. apply runs on Follow's goroutine.
func Follow(ctx context.Context, url string, apply func(Message)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read from host: %w", err)
		}
		apply(msg)
	}
}
