package room

import (
	"bytes"
	"context"
	"encoding/json"
	"time"
)

// viewPollInterval is how often a subscription recomputes its projection.
const viewPollInterval = 500 * time.Millisecond

// Stream runs a long-lived per-username subscription: it recomputes the
// viewer's projection at ~2 Hz and calls emit only when the projection
// changed since the last emission, so subscribers never receive duplicate
// views. The stream ends when ctx is cancelled, emit fails, or the viewer
// stops being a room member (ErrUnknownUser).
func (r *Room) Stream(ctx context.Context, username string, emit func(View) error) error {
	var last []byte
	ticker := time.NewTicker(viewPollInterval)
	defer ticker.Stop()
	for {
		v, err := r.View(username)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if !bytes.Equal(encoded, last) {
			if err := emit(v); err != nil {
				return err
			}
			last = encoded
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
