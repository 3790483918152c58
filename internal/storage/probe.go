// ABOUTME: Reachability check for a post API base address.
// ABOUTME: Fetches the post list once and confirms it decodes as a JSON array.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// probeTimeout bounds how long Probe waits for the API.
const probeTimeout = 10 * time.Second

// Probe confirms that base answers GET /posts with a JSON array.
func (r *RemoteClient) Probe(ctx context.Context, base string) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	base = strings.TrimRight(base, "/")

	var posts []json.RawMessage
	if err := r.Get(ctx, base, "/posts", &posts); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}
	return nil
}
