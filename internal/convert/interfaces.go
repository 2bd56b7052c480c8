package convert

import (
	"context"
	"time"
)

// DurationProber reads the length of a media file. media.Prober satisfies it.
type DurationProber interface {
	Probe(ctx context.Context, path string) (time.Duration, error)
}
