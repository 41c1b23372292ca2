package splitplan

import (
	"time"

	"cuesplit/internal/cuesheet"
)

// Boundary is the time range of one track inside the album stream.
type Boundary struct {
	Start    time.Duration
	Duration time.Duration
	// ToEnd marks the last track, which runs to the end of the stream.
	ToEnd bool
}

// ResolveBoundary derives a track's range from its first index and the first
// index of the following track. Pass nil next for the last track.
func ResolveBoundary(current, next []cuesheet.IndexMark) (Boundary, error) {
	if len(current) == 0 {
		return Boundary{}, ErrNoIndex
	}
	start := current[0].Offset()
	b := Boundary{Start: seconds(start)}
	if len(next) == 0 {
		b.ToEnd = true
		return b, nil
	}
	delta := next[0].Offset() - start
	if delta < 0 {
		delta = -delta
	}
	b.Duration = seconds(delta)
	return b, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
