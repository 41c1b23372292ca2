package splitplan

import "errors"

var (
	// ErrCueParse wraps any failure of the CUE parser.
	ErrCueParse = errors.New("parse cue sheet")
	// ErrNoTracks reports a sheet that parsed but declares no tracks.
	ErrNoTracks = errors.New("cue sheet has no tracks")
	// ErrNoIndex reports a track without any INDEX mark.
	ErrNoIndex = errors.New("track has no index")
)
