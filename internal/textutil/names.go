package textutil

import (
	"fmt"
	"strings"

	"github.com/ryo-kagawa/go-utils/conditional"
)

// TrackExtension is appended to every planned track file name.
const TrackExtension = ".flac"

// TrackFileName composes "(NN) [Performer] Title.flac" and sanitizes it. The
// album performer stands in when the track has none.
func TrackFileName(number int, title, trackPerformer, albumPerformer string) string {
	performer := conditional.Value(
		strings.TrimSpace(trackPerformer) != "",
		trackPerformer,
		albumPerformer,
	)
	return SanitizeFileName(fmt.Sprintf("(%02d) [%s] %s%s", number, performer, title, TrackExtension))
}
