package testsupport

import (
	"fmt"
	"strings"
)

// SheetTrack describes one track of a generated CUE sheet.
type SheetTrack struct {
	Title     string
	Performer string
	// Index is the INDEX 01 time in mm:ss:ff notation.
	Index string
}

// CueSheet renders a minimal CUE sheet referencing dataFile.
func CueSheet(title, performer, dataFile string, tracks ...SheetTrack) string {
	var b strings.Builder
	fmt.Fprintf(&b, "REM COMMENT \"generated\"\n")
	if performer != "" {
		fmt.Fprintf(&b, "PERFORMER \"%s\"\n", performer)
	}
	fmt.Fprintf(&b, "TITLE \"%s\"\n", title)
	fmt.Fprintf(&b, "FILE \"%s\" WAVE\n", dataFile)
	for i, track := range tracks {
		fmt.Fprintf(&b, "  TRACK %02d AUDIO\n", i+1)
		fmt.Fprintf(&b, "    TITLE \"%s\"\n", track.Title)
		if track.Performer != "" {
			fmt.Fprintf(&b, "    PERFORMER \"%s\"\n", track.Performer)
		}
		fmt.Fprintf(&b, "    INDEX 01 %s\n", track.Index)
	}
	return b.String()
}

// ThreeTrackSheet is the common fixture: three tracks at 0:00, 3:45 and 8:12.
func ThreeTrackSheet(dataFile string) string {
	return CueSheet("Album", "Artist", dataFile,
		SheetTrack{Title: "First", Index: "00:00:00"},
		SheetTrack{Title: "Second", Index: "03:45:00"},
		SheetTrack{Title: "Third", Index: "08:12:00"},
	)
}
