package cuesheet

import "fmt"

// FramesPerSecond is the CD frame rate used by INDEX times.
const FramesPerSecond = 75

// Sheet is a parsed CUE sheet.
type Sheet struct {
	Title     string
	Performer string
	Tracks    []Track
}

// DataFile returns the audio file reference of the first track.
func (s *Sheet) DataFile() string {
	if s == nil || len(s.Tracks) == 0 {
		return ""
	}
	return s.Tracks[0].DataFile
}

// Track is one TRACK entry.
type Track struct {
	Number    int
	Title     string
	Performer string
	// DataFile is the FILE in effect when the track was declared.
	DataFile string
	Indices  []IndexMark
}

// IndexMark is one INDEX entry of a track.
type IndexMark struct {
	Number  int
	Minutes int
	Seconds int
	Frames  int
}

// Offset returns the position in whole seconds. Frames are dropped.
func (m IndexMark) Offset() int {
	return m.Minutes*60 + m.Seconds
}

// String renders the mark in CUE notation.
func (m IndexMark) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", m.Minutes, m.Seconds, m.Frames)
}

// Display renders the mark for humans, keeping frames as a fraction.
func (m IndexMark) Display() string {
	return fmt.Sprintf("00:%02d:%02d.%02d", m.Minutes, m.Seconds, m.Frames)
}
