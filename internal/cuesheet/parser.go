package cuesheet

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrEmptySheet   = errors.New("cue sheet is empty")
	ErrNoTracks     = errors.New("cue sheet declares no tracks")
	ErrMissingIndex = errors.New("track has no index")
)

// Parser turns CUE text into a Sheet.
type Parser interface {
	Parse(text string) (*Sheet, error)
}

var (
	reCommand = regexp.MustCompile(`^\s*([A-Za-z]+)(?:\s+(.*?))?\s*$`)
	reTrack   = regexp.MustCompile(`^(\d+)`)
	reIndex   = regexp.MustCompile(`^(\d+)\s+(\d+):(\d{1,2}):(\d{1,2})$`)
)

// LineParser is the default Parser. It reads one command per line; command
// words are case-insensitive.
type LineParser struct{}

// Parse implements Parser.
func (LineParser) Parse(text string) (*Sheet, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptySheet
	}

	sheet := &Sheet{}
	file := ""
	var current *Track

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		match := reCommand.FindStringSubmatch(strings.TrimRight(scanner.Text(), "\r"))
		if match == nil {
			continue
		}
		command, args := strings.ToUpper(match[1]), match[2]

		switch command {
		case "FILE":
			file = fileName(args)
		case "TRACK":
			number := reTrack.FindString(args)
			if number == "" {
				return nil, fmt.Errorf("line %d: malformed track %q", lineNo, args)
			}
			n, err := strconv.Atoi(number)
			if err != nil {
				return nil, fmt.Errorf("line %d: track number: %w", lineNo, err)
			}
			sheet.Tracks = append(sheet.Tracks, Track{Number: n, DataFile: file})
			current = &sheet.Tracks[len(sheet.Tracks)-1]
		case "INDEX":
			if current == nil {
				return nil, fmt.Errorf("line %d: INDEX outside of a track", lineNo)
			}
			mark, err := parseIndex(args)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.Indices = append(current.Indices, mark)
		case "TITLE":
			value := quotedValue(args)
			if current == nil {
				sheet.Title = value
			} else {
				current.Title = value
			}
		case "PERFORMER":
			value := quotedValue(args)
			if current == nil {
				sheet.Performer = value
			} else {
				current.Performer = value
			}
		default:
			// REM, CATALOG, FLAGS, PREGAP, SONGWRITER and friends are not needed.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan cue sheet: %w", err)
	}

	if len(sheet.Tracks) == 0 {
		return nil, ErrNoTracks
	}
	for _, track := range sheet.Tracks {
		if len(track.Indices) == 0 {
			return nil, fmt.Errorf("track %02d: %w", track.Number, ErrMissingIndex)
		}
	}
	return sheet, nil
}

// quotedValue returns the text between the first and the last double quote,
// so quotes inside the value survive. Unquoted values are returned trimmed.
func quotedValue(args string) string {
	args = strings.TrimSpace(args)
	if !strings.HasPrefix(args, `"`) {
		return args
	}
	if last := strings.LastIndex(args, `"`); last > 0 {
		return strings.TrimSpace(args[1:last])
	}
	return strings.TrimSpace(args[1:])
}

// fileName drops the trailing file type from a FILE argument.
func fileName(args string) string {
	args = strings.TrimSpace(args)
	if strings.HasPrefix(args, `"`) {
		return quotedValue(args)
	}
	if fields := strings.Fields(args); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func parseIndex(args string) (IndexMark, error) {
	match := reIndex.FindStringSubmatch(args)
	if match == nil {
		return IndexMark{}, fmt.Errorf("malformed index %q", args)
	}
	values := make([]int, 4)
	for i := range values {
		v, err := strconv.Atoi(match[i+1])
		if err != nil {
			return IndexMark{}, fmt.Errorf("malformed index %q: %w", args, err)
		}
		values[i] = v
	}
	mark := IndexMark{Number: values[0], Minutes: values[1], Seconds: values[2], Frames: values[3]}
	if mark.Seconds >= 60 || mark.Frames >= FramesPerSecond {
		return IndexMark{}, fmt.Errorf("index %s out of range", mark)
	}
	return mark, nil
}
