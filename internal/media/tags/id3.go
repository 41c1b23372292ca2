package tags

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2"
)

// CueSheetDescription is the TXXX description carrying an embedded sheet.
const CueSheetDescription = "CUESHEET"

// ReadID3CueSheet returns the text of the first TXXX:CUESHEET frame in path.
// The boolean is false when the file has no such frame.
func ReadID3CueSheet(path string) (string, bool, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return "", false, fmt.Errorf("open id3 tag: %w", err)
	}
	defer tag.Close()

	for _, frame := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		udtf, ok := frame.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(udtf.Description), CueSheetDescription) {
			continue
		}
		if strings.TrimSpace(udtf.Value) == "" {
			continue
		}
		return udtf.Value, true, nil
	}
	return "", false, nil
}

// WriteID3CueSheet appends sheet as a TXXX:CUESHEET frame, creating the tag
// when the file has none.
func WriteID3CueSheet(path, sheet string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open id3 tag: %w", err)
	}
	defer tag.Close()

	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: CueSheetDescription,
		Value:       sheet,
	})
	if err := tag.Save(); err != nil {
		return fmt.Errorf("save id3 tag: %w", err)
	}
	return nil
}
