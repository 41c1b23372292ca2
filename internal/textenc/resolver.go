package textenc

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"cuesplit/internal/logging"
)

// DefaultMinConfidence is the detector confidence below which results are ignored.
const DefaultMinConfidence = 10

const charsetUTF8 = "UTF-8"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// detectorAliases maps detector charset names that the WHATWG and IANA
// registries spell differently.
var detectorAliases = map[string]string{
	"GB-18030": "gb18030",
}

// Result is the outcome of decoding a byte buffer.
type Result struct {
	Text       string
	Charset    string
	Confidence int
	// Detected is false when the text fell back to lossy UTF-8 decoding.
	Detected bool
}

// Resolver decodes CUE sheet bytes into Unicode text.
type Resolver struct {
	minConfidence int
	detector      *chardet.Detector
	logger        *slog.Logger
}

// New constructs a Resolver. A negative minConfidence selects the default.
func New(minConfidence int, logger *slog.Logger) *Resolver {
	if minConfidence < 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Resolver{
		minConfidence: minConfidence,
		detector:      chardet.NewTextDetector(),
		logger:        logging.NewComponentLogger(logger, "textenc"),
	}
}

// ReadFile reads the whole file into memory and decodes it.
func (r *Resolver) ReadFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read cue file: %w", err)
	}
	return r.Decode(data), nil
}

// Decode converts buf to text. It never fails.
func (r *Resolver) Decode(buf []byte) Result {
	if res, ok := decodeBOM(buf); ok {
		return res
	}
	if utf8.Valid(buf) {
		return Result{Text: string(buf), Charset: charsetUTF8, Confidence: 100, Detected: true}
	}

	candidates, err := r.detector.DetectAll(buf)
	if err != nil {
		r.logger.Debug("charset detection failed", logging.Error(err))
	}
	for _, candidate := range candidates {
		if candidate.Confidence < r.minConfidence {
			continue
		}
		enc := lookupEncoding(candidate.Charset)
		if enc == nil {
			r.logger.Debug("detected charset has no decoder", logging.String("charset", candidate.Charset))
			continue
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), buf)
		if err != nil {
			r.logger.Debug("decode with detected charset failed",
				logging.String("charset", candidate.Charset),
				logging.Error(err),
			)
			continue
		}
		return Result{
			Text:       string(decoded),
			Charset:    candidate.Charset,
			Confidence: candidate.Confidence,
			Detected:   true,
		}
	}

	r.logger.Debug("no confident charset; decoding as UTF-8 with replacement",
		logging.Int("candidates", len(candidates)),
	)
	return Result{Text: lossyUTF8(buf), Charset: charsetUTF8}
}

func decodeBOM(buf []byte) (Result, bool) {
	var enc encoding.Encoding
	var name string
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return Result{Text: lossyUTF8(buf[len(bomUTF8):]), Charset: charsetUTF8, Confidence: 100, Detected: true}, true
	case bytes.HasPrefix(buf, bomUTF16LE):
		enc, name = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), "UTF-16LE"
	case bytes.HasPrefix(buf, bomUTF16BE):
		enc, name = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), "UTF-16BE"
	default:
		return Result{}, false
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), buf)
	if err != nil {
		return Result{}, false
	}
	return Result{Text: string(decoded), Charset: name, Confidence: 100, Detected: true}, true
}

func lookupEncoding(name string) encoding.Encoding {
	label := strings.TrimSpace(name)
	if alias, ok := detectorAliases[label]; ok {
		label = alias
	}
	if enc, _ := charset.Lookup(label); enc != nil {
		return enc
	}
	if enc, err := ianaindex.IANA.Encoding(label); err == nil && enc != nil {
		return enc
	}
	return nil
}

func lossyUTF8(buf []byte) string {
	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), buf)
	if err != nil {
		return strings.ToValidUTF8(string(buf), string(utf8.RuneError))
	}
	return string(decoded)
}
