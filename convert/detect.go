package convert

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUnknown:
		return "unknown"
	case encUTF8:
		return "UTF-8"
	case encUTF16BigEndian:
		return "UTF-16BE"
	case encUTF16LittleEndian:
		return "UTF-16LE"
	case encUTF32BigEndian:
		return "UTF-32BE"
	case encUTF32LittleEndian:
		return "UTF-32LE"
	default:
		return fmt.Sprintf("srcEncoding(%d)", int(e))
	}
}

// bomLength is enough to recognize any BOM.
const bomLength = 4

func isUTF8BOM3(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0xEF, 0xBB, 0xBF})
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0xFE, 0xFF})
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0xFF, 0xFE})
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0x00, 0x00, 0xFE, 0xFF})
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte{0xFF, 0xFE, 0x00, 0x00})
}

// detectUTF looks for BOM. UTF-32LE BOM starts with UTF-16LE one, so longer
// marks are checked first.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	default:
		return encUnknown
	}
}

// selectReader wraps r with decoder for detected encoding, BOM is consumed by
// decoder.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	default:
		// this should never happen
		panic(fmt.Sprintf("unsupported source encoding %d", enc))
	}
}

// decodeSource returns UTF-8 reader for source. Sources starting with BOM are
// decoded accordingly, the rest with fallback (nil fallback means source is
// already UTF-8).
func decodeSource(r io.Reader, fallback encoding.Encoding) (io.Reader, srcEncoding, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(bomLength)
	if err != nil && err != io.EOF {
		return nil, encUnknown, fmt.Errorf("unable to read source: %w", err)
	}

	enc := detectUTF(head)
	if enc == encUnknown && fallback != nil {
		return transform.NewReader(br, fallback.NewDecoder()), enc, nil
	}
	return selectReader(br, enc), enc, nil
}

// isArchiveFile checks file content rather than extension.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// filetype needs at most 262 bytes to recognize anything
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// isSourceName checks name extension against configured list, case is
// ignored.
func isSourceName(name string, exts []string) bool {
	ext := filepath.Ext(name)
	return ext != "" && slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
