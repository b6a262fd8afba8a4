package subtext

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// sampleLimit bounds how much of a subtitle file is read for detection. The
// first line is almost always enough to distinguish the encodings ffmpeg is
// asked to convert from.
const sampleLimit = 4096

// DetectFile guesses the character encoding of the subtitle file at path by
// examining its first line. It returns "" when no confident guess can be
// made, in which case the caller must supply an encoding explicitly.
func DetectFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read subtitle file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	sample := make([]byte, 0, sampleLimit)
	for len(sample) < sampleLimit {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}
		if b == '\n' {
			break
		}
		sample = append(sample, b)
	}
	return Detect(sample), nil
}

// Detect guesses the character encoding of a sample of subtitle text. The
// checks run in confidence order: byte order marks, UTF-8 validity, then the
// single-byte Latin encodings. An empty sample is indeterminate.
func Detect(sample []byte) string {
	if len(sample) == 0 {
		return ""
	}
	if enc := bomEncoding(sample); enc != "" {
		return enc
	}
	if utf8.Valid(sample) {
		return "utf-8"
	}
	if decodableWindows1252(sample) {
		return "windows-1252"
	}
	return "iso-8859-1"
}

func bomEncoding(sample []byte) string {
	switch {
	case bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8"
	case bytes.HasPrefix(sample, []byte{0xFF, 0xFE}):
		return "utf-16le"
	case bytes.HasPrefix(sample, []byte{0xFE, 0xFF}):
		return "utf-16be"
	}
	return ""
}

// decodableWindows1252 reports whether every byte of the sample maps to a
// defined Windows-1252 character. The codepage leaves a handful of slots in
// the 0x80..0x9F block undefined; a file using those bytes is treated as
// ISO-8859-1 instead.
func decodableWindows1252(sample []byte) bool {
	usesExtendedBlock := false
	for _, b := range sample {
		if b >= 0x80 && b <= 0x9F {
			usesExtendedBlock = true
		}
		r := charmap.Windows1252.DecodeByte(b)
		if r == utf8.RuneError {
			return false
		}
	}
	return usesExtendedBlock
}
