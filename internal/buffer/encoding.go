package buffer

import (
	"golang.org/x/text/encoding/unicode"
)

// unicodeEncoding identifies a byte-order-marked encoding detected at the
// start of a document, adapted from the teacher's internal/fs/text.go BOM
// sniffing so the buffer package normalizes to UTF-8 before indexing
// rather than leaving that to the caller.
type unicodeEncoding int

const (
	encodingNone unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingNone
}

// normalizeEncoding strips a UTF-8 BOM or transcodes UTF-16 content to
// UTF-8. Content with no recognized BOM is returned unchanged, including
// content that simply isn't valid UTF-8 (that's what IsBinary and the
// line-access replacement-character fallback are for).
func normalizeEncoding(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	switch detectUnicodeEncoding(data) {
	case encodingUTF8BOM:
		return data[3:]
	case encodingUTF16LE:
		return decodeUTF16(data, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(data, unicode.BigEndian)
	default:
		return data
	}
}

func decodeUTF16(data []byte, endian unicode.Endianness) []byte {
	dec := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return data
	}
	return out
}
