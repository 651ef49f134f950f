package highlight

import (
	"encoding/xml"
	"fmt"
	"io"
)

// decodePlist parses the minimal subset of Apple's property-list XML
// format tmTheme files use: a top-level <dict> whose values are strings,
// booleans, or nested dicts/arrays of the same. There's no stdlib or
// third-party plist decoder in the corpus; the format is small enough
// that walking encoding/xml's token stream by hand covers it without a
// new dependency.
func decodePlist(r io.Reader) (map[string]interface{}, error) {
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("plist: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "plist":
			continue
		case "dict":
			return decodePlistDict(dec)
		default:
			if err := skipPlistElement(dec, start.Name); err != nil {
				return nil, err
			}
		}
	}
}

// decodePlistDict reads the contents of a <dict> already consumed up to
// (but not past) its opening tag, alternating <key> elements with a
// following value element, until the matching </dict>.
func decodePlistDict(dec *xml.Decoder) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	var pendingKey string
	haveKey := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("plist: dict: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "key" {
				key, err := decodePlistCharData(dec)
				if err != nil {
					return nil, err
				}
				pendingKey, haveKey = key, true
				continue
			}
			val, err := decodePlistValue(dec, t)
			if err != nil {
				return nil, err
			}
			if haveKey {
				out[pendingKey] = val
				haveKey = false
			}
		case xml.EndElement:
			if t.Name.Local == "dict" {
				return out, nil
			}
		}
	}
}

// decodePlistArray reads the contents of a <array> already consumed up
// to its opening tag, until the matching </array>.
func decodePlistArray(dec *xml.Decoder) ([]interface{}, error) {
	var out []interface{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("plist: array: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			val, err := decodePlistValue(dec, t)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		case xml.EndElement:
			if t.Name.Local == "array" {
				return out, nil
			}
		}
	}
}

// decodePlistValue dispatches on start's element name to decode the
// value that follows a <key>, or an <array> element.
func decodePlistValue(dec *xml.Decoder, start xml.StartElement) (interface{}, error) {
	switch start.Name.Local {
	case "dict":
		return decodePlistDict(dec)
	case "array":
		return decodePlistArray(dec)
	case "string":
		return decodePlistCharData(dec)
	case "true":
		return true, skipToEnd(dec, start.Name)
	case "false":
		return false, skipToEnd(dec, start.Name)
	case "integer":
		s, err := decodePlistCharData(dec)
		return s, err
	default:
		return nil, skipPlistElement(dec, start.Name)
	}
}

// decodePlistCharData reads character data up to the matching end
// element for the element whose start tag has just been consumed.
func decodePlistCharData(dec *xml.Decoder) (string, error) {
	var text string
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("plist: chardata: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text += string(t)
		case xml.EndElement:
			return text, nil
		}
	}
}

// skipToEnd discards tokens up to and including the end element
// matching name, for self-describing empty elements like <true/>.
func skipToEnd(dec *xml.Decoder, name xml.Name) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("plist: skip %s: %w", name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name == name {
				depth++
			}
		case xml.EndElement:
			if t.Name == name {
				if depth == 0 {
					return nil
				}
				depth--
			}
		}
	}
}

// skipPlistElement discards a whole element subtree whose start tag has
// just been consumed, for plist value kinds this decoder has no use for
// (real, date, data).
func skipPlistElement(dec *xml.Decoder, name xml.Name) error {
	return skipToEnd(dec, name)
}
