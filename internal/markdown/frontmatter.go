package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// ErrMetadataInvalid marks a metadata block that could not be decoded.
var ErrMetadataInvalid = errors.New("markdown: metadata block invalid")

// ParseMetadata extracts the metadata block and the body from source. YAML
// (---), TOML (+++) and JSON blocks are supported. A document without a block
// yields an empty map and the full source as body. When a delimited block
// cannot be decoded the body after its closing delimiter is still returned.
func ParseMetadata(source []byte) (map[string]any, []byte, error) {
	raw := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(source), &raw)
	if err != nil {
		return map[string]any{}, skipBlock(source), fmt.Errorf("%w: %v", ErrMetadataInvalid, err)
	}

	return normalizeMap(raw), body, nil
}

// skipBlock drops a leading --- or +++ delimited block. Source without a
// closed block is returned unchanged.
func skipBlock(source []byte) []byte {
	for _, delim := range []string{"---", "+++"} {
		rest, ok := bytes.CutPrefix(source, []byte(delim+"\n"))
		if !ok {
			rest, ok = bytes.CutPrefix(source, []byte(delim+"\r\n"))
		}
		if !ok {
			continue
		}
		for offset := 0; offset < len(rest); {
			end := bytes.IndexByte(rest[offset:], '\n')
			line := rest[offset:]
			next := len(rest)
			if end >= 0 {
				line = rest[offset : offset+end]
				next = offset + end + 1
			}
			if string(bytes.TrimRight(line, "\r")) == delim {
				return rest[next:]
			}
			offset = next
		}
		return source
	}
	return source
}

// Document is a parsed content file: raw metadata, body, and the normalised record.
type Document struct {
	Path        string
	Locale      string
	Frontmatter map[string]any
	Body        []byte
	Record      interfaces.ArticleRecord
}

// BuildDocument parses source and normalises its metadata. The returned
// document is never nil: when the metadata block cannot be decoded the record
// is fully defaulted, carries a warning, and the error is returned alongside
// so callers can decide whether a broken block is fatal.
func BuildDocument(path, locale, fallbackSlug string, source []byte) (*Document, error) {
	raw, body, parseErr := ParseMetadata(source)

	record := NormalizeMetadata(raw, fallbackSlug)
	record.Locale = locale
	record.Path = path
	if parseErr != nil {
		record.Warnings = append([]interfaces.MetadataWarning{{
			Message: parseErr.Error(),
		}}, record.Warnings...)
	}

	return &Document{
		Path:        path,
		Locale:      locale,
		Frontmatter: raw,
		Body:        body,
		Record:      record,
	}, parseErr
}

// normalizeMap converts the map[interface{}]interface{} values produced by the
// YAML decoder into map[string]any so the metadata can be encoded as JSON.
func normalizeMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
