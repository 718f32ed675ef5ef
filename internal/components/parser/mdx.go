// Package parser extracts custom element tags from MDX-style document bodies.
package parser

import (
	"fmt"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

const placeholderFormat = "MDXCOMPONENT%dMARK"

// Placeholder returns the marker substituted for the component at index.
// Markers are plain alphanumerics so they survive markdown rendering in
// every mode.
func Placeholder(index int) string {
	return fmt.Sprintf(placeholderFormat, index)
}

// MDXParser recognises JSX-style tags whose name starts with an upper-case
// letter. Lower-case tags are ordinary HTML and are left alone, as is
// everything inside fenced or indented code blocks and inline code spans.
type MDXParser struct{}

// NewMDXParser creates a parser instance.
func NewMDXParser() *MDXParser {
	return &MDXParser{}
}

// Parse returns the components found in content.
func (p *MDXParser) Parse(content string) ([]interfaces.ParsedComponent, error) {
	_, components, err := p.Extract(content)
	return components, err
}

// Extract replaces every component with a placeholder. Nested components are
// extracted first, so an enclosing component's Inner holds the placeholders
// of its children and its index is always greater than theirs.
func (p *MDXParser) Extract(content string) (string, []interfaces.ParsedComponent, error) {
	type stackEntry struct {
		name       string
		startIndex int
		params     map[string]any
	}

	var (
		result     strings.Builder
		components []interfaces.ParsedComponent
		stack      []stackEntry
	)

	pos := 0
	lineStart := true
	// An indented code block cannot interrupt a paragraph, so it only opens
	// after a blank line.
	prevBlank, blank := true, true
	for pos < len(content) {
		if lineStart {
			if end, ok := fencedBlockEnd(content, pos); ok {
				result.WriteString(content[pos:end])
				pos = end
				prevBlank, blank = true, true
				continue
			}
			if prevBlank && len(stack) == 0 {
				if end, ok := indentedBlockEnd(content, pos); ok {
					result.WriteString(content[pos:end])
					pos = end
					prevBlank, blank = false, true
					continue
				}
			}
		}

		ch := content[pos]
		switch {
		case ch == '`':
			end := codeSpanEnd(content, pos)
			result.WriteString(content[pos:end])
			pos = end
			lineStart, blank = false, false
			continue

		case ch == '<' && pos+2 < len(content) && content[pos+1] == '/' && isUpper(content[pos+2]):
			name, end, err := scanClosingTag(content, pos)
			if err != nil {
				return "", nil, err
			}
			if len(stack) == 0 {
				return "", nil, fmt.Errorf("unexpected closing tag </%s> at offset %d", name, pos)
			}
			entry := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if entry.name != name {
				return "", nil, fmt.Errorf("mismatched closing tag </%s> at offset %d, expected </%s>", name, pos, entry.name)
			}

			buffered := result.String()
			inner := buffered[entry.startIndex:]
			result.Reset()
			result.WriteString(buffered[:entry.startIndex])
			result.WriteString(Placeholder(len(components)))

			components = append(components, interfaces.ParsedComponent{
				Name:   name,
				Params: entry.params,
				Inner:  dedent(inner),
			})
			pos = end
			lineStart, blank = false, false
			continue

		case ch == '<' && pos+1 < len(content) && isUpper(content[pos+1]):
			tag, end, err := scanOpeningTag(content, pos)
			if err != nil {
				return "", nil, err
			}
			if tag.selfClosing {
				result.WriteString(Placeholder(len(components)))
				components = append(components, interfaces.ParsedComponent{
					Name:        tag.name,
					Params:      tag.params,
					SelfClosing: true,
				})
			} else {
				stack = append(stack, stackEntry{
					name:       tag.name,
					startIndex: result.Len(),
					params:     tag.params,
				})
			}
			pos = end
			lineStart, blank = false, false
			continue
		}

		result.WriteByte(ch)
		switch ch {
		case '\n':
			prevBlank, blank = blank, true
		case ' ', '\t', '\r':
		default:
			blank = false
		}
		lineStart = ch == '\n'
		pos++
	}

	if len(stack) > 0 {
		return "", nil, fmt.Errorf("unterminated component <%s>", stack[len(stack)-1].name)
	}

	return result.String(), components, nil
}

type openingTag struct {
	name        string
	params      map[string]any
	selfClosing bool
}

func scanOpeningTag(content string, start int) (openingTag, int, error) {
	pos := start + 1
	nameEnd := pos
	for nameEnd < len(content) && isNameChar(content[nameEnd]) {
		nameEnd++
	}
	tag := openingTag{name: content[pos:nameEnd], params: map[string]any{}}
	pos = nameEnd

	for {
		pos = skipSpace(content, pos)
		if pos >= len(content) {
			return tag, 0, fmt.Errorf("unterminated tag <%s> at offset %d", tag.name, start)
		}

		switch content[pos] {
		case '>':
			return tag, pos + 1, nil
		case '/':
			if pos+1 < len(content) && content[pos+1] == '>' {
				tag.selfClosing = true
				return tag, pos + 2, nil
			}
			return tag, 0, fmt.Errorf("unexpected '/' in tag <%s> at offset %d", tag.name, pos)
		}

		if !isAttrStart(content[pos]) {
			return tag, 0, fmt.Errorf("unexpected %q in tag <%s> at offset %d", content[pos], tag.name, pos)
		}
		attrStart := pos
		for pos < len(content) && isAttrChar(content[pos]) {
			pos++
		}
		attr := content[attrStart:pos]

		pos = skipSpace(content, pos)
		if pos >= len(content) || content[pos] != '=' {
			tag.params[attr] = true
			continue
		}
		pos = skipSpace(content, pos+1)
		if pos >= len(content) {
			return tag, 0, fmt.Errorf("missing value for %s in tag <%s>", attr, tag.name)
		}

		value, end, err := scanAttrValue(content, pos)
		if err != nil {
			return tag, 0, fmt.Errorf("attribute %s of <%s>: %w", attr, tag.name, err)
		}
		tag.params[attr] = value
		pos = end
	}
}

func scanAttrValue(content string, pos int) (any, int, error) {
	switch quote := content[pos]; quote {
	case '"', '\'':
		end := strings.IndexByte(content[pos+1:], quote)
		if end < 0 {
			return nil, 0, fmt.Errorf("unterminated string at offset %d", pos)
		}
		return content[pos+1 : pos+1+end], pos + end + 2, nil
	case '{':
		end, err := expressionEnd(content, pos)
		if err != nil {
			return nil, 0, err
		}
		value, err := ParseExpression(content[pos+1 : end-1])
		if err != nil {
			return nil, 0, err
		}
		return value, end, nil
	default:
		return nil, 0, fmt.Errorf("unexpected %q at offset %d", quote, pos)
	}
}

// ParseExpression decodes a brace expression body as a JSON5 data literal:
// strings, numbers, booleans, null, arrays and objects, with unquoted keys,
// single quotes and trailing commas allowed. Nothing is evaluated.
func ParseExpression(body string) (any, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, fmt.Errorf("empty expression")
	}
	var value any
	if err := json5.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, fmt.Errorf("expression %q is not a data literal: %v", trimmed, err)
	}
	return value, nil
}

// expressionEnd returns the offset just past the brace matching content[start].
func expressionEnd(content string, start int) (int, error) {
	depth := 0
	var quote byte
	for pos := start; pos < len(content); pos++ {
		ch := content[pos]
		if quote != 0 {
			switch ch {
			case '\\':
				pos++
			case quote:
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'', '`':
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return pos + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated expression at offset %d", start)
}

func scanClosingTag(content string, start int) (string, int, error) {
	pos := start + 2
	nameEnd := pos
	for nameEnd < len(content) && isNameChar(content[nameEnd]) {
		nameEnd++
	}
	name := content[pos:nameEnd]
	pos = skipSpace(content, nameEnd)
	if pos >= len(content) || content[pos] != '>' {
		return name, 0, fmt.Errorf("malformed closing tag </%s> at offset %d", name, start)
	}
	return name, pos + 1, nil
}

// fencedBlockEnd reports whether a fenced code block opens at the line
// starting at pos and, if so, the offset just past its closing fence (or the
// end of content when the fence is never closed).
func fencedBlockEnd(content string, pos int) (int, bool) {
	char, width, ok := fenceAt(content, pos)
	if !ok {
		return 0, false
	}

	next := strings.IndexByte(content[pos:], '\n')
	if next < 0 {
		return len(content), true
	}
	cursor := pos + next + 1
	for cursor < len(content) {
		closeChar, closeWidth, isFence := fenceAt(content, cursor)
		lineEnd := strings.IndexByte(content[cursor:], '\n')
		if isFence && closeChar == char && closeWidth >= width {
			if lineEnd < 0 {
				return len(content), true
			}
			return cursor + lineEnd + 1, true
		}
		if lineEnd < 0 {
			break
		}
		cursor += lineEnd + 1
	}
	return len(content), true
}

// indentedBlockEnd reports whether an indented code block opens at the line
// starting at pos and, if so, the offset just past its last indented line.
// Blank lines inside the block are kept; trailing ones are left to the caller.
func indentedBlockEnd(content string, pos int) (int, bool) {
	end := pos
	for cursor := pos; cursor < len(content); {
		next := len(content)
		if idx := strings.IndexByte(content[cursor:], '\n'); idx >= 0 {
			next = cursor + idx + 1
		}
		line := content[cursor:next]
		switch {
		case strings.TrimSpace(line) == "":
			if end == pos {
				return 0, false
			}
		case indentWidth(line) >= 4:
			end = next
		default:
			return end, end > pos
		}
		cursor = next
	}
	return end, end > pos
}

// indentWidth returns the leading indentation in columns, with tabs
// advancing to the next multiple of four.
func indentWidth(line string) int {
	width := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			width++
		case '\t':
			width += 4 - width%4
		default:
			return width
		}
	}
	return width
}

func fenceAt(content string, pos int) (byte, int, bool) {
	indent := 0
	for pos < len(content) && content[pos] == ' ' && indent < 4 {
		pos++
		indent++
	}
	if indent > 3 || pos >= len(content) {
		return 0, 0, false
	}
	char := content[pos]
	if char != '`' && char != '~' {
		return 0, 0, false
	}
	width := 0
	for pos < len(content) && content[pos] == char {
		pos++
		width++
	}
	if width < 3 {
		return 0, 0, false
	}
	return char, width, true
}

// codeSpanEnd returns the offset past the inline code span opening at pos.
// An unmatched backtick run is literal text.
func codeSpanEnd(content string, pos int) int {
	width := 0
	for pos+width < len(content) && content[pos+width] == '`' {
		width++
	}
	cursor := pos + width
	for cursor < len(content) {
		idx := strings.IndexByte(content[cursor:], '`')
		if idx < 0 {
			break
		}
		runStart := cursor + idx
		run := 0
		for runStart+run < len(content) && content[runStart+run] == '`' {
			run++
		}
		if run == width {
			return runStart + run
		}
		cursor = runStart + run
	}
	return pos + width
}

// dedent strips the common leading indentation and the blank lines that
// surround children written on their own lines.
func dedent(inner string) string {
	lines := strings.Split(inner, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || indent < common {
			common = indent
		}
	}
	for i, line := range lines {
		if len(line) >= common {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func skipSpace(content string, pos int) int {
	for pos < len(content) {
		switch content[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func isUpper(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

func isNameChar(ch byte) bool {
	return isUpper(ch) || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_' || ch == '.'
}

func isAttrStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || isUpper(ch) || ch == '_'
}

func isAttrChar(ch byte) bool {
	return isAttrStart(ch) || (ch >= '0' && ch <= '9') || ch == '-' || ch == ':'
}

var _ interfaces.ComponentParser = (*MDXParser)(nil)
