package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// ErrNoFrontmatter marks a markdown file that does not start with a YAML
// header. Stores skip such files instead of failing the whole listing.
var ErrNoFrontmatter = errors.New("markdown: no frontmatter")

// Decode unmarshals the YAML header of content into meta and returns the body.
// CRLF line endings are accepted.
func Decode(content string, meta any) (string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, separator) {
		return content, ErrNoFrontmatter
	}
	rest := content[len(separator):]

	var raw, body string
	switch {
	case strings.HasPrefix(rest, separator):
		body = rest[len(separator):]
	case strings.Contains(rest, "\n"+separator):
		idx := strings.Index(rest, "\n"+separator)
		raw, body = rest[:idx], rest[idx+1+len(separator):]
	case strings.HasSuffix(rest, "\n---"):
		raw = strings.TrimSuffix(rest, "\n---")
	default:
		return "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}

	if err := yaml.Unmarshal([]byte(raw), meta); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return strings.TrimPrefix(body, "\n"), nil
}

// Encode renders meta as a YAML header, a blank line and body.
func Encode(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	buf.WriteString("\n")
	buf.WriteString(body)
	return buf.String(), nil
}
