package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the parsed front-matter mapping. Only a handful of keys matter
// to the engine; everything else is carried opaquely.
type Config map[string]any

// slideLevelPaths are the lookup paths tried in priority order. The
// top-level key wins over the reveal-specific nested form.
var slideLevelPaths = [][]string{
	{"slide-level"},
	{"format", "revealjs", "slide-level"},
}

// Split recognizes a YAML front-matter block fenced by "---" lines starting
// at line 0. It returns the raw block text (delimiters excluded), the
// remaining document body, and the 0-based line the body starts on. When no
// block is present, raw is empty and body is the full source.
func Split(src []byte) (raw string, body []byte, bodyLine int) {
	lines := bytes.SplitAfter(src, []byte("\n"))
	if len(lines) == 0 || strings.TrimRight(string(lines[0]), "\r\n") != "---" {
		return "", src, 0
	}

	offset := len(lines[0])
	for i := 1; i < len(lines); i++ {
		line := strings.TrimRight(string(lines[i]), "\r\n")
		if line == "---" || line == "..." {
			end := offset
			offset += len(lines[i])
			return string(src[len(lines[0]):end]), src[offset:], i + 1
		}
		offset += len(lines[i])
	}

	// Unterminated fence: not front matter, the first "---" is a
	// thematic break or setext underline and belongs to the body.
	return "", src, 0
}

// Decode parses a raw front-matter block into a Config.
func Decode(raw string) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}
	return cfg, nil
}

// SlideLevel returns the explicitly configured slide level, if any.
func (c Config) SlideLevel() (int, bool) {
	for _, path := range slideLevelPaths {
		if n, ok := lookupInt(c, path); ok {
			return n, true
		}
	}
	return 0, false
}

// Title returns the document title, if configured.
func (c Config) Title() (string, bool) {
	s, ok := c["title"].(string)
	return s, ok
}

// lookupInt walks nested maps along path, tolerating absent keys.
func lookupInt(m map[string]any, path []string) (int, bool) {
	var cur any = m
	for _, key := range path {
		node, ok := cur.(map[string]any)
		if !ok {
			return 0, false
		}
		cur, ok = node[key]
		if !ok {
			return 0, false
		}
	}
	switch v := cur.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
