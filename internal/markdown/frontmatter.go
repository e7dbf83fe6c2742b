package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter represents YAML frontmatter.
type Frontmatter struct {
	Title   string
	Tags    []string
	Aliases []string
	Status  string
	Raw     map[string]any
	EndLine int // line number where frontmatter ends (1-based)
	End     int // byte offset just past the closing delimiter line
}

// ExtractFrontmatter parses YAML frontmatter from markdown content.
// Supports the common --- delimited format. A block whose YAML does not
// decode is still reported, with its fields left empty.
func ExtractFrontmatter(content []byte) *Frontmatter {
	first := lineEnd(content, 0)
	if strings.TrimSpace(string(content[:first])) != "---" || first == len(content) && !bytes.HasSuffix(content, []byte("\n")) {
		return nil
	}

	lineNum := 1
	for pos := first; pos < len(content); {
		end := lineEnd(content, pos)
		lineNum++
		line := strings.TrimSpace(string(content[pos:end]))
		if line == "---" || line == "..." {
			fm := &Frontmatter{EndLine: lineNum, End: end}
			fm.decode(content[first:pos])
			return fm
		}
		pos = end
	}

	return nil // unclosed frontmatter
}

func (fm *Frontmatter) decode(data []byte) {
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return
	}
	fm.Raw = raw

	fm.Title = scalar(raw["title"])
	fm.Status = scalar(raw["status"])
	fm.Tags = list(raw["tags"])
	fm.Aliases = list(raw["aliases"])
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// list accepts both YAML sequences and comma separated strings.
func list(v any) []string {
	var out []string
	switch v := v.(type) {
	case []any:
		for _, item := range v {
			if s := strings.TrimSpace(scalar(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
