// Package paths addresses values inside a form data tree using dotted paths
// ("blocks.0.title"). The empty path addresses the tree root.
package paths

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is a dotted structural address. Object keys containing "." cannot be
// addressed.
type Path string

// Root addresses the whole data tree.
const Root Path = ""

// Compose appends a segment (string key or int index) to parent.
func Compose(parent Path, segment any) Path {
	var part string
	switch typed := segment.(type) {
	case int:
		part = strconv.Itoa(typed)
	case string:
		part = typed
	case Path:
		part = string(typed)
	default:
		part = fmt.Sprint(typed)
	}
	if part == "" {
		return parent
	}
	if parent == Root {
		return Path(part)
	}
	return Path(string(parent) + "." + part)
}

// Segments splits the path into its parts.
func (p Path) Segments() []string {
	if p == Root {
		return nil
	}
	return strings.Split(string(p), ".")
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	idx := strings.LastIndex(string(p), ".")
	if idx < 0 {
		return Root
	}
	return p[:idx]
}

// Last returns the final segment, or "" for the root.
func (p Path) Last() string {
	segments := p.Segments()
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// Pointer converts the path into an RFC 6901 JSON pointer.
func (p Path) Pointer() string {
	var b strings.Builder
	for _, segment := range p.Segments() {
		b.WriteByte('/')
		b.WriteString(escape(segment))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return string(p)
}

// FromPointer converts a JSON pointer ("/a/0", "#/a/0") into a Path.
func FromPointer(pointer string) Path {
	pointer = strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return Root
	}
	parts := strings.Split(pointer, "/")
	for i, part := range parts {
		parts[i] = unescape(part)
	}
	return Path(strings.Join(parts, "."))
}

// Get reads the value at path from a generic data tree.
func Get(root any, path Path) (any, bool) {
	current := root
	for _, segment := range path.Segments() {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func escape(value string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(value)
}

func unescape(value string) string {
	value = strings.ReplaceAll(value, "~1", "/")
	return strings.ReplaceAll(value, "~0", "~")
}
