package definitions

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/jason/internal/serializer"
	"github.com/spf13/cast"
)

// template is a link template split into literal and field segments.
type template struct {
	segments []segment
}

type segment struct {
	text  string
	field bool
}

func parseTemplate(raw string) (template, error) {
	var t template
	rest := raw
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return template{}, fmt.Errorf("unbalanced '}' in %q", raw)
			}
			t.segments = append(t.segments, segment{text: rest})
			break
		}
		if strings.IndexByte(rest[:open], '}') >= 0 {
			return template{}, fmt.Errorf("unbalanced '}' in %q", raw)
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return template{}, fmt.Errorf("unterminated placeholder in %q", raw)
		}
		field := rest[open+1 : open+closing]
		if field == "" {
			return template{}, fmt.Errorf("empty placeholder in %q", raw)
		}
		if open > 0 {
			t.segments = append(t.segments, segment{text: rest[:open]})
		}
		t.segments = append(t.segments, segment{text: field, field: true})
		rest = rest[open+closing+1:]
	}
	return t, nil
}

func (t template) hasFields() bool {
	for _, s := range t.segments {
		if s.field {
			return true
		}
	}
	return false
}

// expand substitutes fields of r. Missing or unconvertible fields expand
// to the empty string.
func (t template) expand(r serializer.Resource) string {
	var b strings.Builder
	for _, s := range t.segments {
		if !s.field {
			b.WriteString(s.text)
			continue
		}
		b.WriteString(cast.ToString(r[s.text]))
	}
	return b.String()
}
