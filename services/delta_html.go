package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tidyhome-services/blog-backend/models"
)

// renderErrorHTML is returned for any content the renderer cannot parse.
// Matches the admin panel's fallback placeholder.
const renderErrorHTML = "<p>Error rendering content</p>"

var sanitizer = newSanitizer()

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s")
	return p
}

// RenderDeltaHTML converts a serialized Quill Delta document into sanitized
// HTML for preview rendering. Inline attributes (bold, italic, underline,
// strike, link) wrap their text; line attributes (header, list, indent,
// blockquote) ride on the newline op that terminates the line, per the Delta
// format. Malformed input yields a placeholder instead of an error.
func RenderDeltaHTML(content string) string {
	delta, err := models.ParseDelta(content)
	if err != nil {
		return renderErrorHTML
	}
	return sanitizer.Sanitize(renderOps(delta.Ops))
}

// line is one document line: its accumulated inline HTML plus the attributes
// of the newline that closed it.
type line struct {
	html  string
	attrs map[string]any
}

func renderOps(ops []models.Op) string {
	lines := splitLines(ops)

	var b strings.Builder
	var lists listStack
	for _, ln := range lines {
		if listType, indent, ok := listAttrs(ln.attrs); ok {
			lists.adjust(&b, listType, indent)
			b.WriteString("<li>")
			b.WriteString(ln.html)
			b.WriteString("</li>")
			continue
		}
		lists.closeAll(&b)

		switch {
		case headerLevel(ln.attrs) > 0:
			level := headerLevel(ln.attrs)
			fmt.Fprintf(&b, "<h%d>%s</h%d>", level, ln.html, level)
		case boolAttr(ln.attrs, "blockquote"):
			b.WriteString("<blockquote>" + ln.html + "</blockquote>")
		case ln.html == "":
			b.WriteString("<p><br/></p>")
		default:
			b.WriteString("<p>" + ln.html + "</p>")
		}
	}
	lists.closeAll(&b)

	return b.String()
}

// splitLines walks the op sequence and groups inline content into lines,
// breaking on every "\n" inside a string insert. The attributes of the op
// holding the newline become the line's block attributes.
func splitLines(ops []models.Op) []line {
	var lines []line
	var current strings.Builder

	flush := func(attrs map[string]any) {
		lines = append(lines, line{html: current.String(), attrs: attrs})
		current.Reset()
	}

	for _, op := range ops {
		switch v := op.Insert.(type) {
		case string:
			parts := strings.Split(v, "\n")
			for i, part := range parts {
				if part != "" {
					current.WriteString(renderText(part, op.Attributes))
				}
				if i < len(parts)-1 {
					flush(op.Attributes)
				}
			}
		case map[string]any:
			current.WriteString(renderEmbed(v, op.Attributes))
		}
	}
	// Content after the last newline; well-formed deltas end with "\n", so
	// this is usually empty.
	if current.Len() > 0 {
		flush(nil)
	}

	return lines
}

func renderText(text string, attrs map[string]any) string {
	out := html.EscapeString(text)

	if boolAttr(attrs, "bold") {
		out = "<strong>" + out + "</strong>"
	}
	if boolAttr(attrs, "italic") {
		out = "<em>" + out + "</em>"
	}
	if boolAttr(attrs, "underline") {
		out = "<u>" + out + "</u>"
	}
	if boolAttr(attrs, "strike") {
		out = "<s>" + out + "</s>"
	}
	if href, ok := attrs["link"].(string); ok && href != "" {
		out = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), out)
	}

	return out
}

func renderEmbed(embed map[string]any, attrs map[string]any) string {
	if src, ok := embed["image"].(string); ok && src != "" {
		alt := ""
		if a, ok := attrs["alt"].(string); ok {
			alt = a
		}
		return fmt.Sprintf(`<img src="%s" alt="%s"/>`, html.EscapeString(src), html.EscapeString(alt))
	}
	return ""
}

func boolAttr(attrs map[string]any, key string) bool {
	v, ok := attrs[key].(bool)
	return ok && v
}

func headerLevel(attrs map[string]any) int {
	// JSON numbers decode as float64.
	if f, ok := attrs["header"].(float64); ok && f >= 1 && f <= 6 {
		return int(f)
	}
	return 0
}

func listAttrs(attrs map[string]any) (listType string, indent int, ok bool) {
	t, ok := attrs["list"].(string)
	if !ok || (t != "ordered" && t != "bullet") {
		return "", 0, false
	}
	if f, isNum := attrs["indent"].(float64); isNum && f > 0 {
		indent = int(f)
	}
	return t, indent, true
}

// listStack tracks open <ol>/<ul> elements so consecutive list lines nest by
// indent level instead of producing one list per line.
type listStack struct {
	open []string
}

func (s *listStack) adjust(b *strings.Builder, listType string, indent int) {
	want := indent + 1

	for len(s.open) > want {
		s.pop(b)
	}
	if len(s.open) == want && s.open[len(s.open)-1] != listType {
		s.pop(b)
	}
	for len(s.open) < want {
		s.push(b, listType)
	}
}

func (s *listStack) push(b *strings.Builder, listType string) {
	if listType == "ordered" {
		b.WriteString("<ol>")
	} else {
		b.WriteString("<ul>")
	}
	s.open = append(s.open, listType)
}

func (s *listStack) pop(b *strings.Builder) {
	listType := s.open[len(s.open)-1]
	if listType == "ordered" {
		b.WriteString("</ol>")
	} else {
		b.WriteString("</ul>")
	}
	s.open = s.open[:len(s.open)-1]
}

func (s *listStack) closeAll(b *strings.Builder) {
	for len(s.open) > 0 {
		s.pop(b)
	}
}
