package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDeltaHTML(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Plain paragraph",
			content:  `{"ops":[{"insert":"Hello world\n"}]}`,
			expected: "<p>Hello world</p>",
		},
		{
			name:     "Blank line becomes an empty paragraph",
			content:  `{"ops":[{"insert":"Hello\n\nWorld\n"}]}`,
			expected: "<p>Hello</p><p><br/></p><p>World</p>",
		},
		{
			name:     "Header attribute on the closing newline",
			content:  `{"ops":[{"insert":"Care Basics"},{"insert":"\n","attributes":{"header":2}}]}`,
			expected: "<h2>Care Basics</h2>",
		},
		{
			name:     "Bold and italic inline runs",
			content:  `{"ops":[{"insert":"plain "},{"insert":"bold","attributes":{"bold":true}},{"insert":" and "},{"insert":"slanted","attributes":{"italic":true}},{"insert":"\n"}]}`,
			expected: "<p>plain <strong>bold</strong> and <em>slanted</em></p>",
		},
		{
			name:     "Underline and strike survive sanitization",
			content:  `{"ops":[{"insert":"gone","attributes":{"strike":true}},{"insert":" kept","attributes":{"underline":true}},{"insert":"\n"}]}`,
			expected: "<p><s>gone</s><u> kept</u></p>",
		},
		{
			name:     "Ordered list groups consecutive items",
			content:  `{"ops":[{"insert":"one"},{"insert":"\n","attributes":{"list":"ordered"}},{"insert":"two"},{"insert":"\n","attributes":{"list":"ordered"}},{"insert":"three"},{"insert":"\n","attributes":{"list":"ordered"}}]}`,
			expected: "<ol><li>one</li><li>two</li><li>three</li></ol>",
		},
		{
			name:     "Bullet list with nested indent",
			content:  `{"ops":[{"insert":"outer"},{"insert":"\n","attributes":{"list":"bullet"}},{"insert":"inner"},{"insert":"\n","attributes":{"list":"bullet","indent":1}},{"insert":"outer again"},{"insert":"\n","attributes":{"list":"bullet"}}]}`,
			expected: "<ul><li>outer</li><ul><li>inner</li></ul><li>outer again</li></ul>",
		},
		{
			name:     "List closes before a following paragraph",
			content:  `{"ops":[{"insert":"item"},{"insert":"\n","attributes":{"list":"bullet"}},{"insert":"after\n"}]}`,
			expected: "<ul><li>item</li></ul><p>after</p>",
		},
		{
			name:     "Blockquote line",
			content:  `{"ops":[{"insert":"wise words"},{"insert":"\n","attributes":{"blockquote":true}}]}`,
			expected: "<blockquote>wise words</blockquote>",
		},
		{
			name:     "Markup in text is escaped, not rendered",
			content:  `{"ops":[{"insert":"<script>alert(1)</script>\n"}]}`,
			expected: "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>",
		},
		{
			name:     "Not JSON falls back to the placeholder",
			content:  "just some text",
			expected: "<p>Error rendering content</p>",
		},
		{
			name:     "Missing ops falls back to the placeholder",
			content:  `{"body":"x"}`,
			expected: "<p>Error rendering content</p>",
		},
		{
			name:     "Empty document renders to nothing",
			content:  `{"ops":[]}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderDeltaHTML(tt.content))
		})
	}
}

func TestRenderDeltaHTMLLinks(t *testing.T) {
	content := `{"ops":[{"insert":"read this","attributes":{"link":"https://example.com/guide"}},{"insert":"\n"}]}`
	out := RenderDeltaHTML(content)

	// The sanitizer decorates outbound links with rel="nofollow".
	assert.Contains(t, out, `href="https://example.com/guide"`)
	assert.Contains(t, out, `rel="nofollow"`)
	assert.Contains(t, out, ">read this</a>")
}

func TestRenderDeltaHTMLStripsUnsafeLinks(t *testing.T) {
	content := `{"ops":[{"insert":"click","attributes":{"link":"javascript:alert(1)"}},{"insert":"\n"}]}`
	out := RenderDeltaHTML(content)

	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "click")
}

func TestRenderDeltaHTMLImageEmbed(t *testing.T) {
	content := `{"ops":[{"insert":{"image":"https://cdn.example.com/pic.jpg"}},{"insert":"\n"}]}`
	out := RenderDeltaHTML(content)

	assert.Contains(t, out, `<img src="https://cdn.example.com/pic.jpg"`)
}
