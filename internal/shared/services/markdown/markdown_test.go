package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized_RendersBasicMarkdown(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTMLSanitized("# Lesson 1\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, out, "Lesson 1")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestToHTMLSanitized_StripsScripts(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTMLSanitized("hello <script>alert(1)</script> world")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "hello")
}
