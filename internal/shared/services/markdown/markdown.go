// Package markdown renders lesson bodies. Course authors write markdown; the
// output is sanitized before it ever reaches a student's browser.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

type Service interface {
	ToHTML(markdown string) (string, error)
	Sanitize(htmlContent string) string
	ToHTMLSanitized(markdown string) (string, error)
}

type serviceImpl struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewService() Service {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "pre")
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &serviceImpl{md: md, policy: policy}
}

func (s *serviceImpl) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

func (s *serviceImpl) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}

func (s *serviceImpl) ToHTMLSanitized(markdown string) (string, error) {
	rendered, err := s.ToHTML(markdown)
	if err != nil {
		return "", err
	}
	return s.Sanitize(rendered), nil
}
