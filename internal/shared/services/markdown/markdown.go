// Package markdown renders and sanitizes user-authored content. Comment
// bodies and notification payloads pass through here before storage or
// display, so raw HTML from callers never survives.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Service interface {
	// ToHTMLSanitized renders markdown to HTML and strips anything outside
	// the UGC policy.
	ToHTMLSanitized(markdown string) (string, error)

	// SanitizeText strips all markup from user text, leaving plain text.
	SanitizeText(input string) string
}

type serviceImpl struct {
	md        goldmark.Markdown
	ugcPolicy *bluemonday.Policy
	strict    *bluemonday.Policy
}

func NewService() Service {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &serviceImpl{
		md:        md,
		ugcPolicy: bluemonday.UGCPolicy(),
		strict:    bluemonday.StrictPolicy(),
	}
}

func (s *serviceImpl) ToHTMLSanitized(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return s.ugcPolicy.Sanitize(buf.String()), nil
}

func (s *serviceImpl) SanitizeText(input string) string {
	return s.strict.Sanitize(input)
}
