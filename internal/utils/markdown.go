package utils

import (
	"bytes"
	"crypto/sha256"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()

	// rendered HTML keyed by content digest; the same post is rendered on every feed load
	renderCache, _ = NewCache[[32]byte, template.HTML](2048, 30*time.Minute)
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown converts user content to sanitized HTML.
func RenderMarkdown(source string) template.HTML {
	if source == "" {
		return ""
	}
	key := sha256.Sum256([]byte(source))
	if cached, ok := renderCache.Get(key); ok {
		return cached
	}

	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		// plain text is still safe once escaped
		return template.HTML(template.HTMLEscapeString(source))
	}
	out := EnhanceHTMLContent(string(policy.SanitizeBytes(buf.Bytes())))
	renderCache.Set(key, out)
	return out
}
