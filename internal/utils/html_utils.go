package utils

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// embedParent is the host Twitch requires in the player URL; the player refuses
// to load on any other origin.
var embedParent = "localhost"

// SetEmbedParent takes the public base URL the site is served from. It must be
// called before the first render since rendered HTML is cached.
func SetEmbedParent(publicBaseURL string) error {
	u, err := url.Parse(publicBaseURL)
	if err != nil {
		return err
	}
	if u.Hostname() == "" {
		return fmt.Errorf("public base url %q has no host", publicBaseURL)
	}
	embedParent = u.Hostname()
	renderCache.Purge()
	return nil
}

// EnhanceHTMLContent adds loading hints to images and turns a paragraph that
// holds nothing but a YouTube or Twitch clip link into an embedded player.
// Input must already be sanitized.
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
	})

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "http") || strings.Contains(text, " ") {
			return
		}
		if src := embedURL(text); src != "" {
			s.ReplaceWithHtml(`<div class="video-container"><iframe src="` + template.HTMLEscapeString(src) +
				`" frameborder="0" allowfullscreen allow="autoplay; encrypted-media; picture-in-picture"></iframe></div>`)
		}
	})

	// goquery wraps fragments in html/body
	out, _ := doc.Find("body").Html()
	if out == "" {
		out, _ = doc.Html()
	}
	return template.HTML(out)
}

// embedURL maps a video link to its player URL, or "" when the host is not embeddable.
func embedURL(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" && u.Path == "/watch" {
			return "https://www.youtube.com/embed/" + url.PathEscape(id)
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(id)
		}
	case "clips.twitch.tv":
		if slug := strings.Trim(u.Path, "/"); slug != "" {
			return "https://clips.twitch.tv/embed?clip=" + url.QueryEscape(slug) + "&parent=" + url.QueryEscape(embedParent)
		}
	}
	return ""
}
