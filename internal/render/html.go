package render

import (
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	xhtml "golang.org/x/net/html"
)

// Title decodes entities in a plain-text title and collapses whitespace.
// Angle brackets are kept as typed.
func Title(raw string) string {
	return strings.Join(strings.Fields(html.UnescapeString(raw)), " ")
}

// PlainText strips markup from HN HTML fields such as story_text and
// comment_text, decodes entities and collapses runs of whitespace.
func PlainText(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "<&") {
		return strings.Join(strings.Fields(raw), " ")
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return strings.Join(strings.Fields(html.UnescapeString(sb.String())), " ")
		case xhtml.TextToken:
			sb.Write(tokenizer.Raw())
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "br" || string(name) == "p" {
				sb.WriteString(" ")
			}
		}
	}
}

// TimeAgo renders a unix timestamp as a compact relative age.
func TimeAgo(unix int64) string {
	return timeAgo(unix, time.Now())
}

func timeAgo(unix int64, now time.Time) string {
	if unix <= 0 {
		return ""
	}
	d := now.Sub(time.Unix(unix, 0))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d < 365*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "month")
	default:
		return plural(int(d/(365*24*time.Hour)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Host returns the host part of a link, without a leading "www.".
func Host(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
