package generator

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-articles/internal/articles"
)

const maxFeedItems = 100

type feedItem struct {
	Title       string
	Summary     string
	Link        string
	GUID        string
	PublishedAt time.Time
}

// buildFeedItems maps the dated published records onto feed entries, newest
// first, capped at maxFeedItems.
func (s *service) buildFeedItems(records []*articles.Record) ([]feedItem, error) {
	items := make([]feedItem, 0, len(records))
	for _, record := range records {
		if len(items) >= maxFeedItems {
			break
		}
		link, err := s.routes.ArticleURL(record.Slug)
		if err != nil {
			return nil, err
		}
		items = append(items, feedItem{
			Title:       record.Title,
			Summary:     record.Summary,
			Link:        link,
			GUID:        record.ID.String(),
			PublishedAt: record.PublishedAt,
		})
	}
	return items, nil
}

// buildFeed renders an RSS 2.0 document for the site.
func (s *service) buildFeed(items []feedItem) (string, error) {
	indexURL, err := s.routes.URL(RouteArticlesIndex)
	if err != nil {
		return "", err
	}

	var lastBuild time.Time
	for _, item := range items {
		if item.PublishedAt.After(lastBuild) {
			lastBuild = item.PublishedAt
		}
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString("  <channel>\n")
	fmt.Fprintf(&builder, "    <title>%s</title>\n", html.EscapeString(s.site.Name))
	fmt.Fprintf(&builder, "    <link>%s</link>\n", indexURL)
	fmt.Fprintf(&builder, "    <description>Articles by %s</description>\n", html.EscapeString(s.site.Author))
	fmt.Fprintf(&builder, "    <language>%s</language>\n", html.EscapeString(s.site.Language))
	fmt.Fprintf(&builder, "    <atom:link href=\"%s/feed.xml\" rel=\"self\" type=\"application/rss+xml\"/>\n", s.routes.BaseURL())
	if !lastBuild.IsZero() {
		fmt.Fprintf(&builder, "    <lastBuildDate>%s</lastBuildDate>\n", lastBuild.UTC().Format(time.RFC1123Z))
	}
	for _, item := range items {
		builder.WriteString("    <item>\n")
		fmt.Fprintf(&builder, "      <title>%s</title>\n", html.EscapeString(item.Title))
		fmt.Fprintf(&builder, "      <link>%s</link>\n", item.Link)
		fmt.Fprintf(&builder, "      <guid isPermaLink=\"false\">%s</guid>\n", item.GUID)
		if item.Summary != "" {
			fmt.Fprintf(&builder, "      <description>%s</description>\n", html.EscapeString(item.Summary))
		}
		fmt.Fprintf(&builder, "      <pubDate>%s</pubDate>\n", item.PublishedAt.UTC().Format(time.RFC1123Z))
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString("</rss>\n")
	return builder.String(), nil
}
