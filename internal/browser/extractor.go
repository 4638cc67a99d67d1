package browser

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// Article holds the extracted readable content from a page.
type Article struct {
	Title       string
	Byline      string
	Content     string // sanitized HTML
	TextContent string // plain text
	URL         string
	FinalURL    string
	FetchTime   time.Duration
}

// Link is a numbered hyperlink collected during rendering.
type Link struct {
	Index int
	Text  string
	URL   string
}

// sanitizer strips scripts, event handlers and everything else the
// renderer does not consume from extracted article HTML. The class
// attribute on code blocks is kept for language detection.
var sanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("code", "pre")
	return p
}()

// Extract pulls the readable article out of a fetch result. Non-HTML
// bodies are wrapped as preformatted text instead of going through
// readability.
func Extract(result *FetchResult) (*Article, error) {
	if !IsHTML(result.ContentType) {
		return &Article{
			Title:       result.FinalURL,
			Content:     "<pre>" + string(result.Body) + "</pre>",
			TextContent: string(result.Body),
			URL:         result.URL,
			FinalURL:    result.FinalURL,
			FetchTime:   result.Duration,
		}, nil
	}

	parsedURL, err := url.Parse(result.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(result.Body), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("extracting article: %w", err)
	}

	return &Article{
		Title:       article.Title,
		Byline:      article.Byline,
		Content:     sanitizer.Sanitize(article.Content),
		TextContent: article.TextContent,
		URL:         result.URL,
		FinalURL:    result.FinalURL,
		FetchTime:   result.Duration,
	}, nil
}
