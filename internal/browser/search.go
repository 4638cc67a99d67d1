package browser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SearchResult is one parsed result from the search engine's HTML page.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// IsSearchResults reports whether pageURL points at the configured
// search engine, i.e. whether the page is a fallback search-results page
// rather than an ordinary article.
func IsSearchResults(pageURL, searchTemplate string) bool {
	page, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	tmpl, err := url.Parse(searchTemplate)
	if err != nil {
		return false
	}
	return page.Host != "" && page.Host == tmpl.Host
}

// ParseSearchResults extracts results from the DuckDuckGo HTML page.
// Readability mangles result listings, so they get their own extractor.
func ParseSearchResults(body []byte) ([]SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}

	var results []SearchResult
	doc.Find(".result").Each(func(i int, s *goquery.Selection) {
		titleEl := s.Find(".result__a")
		title := strings.TrimSpace(titleEl.Text())

		href, ok := titleEl.Attr("href")
		if !ok {
			return
		}
		realURL := unwrapRedirect(href)

		snippet := strings.TrimSpace(s.Find(".result__snippet").Text())
		if title != "" && realURL != "" {
			results = append(results, SearchResult{Title: title, URL: realURL, Snippet: snippet})
		}
	})
	return results, nil
}

// unwrapRedirect extracts the destination from a DDG redirect link of
// the form //duckduckgo.com/l/?uddg=<encoded>&rut=...
func unwrapRedirect(href string) string {
	if strings.Contains(href, "uddg=") {
		if parsed, err := url.Parse(href); err == nil {
			if uddg := parsed.Query().Get("uddg"); uddg != "" {
				return uddg
			}
		}
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

// RenderSearchResults formats results as a numbered page whose links can
// be followed like any other page's.
func RenderSearchResults(pageURL string, results []SearchResult) *RenderedPage {
	query := searchQueryOf(pageURL)
	title := "Search"
	if query != "" {
		title = "Search: " + query
	}

	var sb strings.Builder
	var links []Link

	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString("  ────────────────────────────────────────\n\n")

	if len(results) == 0 {
		sb.WriteString("  No results found.\n")
		return &RenderedPage{Title: title, Content: sb.String()}
	}

	for i, r := range results {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", idx, r.Title))
		sb.WriteString(fmt.Sprintf("       %s\n", r.URL))
		if r.Snippet != "" {
			snippet := r.Snippet
			if len(snippet) > 200 {
				snippet = snippet[:197] + "..."
			}
			sb.WriteString(fmt.Sprintf("       %s\n", snippet))
		}
		sb.WriteString("\n")

		links = append(links, Link{Index: idx, Text: r.Title, URL: r.URL})
	}
	sb.WriteString(fmt.Sprintf("  %d results | press f and a number to follow a link\n", len(results)))

	return &RenderedPage{Title: title, Content: sb.String(), Links: links}
}

func searchQueryOf(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("q")
}
