package browser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
)

// RenderedPage holds the final terminal-ready output.
type RenderedPage struct {
	Title   string
	Content string // styled terminal text
	Links   []Link
}

// Renderer converts sanitized article HTML into styled terminal text:
// HTML to markdown with numbered link references, then glamour. The
// glamour renderer is cached per width because recreating it is
// expensive.
type Renderer struct {
	mu    sync.Mutex
	term  *glamour.TermRenderer
	width int
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the displayable page for an article at the given
// terminal width. If glamour fails the raw markdown is shown instead; a
// render never errors out.
func (r *Renderer) Render(article *Article, width int) *RenderedPage {
	if width <= 0 {
		width = 80
	}
	contentWidth := width - 4
	if contentWidth > 100 {
		contentWidth = 100
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return &RenderedPage{Title: article.Title, Content: article.TextContent}
	}

	conv := &mdConverter{}
	var md strings.Builder

	if article.Title != "" {
		md.WriteString("# " + article.Title + "\n\n")
	}
	if article.Byline != "" {
		md.WriteString("*" + article.Byline + "*\n\n")
	}
	md.WriteString("---\n\n")

	doc.Find("body").Children().Each(func(i int, s *goquery.Selection) {
		md.WriteString(conv.convertNode(s, 0))
	})

	rendered, err := r.renderMarkdown(md.String(), contentWidth)
	if err != nil {
		rendered = md.String()
	}

	return &RenderedPage{
		Title:   article.Title,
		Content: rendered,
		Links:   conv.links,
	}
}

func (r *Renderer) renderMarkdown(markdown string, width int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.term == nil || r.width != width {
		term, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		r.term = term
		r.width = width
	}
	return r.term.Render(markdown)
}

// mdConverter walks goquery HTML nodes and emits markdown, numbering
// every link it passes.
type mdConverter struct {
	linkIndex int
	links     []Link
}

func (c *mdConverter) convertNode(s *goquery.Selection, depth int) string {
	var sb strings.Builder

	switch goquery.NodeName(s) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(goquery.NodeName(s)[1] - '0')
		if text := strings.TrimSpace(s.Text()); text != "" {
			sb.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
		}
	case "p":
		var inline strings.Builder
		c.convertInline(s, &inline)
		if text := strings.TrimSpace(inline.String()); text != "" {
			sb.WriteString(text + "\n\n")
		}
	case "a":
		sb.WriteString(c.convertLink(s))
	case "ul":
		sb.WriteString(c.convertList(s, false, depth))
	case "ol":
		sb.WriteString(c.convertList(s, true, depth))
	case "blockquote":
		sb.WriteString(c.convertBlockquote(s))
	case "pre":
		sb.WriteString(c.convertCodeBlock(s))
	case "code":
		sb.WriteString("`" + s.Text() + "`")
	case "img":
		sb.WriteString(c.convertImage(s))
	case "hr":
		sb.WriteString("\n---\n\n")
	case "table":
		sb.WriteString(c.convertTable(s))
	case "br":
		sb.WriteString("  \n")
	case "strong", "b":
		sb.WriteString("**")
		c.convertInline(s, &sb)
		sb.WriteString("**")
	case "em", "i":
		sb.WriteString("*")
		c.convertInline(s, &sb)
		sb.WriteString("*")
	case "div", "article", "section", "main", "header", "footer", "figure", "span":
		s.Children().Each(func(i int, child *goquery.Selection) {
			sb.WriteString(c.convertNode(child, depth))
		})
	case "figcaption":
		if text := strings.TrimSpace(s.Text()); text != "" {
			sb.WriteString("*" + text + "*\n\n")
		}
	default:
		if text := strings.TrimSpace(s.Text()); text != "" {
			sb.WriteString(text + "\n\n")
		}
	}

	return sb.String()
}

func (c *mdConverter) convertInline(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(i int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			sb.WriteString(child.Text())
		case "a":
			sb.WriteString(c.convertLink(child))
		case "strong", "b":
			sb.WriteString("**")
			c.convertInline(child, sb)
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
			c.convertInline(child, sb)
			sb.WriteString("*")
		case "code":
			sb.WriteString("`" + child.Text() + "`")
		case "br":
			sb.WriteString("  \n")
		default:
			c.convertInline(child, sb)
		}
	})
}

func (c *mdConverter) convertLink(s *goquery.Selection) string {
	href, exists := s.Attr("href")
	text := strings.TrimSpace(s.Text())
	if text == "" {
		text = href
	}
	if !exists || href == "" {
		return text
	}

	c.linkIndex++
	c.links = append(c.links, Link{Index: c.linkIndex, Text: text, URL: href})

	return fmt.Sprintf("[%s](%s) **[%d]**", text, href, c.linkIndex)
}

func (c *mdConverter) convertList(s *goquery.Selection, ordered bool, depth int) string {
	var sb strings.Builder
	indent := strings.Repeat("  ", depth)
	itemNum := 0

	s.Find("> li").Each(func(i int, li *goquery.Selection) {
		itemNum++
		prefix := indent + "- "
		if ordered {
			prefix = fmt.Sprintf("%s%d. ", indent, itemNum)
		}

		var item strings.Builder
		c.convertInline(li, &item)
		sb.WriteString(prefix + strings.TrimSpace(item.String()) + "\n")

		li.Children().Each(func(j int, child *goquery.Selection) {
			switch goquery.NodeName(child) {
			case "ul":
				sb.WriteString(c.convertList(child, false, depth+1))
			case "ol":
				sb.WriteString(c.convertList(child, true, depth+1))
			}
		})
	})

	return sb.String() + "\n"
}

func (c *mdConverter) convertBlockquote(s *goquery.Selection) string {
	var sb strings.Builder
	s.Children().Each(func(i int, child *goquery.Selection) {
		content := c.convertNode(child, 0)
		for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
			sb.WriteString("> " + line + "\n")
		}
	})
	if sb.Len() == 0 {
		// Bare text inside the blockquote, no child elements.
		for _, line := range strings.Split(strings.TrimSpace(s.Text()), "\n") {
			sb.WriteString("> " + line + "\n")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func (c *mdConverter) convertCodeBlock(s *goquery.Selection) string {
	code := s.Find("code")

	lang := ""
	if code.Length() > 0 {
		if class, ok := code.Attr("class"); ok && strings.Contains(class, "language-") {
			parts := strings.SplitN(class, "language-", 2)
			if len(parts) == 2 && parts[1] != "" {
				lang = strings.Fields(parts[1])[0]
			}
		}
	}

	text := s.Text()
	if code.Length() > 0 {
		text = code.Text()
	}
	return "```" + lang + "\n" + text + "\n```\n\n"
}

func (c *mdConverter) convertImage(s *goquery.Selection) string {
	alt, _ := s.Attr("alt")
	src, _ := s.Attr("src")
	if alt == "" {
		alt = "image"
	}
	return fmt.Sprintf("![%s](%s)\n\n", alt, src)
}

func (c *mdConverter) convertTable(s *goquery.Selection) string {
	var headers []string
	s.Find("thead th, thead td").Each(func(i int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})

	var rows [][]string
	s.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		var row []string
		tr.Find("td, th").Each(func(j int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		rows = append(rows, row)
	})

	if len(headers) == 0 {
		s.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})
	}

	numCols := len(headers)
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	if numCols == 0 {
		return ""
	}
	for len(headers) < numCols {
		headers = append(headers, "")
	}

	var sb strings.Builder
	sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	separators := make([]string, numCols)
	for i := range separators {
		separators[i] = "---"
	}
	sb.WriteString("| " + strings.Join(separators, " | ") + " |\n")
	for _, row := range rows {
		for len(row) < numCols {
			row = append(row, "")
		}
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	sb.WriteString("\n")
	return sb.String()
}
