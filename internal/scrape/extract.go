package scrape

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const untitledArticle = "Article sans titre"

var spaceRe = regexp.MustCompile(`\s+`)

// Extract pulls the title and main body text out of an HTML page. The title
// comes from the first h1, then the document title. The body comes from the
// article or main element when one exists, otherwise from the page's first
// paragraphs.
func Extract(page string) (title, content string) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return untitledArticle, ""
	}

	title = firstText(doc, "h1")
	if title == "" {
		title = firstText(doc, "title")
	}
	if title == "" {
		title = untitledArticle
	}
	if len([]rune(title)) > 200 {
		title = string([]rune(title)[:200])
	}

	root := findElement(doc, "article")
	if root == nil {
		root = findElement(doc, "main")
	}

	var parts []string
	if root != nil {
		collectText(root, map[string]bool{"p": true, "h2": true, "h3": true, "li": true}, -1, &parts)
	} else {
		// No obvious content element: take the page's first 20 paragraphs.
		collectText(doc, map[string]bool{"p": true}, 20, &parts)
	}

	content = strings.TrimSpace(spaceRe.ReplaceAllString(strings.Join(parts, " "), " "))
	return title, content
}

// skippedElements never contribute body text.
var skippedElements = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
	"header": true,
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func firstText(n *html.Node, name string) string {
	el := findElement(n, name)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(nodeText(el), " "))
}

// collectText appends the text of matching elements, at most limit of them
// (limit < 0 means no cap).
func collectText(n *html.Node, match map[string]bool, limit int, out *[]string) {
	if n.Type == html.ElementNode {
		if skippedElements[n.Data] {
			return
		}
		if match[n.Data] {
			if limit >= 0 && len(*out) >= limit {
				return
			}
			if text := strings.TrimSpace(nodeText(n)); text != "" {
				*out = append(*out, text)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, match, limit, out)
	}
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && skippedElements[n.Data] {
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
		b.WriteString(" ")
	}
	return b.String()
}
