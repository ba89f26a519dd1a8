package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// PageText extracts the visible text of an HTML document, skipping script,
// style, and other non-content subtrees. Malformed markup is tolerated: the
// parser recovers, and a document with no text yields "".
func PageText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}
	return visibleText(doc)
}

// visibleText walks the node tree collecting text nodes, one per line.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.TrimSpace(buf.String())
}
