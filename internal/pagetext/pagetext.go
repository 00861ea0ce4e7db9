// Package pagetext flattens raw page HTML into the visible text the result
// extractor runs its patterns against.
package pagetext

import (
	"strings"

	"golang.org/x/net/html"
)

// tags whose subtrees never contain user-visible text
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
	"iframe":   true,
	"link":     true,
	"meta":     true,
	"head":     true,
	"title":    true,
	"template": true,
}

// Flatten extracts the visible text of rawHTML with whitespace collapsed to
// single spaces. On a parse error the raw input is returned unchanged so
// regex matching still has something to work with.
func Flatten(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	var sb strings.Builder
	collectText(doc, &sb)

	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && skippedTags[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
