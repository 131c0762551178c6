// Package goquery implements HTML content cleaning using the goquery
// library. It turns the raw HTML fragment of a rendered article into
// plain text suitable for a document body.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rashidq/nezamdoc"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements nezamdoc.Cleaner at compile time.
var _ nezamdoc.Cleaner = (*Cleaner)(nil)

// Rule is a structural repair applied to a parsed fragment before its
// text is linearized. Rules exist because portal CMS editors leave
// broken markup behind, e.g. highlight spans nested inside each other.
type Rule interface {
	Apply(doc *goquery.Document)
}

// Cleaner strips noise elements from HTML fragments and linearizes the
// remaining visible text. Cleaner is stateless and safe for concurrent
// use.
type Cleaner struct {
	noise []string
	rules []Rule
}

// NewCleaner creates a Cleaner that removes elements matching the noise
// selectors and applies rules in order.
func NewCleaner(noise []string, rules ...Rule) *Cleaner {
	return &Cleaner{noise: noise, rules: rules}
}

// Clean parses fragment, removes noise elements, applies the repair
// rules, and returns the visible text with newlines between block-level
// runs. Returns ENOTFOUND when no visible text remains.
func (c *Cleaner) Clean(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", nezamdoc.Errorf(nezamdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, selector := range c.noise {
		doc.Find(selector).Remove()
	}
	for _, rule := range c.rules {
		rule.Apply(doc)
	}

	text := linearize(doc)
	if text == "" {
		return "", nezamdoc.Errorf(nezamdoc.ENOTFOUND, "no visible text in content")
	}
	return text, nil
}

// MergeNested repairs doubly-wrapped fragments: for every element
// matching Outer, the texts of its Inner descendants are merged into a
// single space-joined string that replaces the outer element's children.
// Outer elements whose inner fragments are all empty keep their other
// content, with the empty fragments removed.
type MergeNested struct {
	Outer string
	Inner string
}

// Apply implements Rule.
func (r MergeNested) Apply(doc *goquery.Document) {
	doc.Find(r.Outer).Each(func(_ int, outer *goquery.Selection) {
		inner := outer.Find(r.Inner)
		if inner.Length() == 0 {
			return
		}
		var parts []string
		inner.Each(func(_ int, sel *goquery.Selection) {
			if t := strings.TrimSpace(sel.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		if combined := strings.Join(parts, " "); combined != "" {
			outer.SetText(combined)
			return
		}
		inner.Remove()
	})
}

// RulesFromSpecs converts repair configuration into cleaner rules.
func RulesFromSpecs(specs []nezamdoc.RepairSpec) []Rule {
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		rules = append(rules, MergeNested{Outer: spec.Outer, Inner: spec.Inner})
	}
	return rules
}

// blockTags are elements whose text forms its own line in the
// linearized output.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "details": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "tr": true, "ul": true,
}

// skipTags are elements whose subtree carries no visible text.
var skipTags = map[string]bool{
	"head": true, "iframe": true, "noscript": true, "script": true,
	"style": true, "template": true, "title": true,
}

// linearize walks the parsed fragment and joins the visible text into
// lines: inline siblings stay on one line, block boundaries and <br>
// start a new one. Whitespace inside a line is collapsed to single
// spaces and blank lines are dropped.
func linearize(doc *goquery.Document) string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if line := collapseSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipTags[n.Data] {
				return
			}
			if n.Data == "br" {
				flush()
				return
			}
			block := blockTags[n.Data]
			if block {
				flush()
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				walk(child)
			}
			if block {
				flush()
			}
			return
		case html.DocumentNode:
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				walk(child)
			}
		}
	}

	for _, n := range doc.Selection.Nodes {
		walk(n)
	}
	flush()

	return strings.Join(lines, "\n")
}

// collapseSpace trims s and collapses internal whitespace runs to
// single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
