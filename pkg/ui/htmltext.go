package ui

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// htmlToMarkdown converts node content HTML into markdown for the terminal
// renderer. Unknown elements contribute their text; script and style bodies
// are dropped.
func htmlToMarkdown(src string) string {
	nodes, err := html.ParseFragment(strings.NewReader(src), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return src
	}
	c := &mdConverter{}
	for _, n := range nodes {
		c.walk(n)
	}
	out := blankLines.ReplaceAllString(c.sb.String(), "\n\n")
	return strings.TrimSpace(out)
}

type mdConverter struct {
	sb    strings.Builder
	lists []listState
	pre   int
}

type listState struct {
	ordered bool
	n       int
}

func (c *mdConverter) block() {
	s := c.sb.String()
	switch {
	case s == "" || strings.HasSuffix(s, "\n\n"):
	case strings.HasSuffix(s, "\n"):
		c.sb.WriteString("\n")
	default:
		c.sb.WriteString("\n\n")
	}
}

func (c *mdConverter) children(n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.walk(ch)
	}
}

func (c *mdConverter) inline(n *html.Node, mark string) {
	c.sb.WriteString(mark)
	c.children(n)
	c.sb.WriteString(mark)
}

func (c *mdConverter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if c.pre > 0 {
			c.sb.WriteString(n.Data)
			return
		}
		text := strings.Join(strings.Fields(n.Data), " ")
		if text == "" {
			if n.Data != "" && !strings.HasSuffix(c.sb.String(), " ") && !strings.HasSuffix(c.sb.String(), "\n") {
				c.sb.WriteString(" ")
			}
			return
		}
		if strings.HasPrefix(n.Data, " ") && !strings.HasSuffix(c.sb.String(), " ") && !strings.HasSuffix(c.sb.String(), "\n") && c.sb.Len() > 0 {
			c.sb.WriteString(" ")
		}
		c.sb.WriteString(text)
		if strings.HasSuffix(n.Data, " ") {
			c.sb.WriteString(" ")
		}
		return
	case html.ElementNode:
	default:
		c.children(n)
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Template:
		return
	case atom.P, atom.Div, atom.Section, atom.Article:
		c.block()
		c.children(n)
		c.block()
	case atom.Br:
		c.sb.WriteString("\n")
	case atom.Hr:
		c.block()
		c.sb.WriteString("---")
		c.block()
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		c.block()
		c.sb.WriteString(strings.Repeat("#", level) + " ")
		c.children(n)
		c.block()
	case atom.Strong, atom.B:
		c.inline(n, "**")
	case atom.Em, atom.I:
		c.inline(n, "*")
	case atom.Code:
		if c.pre > 0 {
			c.children(n)
			return
		}
		c.inline(n, "`")
	case atom.Pre:
		c.block()
		c.sb.WriteString("```\n")
		c.pre++
		c.children(n)
		c.pre--
		if !strings.HasSuffix(c.sb.String(), "\n") {
			c.sb.WriteString("\n")
		}
		c.sb.WriteString("```")
		c.block()
	case atom.Blockquote:
		c.block()
		sub := &mdConverter{}
		sub.children(n)
		for _, line := range strings.Split(strings.TrimSpace(sub.sb.String()), "\n") {
			c.sb.WriteString("> " + line + "\n")
		}
		c.block()
	case atom.Ul, atom.Ol:
		c.block()
		c.lists = append(c.lists, listState{ordered: n.DataAtom == atom.Ol})
		c.children(n)
		c.lists = c.lists[:len(c.lists)-1]
		c.block()
	case atom.Li:
		depth := len(c.lists)
		if depth == 0 {
			c.lists = append(c.lists, listState{})
			defer func() { c.lists = c.lists[:0] }()
			depth = 1
		}
		ls := &c.lists[depth-1]
		ls.n++
		if s := c.sb.String(); s != "" && !strings.HasSuffix(s, "\n") {
			c.sb.WriteString("\n")
		}
		c.sb.WriteString(strings.Repeat("  ", depth-1))
		if ls.ordered {
			fmt.Fprintf(&c.sb, "%d. ", ls.n)
		} else {
			c.sb.WriteString("- ")
		}
		c.children(n)
		if !strings.HasSuffix(c.sb.String(), "\n") {
			c.sb.WriteString("\n")
		}
	case atom.A:
		href := attr(n, "href")
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			c.children(n)
			return
		}
		c.sb.WriteString("[")
		c.children(n)
		c.sb.WriteString("](" + href + ")")
	case atom.Img:
		if alt := attr(n, "alt"); alt != "" {
			c.sb.WriteString("[image: " + alt + "]")
		}
	default:
		c.children(n)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
