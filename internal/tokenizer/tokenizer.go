package tokenizer

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/dvalk/slidenav/internal/frontmatter"
	"github.com/dvalk/slidenav/internal/token"
)

// Tokenize parses a markdown document into the flat block-token stream the
// structure engine consumes. A leading front-matter block is split off
// before goldmark sees the source, so fence delimiters are never mistaken
// for thematic breaks or setext underlines. All lines are 0-based positions
// in the original document.
func Tokenize(src []byte) []token.Token {
	raw, body, bodyLine := frontmatter.Split(src)

	var tokens []token.Token
	if bodyLine > 0 {
		tokens = append(tokens, token.Token{Kind: token.FrontMatter, Line: 0, Raw: raw})
	}

	md := goldmark.New()
	doc := md.Parser().Parse(gmtext.NewReader(body))

	idx := newLineIndex(body)

	// searchFrom tracks the first body line not yet claimed by an earlier
	// block, used to place blocks goldmark records no segment for.
	searchFrom := 0

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			var line int
			if seg, ok := firstSegment(node); ok {
				line = idx.lineOf(seg.Start)
			} else {
				// An empty heading ("##" with no text) has no segment,
				// but it is still a unit boundary: it sits on the first
				// non-blank line after the previous block.
				line = idx.nextNonBlank(searchFrom)
			}
			tokens = append(tokens, token.Token{
				Kind:  token.Heading,
				Line:  bodyLine + line,
				Level: node.Level,
				Text:  string(node.Text(body)),
			})
			searchFrom = lastLine(idx, node, line) + 1
			// A setext underline is not part of the heading's segments;
			// claim it so it cannot be mistaken for a later break.
			if node.Level <= 2 && !idx.isATX(line) && idx.isSetextUnderline(searchFrom) {
				searchFrom++
			}

		case *ast.ThematicBreak:
			// Thematic breaks carry no source segment; the break is the
			// first non-blank line after the previous block.
			line := idx.nextNonBlank(searchFrom)
			tokens = append(tokens, token.Token{Kind: token.Rule, Line: bodyLine + line})
			searchFrom = line + 1

		default:
			seg, ok := firstSegment(n)
			if !ok {
				continue
			}
			line := idx.lineOf(seg.Start)
			tokens = append(tokens, token.Token{Kind: token.Other, Line: bodyLine + line})
			searchFrom = lastLine(idx, n, line) + 1
		}
	}

	return tokens
}

// firstSegment finds the first source segment in a node's subtree.
func firstSegment(n ast.Node) (gmtext.Segment, bool) {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0), true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if seg, ok := firstSegment(c); ok {
			return seg, true
		}
	}
	return gmtext.Segment{}, false
}

// finalSegment finds the last source segment in a node's subtree.
func finalSegment(n ast.Node) (gmtext.Segment, bool) {
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if seg, ok := finalSegment(c); ok {
			return seg, true
		}
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(n.Lines().Len() - 1), true
	}
	return gmtext.Segment{}, false
}

func lastLine(idx *lineIndex, n ast.Node, startLine int) int {
	if seg, ok := finalSegment(n); ok && seg.Stop > seg.Start {
		return idx.lineOf(seg.Stop - 1)
	}
	return startLine
}

// lineIndex maps byte offsets in a source buffer to 0-based line numbers.
type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

func (x *lineIndex) lineOf(offset int) int {
	return sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	}) - 1
}

// isATX reports whether the line opens with an ATX heading marker.
func (x *lineIndex) isATX(line int) bool {
	if line < 0 || line >= len(x.starts) {
		return false
	}
	start := x.starts[line]
	end := len(x.src)
	if line+1 < len(x.starts) {
		end = x.starts[line+1]
	}
	content := bytes.TrimLeft(x.src[start:end], " ")
	return len(content) > 0 && content[0] == '#'
}

// isSetextUnderline reports whether line consists solely of '=' or '-'
// marker characters.
func (x *lineIndex) isSetextUnderline(line int) bool {
	if line < 0 || line >= len(x.starts) {
		return false
	}
	start := x.starts[line]
	end := len(x.src)
	if line+1 < len(x.starts) {
		end = x.starts[line+1]
	}
	content := bytes.TrimSpace(x.src[start:end])
	if len(content) == 0 {
		return false
	}
	marker := content[0]
	if marker != '=' && marker != '-' {
		return false
	}
	for _, b := range content {
		if b != marker {
			return false
		}
	}
	return true
}

// nextNonBlank returns the first line at or after from with non-whitespace
// content, or from itself when the scan runs off the end.
func (x *lineIndex) nextNonBlank(from int) int {
	for i := from; i < len(x.starts); i++ {
		start := x.starts[i]
		end := len(x.src)
		if i+1 < len(x.starts) {
			end = x.starts[i+1]
		}
		if len(bytes.TrimSpace(x.src[start:end])) > 0 {
			return i
		}
	}
	return from
}
