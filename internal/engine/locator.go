package engine

import "github.com/dvalk/slidenav/internal/token"

// itemKind tags entries in the boundary-item sequence the locator builds.
type itemKind int

const (
	itemTitle itemKind = iota
	itemRule
	itemHeading
	itemCursor
)

// item is one structural boundary event, in source order, with the cursor
// spliced in wherever its line falls.
type item struct {
	kind  itemKind
	line  int
	level int
}

// Locate returns the zero-based ordinal of the structural unit containing
// cursorLine. A unit begins at the document title block, at a horizontal
// rule, or at a heading no deeper than slideLevel. Negative cursor lines
// are clamped to 0. Never fails: a cursor past the end of the document
// lands in the last unit, and a document with no boundaries yields 0.
func Locate(tokens []token.Token, cursorLine, slideLevel int) int {
	if cursorLine < 0 {
		cursorLine = 0
	}

	items := make([]item, 0, len(tokens)+1)
	cursorPlaced := false
	lastLine := 0

	for _, t := range tokens {
		if !t.Mapped() {
			continue
		}
		if !cursorPlaced && cursorLine < t.Line {
			items = append(items, item{kind: itemCursor, line: cursorLine})
			cursorPlaced = true
		}
		switch t.Kind {
		case token.FrontMatter:
			items = append(items, item{kind: itemTitle, line: 0})
		case token.Rule:
			items = append(items, item{kind: itemRule, line: t.Line})
		case token.Heading:
			items = append(items, item{kind: itemHeading, line: t.Line, level: t.Level})
		}
		lastLine = t.Line
	}
	if !cursorPlaced {
		items = append(items, item{kind: itemCursor, line: lastLine})
	}

	slideIndex := -1
	for _, it := range items {
		switch it.kind {
		case itemTitle, itemRule:
			slideIndex++
		case itemHeading:
			if it.level <= slideLevel {
				slideIndex++
			}
		case itemCursor:
			return max(slideIndex, 0)
		}
	}
	return 0
}
