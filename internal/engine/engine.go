// Package engine resolves the slide structure of a markdown document: the
// heading depth at which presentation units begin, and which unit contains
// a given cursor line. Both are single passes over the block-token stream
// produced by the tokenizer; the resolver runs fully before the locator so
// headings can be classified against a settled slide level.
package engine

import (
	"github.com/dvalk/slidenav/internal/token"
	"github.com/dvalk/slidenav/internal/tokenizer"
)

// Analysis is the resolved structure of one document snapshot. It is
// immutable once built and safe to share across calls.
type Analysis struct {
	Tokens     []token.Token
	SlideLevel int
}

// Analyze tokenizes a document and resolves its slide level.
func Analyze(src []byte) *Analysis {
	tokens := tokenizer.Tokenize(src)
	return &Analysis{
		Tokens:     tokens,
		SlideLevel: ResolveSlideLevel(tokens),
	}
}

// SlideIndex returns the ordinal of the unit containing cursorLine.
func (a *Analysis) SlideIndex(cursorLine int) int {
	return Locate(a.Tokens, cursorLine, a.SlideLevel)
}

// Result pairs the effective slide level with a located ordinal.
type Result struct {
	SlideLevel int `json:"slideLevel"`
	SlideIndex int `json:"slideIndex"`
}

// Resolve is the one-shot entry point: document text and cursor line in,
// slide level and containing-unit ordinal out.
func Resolve(src []byte, cursorLine int) Result {
	a := Analyze(src)
	return Result{
		SlideLevel: a.SlideLevel,
		SlideIndex: a.SlideIndex(cursorLine),
	}
}
