package engine

import (
	"math"

	"github.com/dvalk/slidenav/internal/frontmatter"
	"github.com/dvalk/slidenav/internal/token"
)

// inferState is the slide-level inference state advanced once per token.
// A heading shallower than anything seen so far is only a candidate: it
// becomes the inferred level when the scan proves it is "filled in" by
// content, a deeper heading, or an equal one. Zero values mean "none".
type inferState struct {
	minLevel  int
	pending   int
	committed int
}

// step is the pure transition function for one token.
func step(s inferState, t token.Token) inferState {
	switch t.Kind {
	case token.Heading:
		if t.Level < s.minLevel {
			s.minLevel = t.Level
			s.pending = t.Level
		} else if s.pending != 0 {
			// The pending shallow heading turned out to be a title over
			// this one, so this heading's depth is where slides begin.
			s.committed = t.Level
			s.pending = 0
		}
	case token.Rule:
		s.pending = 0
	case token.FrontMatter:
		// Consumed by the explicit-level lookup; inert for inference.
	default:
		if s.pending != 0 {
			s.committed = s.pending
			s.pending = 0
		}
	}
	return s
}

// ResolveSlideLevel determines the heading depth at which new slides begin.
// An explicit slide-level in front matter wins unconditionally; otherwise
// the level is inferred from heading usage by folding step over the stream.
// A document with no qualifying headings resolves to 0. Never fails: a
// malformed front-matter block is treated as carrying no explicit value.
func ResolveSlideLevel(tokens []token.Token) int {
	for _, t := range tokens {
		if t.Kind != token.FrontMatter || !t.Mapped() {
			continue
		}
		cfg, err := frontmatter.Decode(t.Raw)
		if err != nil {
			continue
		}
		if level, ok := cfg.SlideLevel(); ok {
			return level
		}
	}

	s := inferState{minLevel: math.MaxInt}
	for _, t := range tokens {
		if !t.Mapped() {
			continue
		}
		s = step(s, t)
	}
	if s.pending != 0 {
		s.committed = s.pending
	}
	return s.committed
}
