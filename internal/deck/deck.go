// Package deck derives a presentation outline from a document: one entry
// per structural unit, with the same boundaries the cursor locator counts.
package deck

import (
	"bytes"

	"github.com/dvalk/slidenav/internal/engine"
	"github.com/dvalk/slidenav/internal/frontmatter"
	"github.com/dvalk/slidenav/internal/token"
)

// Slide is one presentation unit.
type Slide struct {
	Index     int    `json:"index"`
	Title     string `json:"title,omitempty"`
	Level     int    `json:"level,omitempty"` // heading depth, 0 for title/rule slides
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Deck is the ordered outline of a document's slides.
type Deck struct {
	SlideLevel int     `json:"slideLevel"`
	Slides     []Slide `json:"slides"`
}

// Build analyzes src and returns its outline. A document with no boundary
// tokens yields a single untitled slide spanning the whole source, or an
// empty deck when the source is blank.
func Build(src []byte) *Deck {
	return FromAnalysis(engine.Analyze(src), src)
}

// FromAnalysis builds the outline from an existing analysis, so callers
// holding a cached one avoid re-tokenizing.
func FromAnalysis(a *engine.Analysis, src []byte) *Deck {
	d := &Deck{SlideLevel: a.SlideLevel}
	last := lastSourceLine(src)

	for _, t := range a.Tokens {
		if !t.Mapped() {
			continue
		}
		switch t.Kind {
		case token.FrontMatter:
			d.push(Slide{Title: titleFrom(t.Raw), StartLine: 0})
		case token.Rule:
			d.push(Slide{StartLine: t.Line})
		case token.Heading:
			if t.Level <= a.SlideLevel {
				d.push(Slide{Title: t.Text, Level: t.Level, StartLine: t.Line})
			}
		}
	}

	if len(d.Slides) == 0 {
		if len(bytes.TrimSpace(src)) == 0 {
			return d
		}
		d.Slides = []Slide{{StartLine: 0, EndLine: last}}
		return d
	}

	for i := range d.Slides {
		d.Slides[i].Index = i
		if i+1 < len(d.Slides) {
			d.Slides[i].EndLine = d.Slides[i+1].StartLine - 1
		} else {
			d.Slides[i].EndLine = last
		}
	}
	return d
}

func (d *Deck) push(s Slide) {
	d.Slides = append(d.Slides, s)
}

func titleFrom(raw string) string {
	cfg, err := frontmatter.Decode(raw)
	if err != nil {
		return ""
	}
	title, _ := cfg.Title()
	return title
}

func lastSourceLine(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := bytes.Count(src, []byte("\n"))
	if src[len(src)-1] == '\n' {
		n--
	}
	if n < 0 {
		n = 0
	}
	return n
}
