package token

// Kind classifies the block tokens the structure engine cares about.
type Kind int

const (
	// Other covers any line-mapped block that is not structural on its own
	// (paragraphs, lists, code blocks). It still matters: content after a
	// heading commits that heading as a slide-level candidate.
	Other Kind = iota
	FrontMatter
	Rule
	Heading
)

func (k Kind) String() string {
	switch k {
	case FrontMatter:
		return "front_matter"
	case Rule:
		return "rule"
	case Heading:
		return "heading"
	default:
		return "other"
	}
}

// Token is one block-level unit of a parsed document.
type Token struct {
	Kind Kind
	// Line is the 0-based source line of the token's first character.
	// Synthetic tokens with no source mapping carry -1 and are skipped
	// by the engine.
	Line int
	// Level is the heading depth (1-6); zero for non-headings.
	Level int
	// Text is the heading's plain text, used for outlines.
	Text string
	// Raw is the front-matter block's raw text, delimiters excluded.
	Raw string
}

// Mapped reports whether the token has a source position.
func (t Token) Mapped() bool {
	return t.Line >= 0
}
