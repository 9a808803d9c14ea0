package engine

import (
	"testing"

	"github.com/dvalk/slidenav/internal/token"
)

func fm(raw string) token.Token {
	return token.Token{Kind: token.FrontMatter, Line: 0, Raw: raw}
}

func heading(line, level int) token.Token {
	return token.Token{Kind: token.Heading, Line: line, Level: level}
}

func rule(line int) token.Token {
	return token.Token{Kind: token.Rule, Line: line}
}

func para(line int) token.Token {
	return token.Token{Kind: token.Other, Line: line}
}

func TestResolveSlideLevel_ExplicitTopLevel(t *testing.T) {
	tokens := []token.Token{
		fm("slide-level: 2\n"),
		heading(2, 1),
		heading(4, 1),
		para(6),
	}
	// Heading usage would infer 1; the explicit value wins.
	if got := ResolveSlideLevel(tokens); got != 2 {
		t.Errorf("expected explicit slide level 2, got %d", got)
	}
}

func TestResolveSlideLevel_ExplicitNested(t *testing.T) {
	tokens := []token.Token{
		fm("format:\n  revealjs:\n    slide-level: 3\n"),
		heading(4, 1),
	}
	if got := ResolveSlideLevel(tokens); got != 3 {
		t.Errorf("expected nested slide level 3, got %d", got)
	}
}

func TestResolveSlideLevel_TopLevelKeyBeatsNested(t *testing.T) {
	tokens := []token.Token{
		fm("slide-level: 1\nformat:\n  revealjs:\n    slide-level: 3\n"),
	}
	if got := ResolveSlideLevel(tokens); got != 1 {
		t.Errorf("expected top-level key to win with 1, got %d", got)
	}
}

func TestResolveSlideLevel_MalformedFrontMatterInfers(t *testing.T) {
	tokens := []token.Token{
		fm("slide-level: [unclosed\n  broken: yaml: here\n"),
		heading(3, 1),
		para(5),
	}
	if got := ResolveSlideLevel(tokens); got != 1 {
		t.Errorf("expected inference to take over on bad front matter, got %d", got)
	}
}

func TestResolveSlideLevel_TitleThenSections(t *testing.T) {
	// A level-1 title immediately followed by level-2 sections: the deeper
	// heading commits, and slides begin at level 2.
	tokens := []token.Token{
		fm(""),
		heading(2, 1),
		heading(5, 2),
		rule(9),
	}
	if got := ResolveSlideLevel(tokens); got != 2 {
		t.Errorf("expected inferred slide level 2, got %d", got)
	}
}

func TestResolveSlideLevel_FlatTopLevelSections(t *testing.T) {
	// Three equal level-1 headings: the second commits the first.
	tokens := []token.Token{
		heading(0, 1),
		heading(3, 1),
		heading(6, 1),
	}
	if got := ResolveSlideLevel(tokens); got != 1 {
		t.Errorf("expected inferred slide level 1, got %d", got)
	}
}

func TestResolveSlideLevel_ContentCommitsCandidate(t *testing.T) {
	tokens := []token.Token{
		heading(0, 1),
		para(2),
	}
	if got := ResolveSlideLevel(tokens); got != 1 {
		t.Errorf("expected content to commit level 1, got %d", got)
	}
}

func TestResolveSlideLevel_RuleResetsPending(t *testing.T) {
	// The rule discards the candidate before any content confirms it.
	tokens := []token.Token{
		heading(0, 1),
		rule(2),
		para(4),
	}
	if got := ResolveSlideLevel(tokens); got != 0 {
		t.Errorf("expected 0 after rule reset, got %d", got)
	}
}

func TestResolveSlideLevel_RuleKeepsRunningMinimum(t *testing.T) {
	// The running minimum survives the rule, so the second h1 is not a
	// fresh candidate and there is nothing left for the paragraph to commit.
	tokens := []token.Token{
		heading(0, 1),
		rule(2),
		heading(4, 1),
		para(6),
	}
	if got := ResolveSlideLevel(tokens); got != 0 {
		t.Errorf("expected 0 (minimum survives rule), got %d", got)
	}
}

func TestResolveSlideLevel_PendingCommittedAtEndOfStream(t *testing.T) {
	tokens := []token.Token{
		heading(0, 2),
	}
	if got := ResolveSlideLevel(tokens); got != 2 {
		t.Errorf("expected trailing candidate committed at 2, got %d", got)
	}
}

func TestResolveSlideLevel_ShallowerHeadingAfterCommitWins(t *testing.T) {
	// A later, shallower heading re-opens candidacy and its commit
	// overrides the earlier one.
	tokens := []token.Token{
		heading(0, 2),
		para(2),
		heading(4, 1),
		para(6),
	}
	if got := ResolveSlideLevel(tokens); got != 1 {
		t.Errorf("expected later shallow heading to win with 1, got %d", got)
	}
}

func TestResolveSlideLevel_NoHeadings(t *testing.T) {
	tokens := []token.Token{
		para(0),
		rule(2),
		para(4),
	}
	if got := ResolveSlideLevel(tokens); got != 0 {
		t.Errorf("expected 0 for headingless document, got %d", got)
	}
}

func TestResolveSlideLevel_EmptyStream(t *testing.T) {
	if got := ResolveSlideLevel(nil); got != 0 {
		t.Errorf("expected 0 for empty stream, got %d", got)
	}
}

func TestResolveSlideLevel_SyntheticTokensIgnored(t *testing.T) {
	tokens := []token.Token{
		heading(0, 1),
		{Kind: token.Other, Line: -1}, // no source mapping: must not commit
		heading(3, 1),
	}
	if got := ResolveSlideLevel(tokens); got != 1 {
		t.Errorf("expected 1 with synthetic token skipped, got %d", got)
	}
}
