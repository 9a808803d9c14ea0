package engine

import "testing"

func TestResolve_PresentationDocument(t *testing.T) {
	src := []byte(`---
title: Quarterly Review
---

# Quarterly Review

## Revenue

Revenue grew.

## Costs

Costs fell.
`)
	// No explicit slide-level: the h1 title followed by h2 sections
	// infers level 2.
	res := Resolve(src, 0)
	if res.SlideLevel != 2 {
		t.Fatalf("expected inferred slide level 2, got %d", res.SlideLevel)
	}
	if res.SlideIndex != 0 {
		t.Errorf("cursor on front matter: expected unit 0, got %d", res.SlideIndex)
	}

	// Line 8 ("Revenue grew.") is inside the Revenue slide:
	// title block (0), h1 (1), h2 Revenue (2).
	if got := Resolve(src, 8).SlideIndex; got != 2 {
		t.Errorf("expected Revenue slide ordinal 2, got %d", got)
	}

	// Past the end of the document lands in the last slide.
	if got := Resolve(src, 500).SlideIndex; got != 3 {
		t.Errorf("expected final slide ordinal 3, got %d", got)
	}
}

func TestResolve_ExplicitLevelOverridesUsage(t *testing.T) {
	src := []byte(`---
slide-level: 1
---

# Part One

## Detail

text
`)
	res := Resolve(src, 8)
	if res.SlideLevel != 1 {
		t.Fatalf("expected explicit slide level 1, got %d", res.SlideLevel)
	}
	// Units: title block (0), h1 (1); the h2 is a sub-point.
	if res.SlideIndex != 1 {
		t.Errorf("expected ordinal 1, got %d", res.SlideIndex)
	}
}

func TestResolve_RuleDelimitedSlides(t *testing.T) {
	src := []byte(`First slide.

---

Second slide.

---

Third slide.
`)
	// With no title block the ordinal clamp merges the leading paragraph
	// with the unit the first rule opens.
	cases := []struct {
		line int
		want int
	}{
		{0, 0},
		{2, 0},
		{4, 0},
		{6, 1},
		{8, 1},
	}
	for _, tc := range cases {
		if got := Resolve(src, tc.line).SlideIndex; got != tc.want {
			t.Errorf("cursor line %d: expected %d, got %d", tc.line, tc.want, got)
		}
	}
}

func TestResolve_EmptyDocument(t *testing.T) {
	res := Resolve(nil, 0)
	if res.SlideLevel != 0 || res.SlideIndex != 0 {
		t.Errorf("expected zero result for empty document, got %+v", res)
	}
}

func TestResolve_PlainTextDocument(t *testing.T) {
	src := []byte("just a paragraph\n\nand another\n")
	for _, line := range []int{0, 1, 2, 99} {
		if got := Resolve(src, line).SlideIndex; got != 0 {
			t.Errorf("cursor %d: expected 0 for structureless document, got %d", line, got)
		}
	}
}
