package serialize

import (
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Position is a zero-based line and UTF-16 character offset, the way
// editors address text.
type Position struct {
	Line      int `json:"line" yaml:"line"`
	Character int `json:"character" yaml:"character"`
}

// Range is a half-open text range.
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// TextEdit replaces the text of Range, also given as byte offsets into
// the original text, with NewText.
type TextEdit struct {
	Range       Range  `json:"range" yaml:"range"`
	StartOffset int    `json:"startOffset" yaml:"startOffset"`
	EndOffset   int    `json:"endOffset" yaml:"endOffset"`
	NewText     string `json:"newText" yaml:"newText"`
}

// Diff returns the line-based edits turning oldText into newText.
// Edits are ordered and do not overlap.
func Diff(oldText, newText string) []TextEdit {
	if oldText == newText {
		return nil
	}

	diffs := lineDiffs(oldText, newText)

	var (
		edits  []TextEdit
		cur    *TextEdit
		offset int
	)

	flush := func() {
		if cur != nil {
			edits = append(edits, *cur)
			cur = nil
		}
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			offset += len(d.Text)
		case diffmatchpatch.DiffDelete:
			if cur == nil {
				cur = &TextEdit{StartOffset: offset, EndOffset: offset}
			}

			offset += len(d.Text)
			cur.EndOffset = offset
		case diffmatchpatch.DiffInsert:
			if cur == nil {
				cur = &TextEdit{StartOffset: offset, EndOffset: offset}
			}

			cur.NewText += d.Text
		}
	}

	flush()

	lx := newLineIndex(oldText)
	for i := range edits {
		edits[i].Range = Range{Start: lx.position(edits[i].StartOffset), End: lx.position(edits[i].EndOffset)}
	}

	return edits
}

// lineDiffs diffs two texts line by line. Every distinct line is encoded
// as one rune so the diff never splits a line.
func lineDiffs(oldText, newText string) []diffmatchpatch.Diff {
	var lines []string

	codes := make(map[string]rune)

	encode := func(text string) []rune {
		var out []rune

		for text != "" {
			line := text
			if i := strings.IndexByte(text, '\n'); i >= 0 {
				line = text[:i+1]
			}

			text = text[len(line):]

			r, ok := codes[line]
			if !ok {
				r = lineRune(len(lines))
				codes[line] = r
				lines = append(lines, line)
			}

			out = append(out, r)
		}

		return out
	}

	a, b := encode(oldText), encode(newText)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	diffs := dmp.DiffMainRunes(a, b, false)
	for i := range diffs {
		var sb strings.Builder
		for _, r := range diffs[i].Text {
			sb.WriteString(lines[runeLine(r)])
		}

		diffs[i].Text = sb.String()
	}

	return diffs
}

// lineRune maps a line number to a rune outside the surrogate range, so
// it survives the rune to string conversions of the diff.
func lineRune(n int) rune {
	r := rune(n)
	if r >= 0xD800 {
		r += 0x800
	}

	return r
}

func runeLine(r rune) int {
	if r >= 0xD800 {
		r -= 0x800
	}

	return int(r)
}

// Apply applies ordered, non-overlapping edits to text.
func Apply(text string, edits []TextEdit) string {
	sorted := append([]TextEdit{}, edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartOffset < sorted[j].StartOffset })

	out := make([]byte, 0, len(text))
	last := 0

	for _, e := range sorted {
		out = append(out, text[last:e.StartOffset]...)
		out = append(out, e.NewText...)
		last = e.EndOffset
	}

	return string(append(out, text[last:]...))
}

type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &lineIndex{text: text, starts: starts}
}

func (lx *lineIndex) position(offset int) Position {
	line := sort.Search(len(lx.starts), func(i int) bool { return lx.starts[i] > offset }) - 1

	var character int

	for _, r := range lx.text[lx.starts[line]:offset] {
		if r == utf8.RuneError {
			character++
			continue
		}

		character += utf16.RuneLen(r)
	}

	return Position{Line: line, Character: character}
}
