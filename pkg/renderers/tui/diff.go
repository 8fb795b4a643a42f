package tui

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// renderDiff renders a line diff of before and after, marking inserted
// lines with "+ " and deleted lines with "- ".
func renderDiff(before, after string, colored bool) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	added := newColor(colored, color.FgGreen)
	removed := newColor(colored, color.FgRed)

	var out strings.Builder
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				out.WriteString(added.Sprint("+ " + line))
			case diffmatchpatch.DiffDelete:
				out.WriteString(removed.Sprint("- " + line))
			default:
				out.WriteString("  " + line)
			}
			out.WriteByte('\n')
		}
	}
	return strings.TrimRight(out.String(), "\n")
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
