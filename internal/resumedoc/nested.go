package resumedoc

import (
	"strings"

	"resume-builder/internal/domain"
)

// Each reader starts at a trigger line and consumes the following lines
// while they are indented deeper than the trigger. It returns the index of
// the first line it did not consume.

var blockIndicators = map[string]bool{"|": true, ">": true, "|-": true, ">-": true, "|+": true, ">+": true}

// readSummary collects the inline value of the header plus every deeper
// line, trimmed and joined with single spaces.
func readSummary(lines []string, start int, inline string) (string, int) {
	base := indentOf(lines[start])
	var parts []string
	if inline != "" && !blockIndicators[inline] {
		parts = append(parts, inline)
	}
	i := start + 1
	for ; i < len(lines); i++ {
		if indentOf(lines[i]) <= base {
			break
		}
		parts = append(parts, strings.TrimSpace(lines[i]))
	}
	return strings.Join(parts, " "), i
}

// readAchievements reads "- name: X" entries one level below the trigger,
// each optionally followed on the very next line by "description: Y" one
// level further in. Anything else inside the window is skipped.
func readAchievements(lines []string, start int) ([]domain.Achievement, int) {
	base := indentOf(lines[start])
	itemIndent := base + 2
	descIndent := base + 4
	var out []domain.Achievement
	i := start + 1
	for i < len(lines) {
		if indentOf(lines[i]) <= base {
			break
		}
		l := splitLine(lines[i])
		i++
		if !l.dashed || !l.hasKey || l.key != "name" || l.indent != itemIndent {
			continue
		}
		a := domain.Achievement{Title: l.value}
		if i < len(lines) {
			next := splitLine(lines[i])
			if !next.blank && !next.dashed && next.hasKey && next.key == "description" && next.indent == descIndent {
				a.Description = next.value
				i++
			}
		}
		out = append(out, a)
	}
	return out, i
}

// splitItems splits a comma-separated skill list, trimming each item and
// dropping empties. Duplicates are kept.
func splitItems(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
