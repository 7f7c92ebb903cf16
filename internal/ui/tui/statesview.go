package tui

import (
	"fmt"
	"strings"
)

// statesView is a scrollable list of state codes.
type statesView struct {
	codes        []string
	cursor       int
	scrollOffset int
}

func (s *statesView) setCodes(codes []string) {
	selected := s.selected()
	s.codes = codes
	s.cursor = 0
	for i, c := range codes {
		if c == selected {
			s.cursor = i
			break
		}
	}
}

func (s *statesView) selected() string {
	if s.cursor < 0 || s.cursor >= len(s.codes) {
		return ""
	}
	return s.codes[s.cursor]
}

func (s *statesView) moveDown() {
	if s.cursor < len(s.codes)-1 {
		s.cursor++
	}
}

func (s *statesView) moveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *statesView) moveToTop() {
	s.cursor = 0
}

func (s *statesView) moveToBottom() {
	s.cursor = max(len(s.codes)-1, 0)
}

// view renders up to height rows. latest returns the value column for a
// state code.
func (s *statesView) view(height int, active string, latest func(string) string) string {
	if len(s.codes) == 0 {
		return "  " + styleLoading.Render("no per-state data") + "\n"
	}
	if height < 1 {
		height = 1
	}

	// Keep the cursor inside the viewport.
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
	maxOffset := max(len(s.codes)-height, 0)
	s.scrollOffset = max(0, min(s.scrollOffset, maxOffset))

	var b strings.Builder
	label := fmt.Sprintf("─ states (%d)", len(s.codes))
	b.WriteString(styleDivider.Render(label))
	b.WriteByte('\n')

	end := min(s.scrollOffset+height, len(s.codes))
	for i := s.scrollOffset; i < end; i++ {
		code := s.codes[i]
		pointer := "  "
		if i == s.cursor {
			pointer = styleCursor.Render("› ")
		}
		name := styleChoice.Render(fmt.Sprintf("%-4s", code))
		if code == active {
			name = styleChoiceActive.Render(fmt.Sprintf("%-4s", code))
		}
		line := fmt.Sprintf("  %s%s  %12s", pointer, name, latest(code))
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
