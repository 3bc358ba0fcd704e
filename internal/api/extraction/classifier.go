package extraction

import (
	"strings"

	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

const bulletMarker = "- "

type sectionState int

const (
	stateNone sectionState = iota
	stateMorning
	stateLunch
	stateDinner
)

func (s sectionState) section() (types.Section, bool) {
	switch s {
	case stateMorning:
		return types.SectionMorning, true
	case stateLunch:
		return types.SectionLunch, true
	case stateDinner:
		return types.SectionDinner, true
	}
	return 0, false
}

type lineKind int

const (
	lineDiscard lineKind = iota
	lineHeader
	lineItem
	lineOrphanItem
)

// sectionClassifier tracks which meal bucket the following bullets belong to.
// A fresh classifier is used for every city block.
type sectionClassifier struct {
	state sectionState
}

// headerState reports the section a header line opens. Keywords are checked
// in a fixed order and the first hit wins.
func headerState(line string) (sectionState, bool) {
	switch {
	case strings.Contains(line, "Morning"), strings.Contains(line, "Breakfast"):
		return stateMorning, true
	case strings.Contains(line, "Lunch"):
		return stateLunch, true
	case strings.Contains(line, "Dinner"), strings.Contains(line, "Evening"):
		return stateDinner, true
	}
	return stateNone, false
}

// next consumes one trimmed, non-blank line. For item lines it returns the
// bullet content with the marker stripped.
func (c *sectionClassifier) next(line string) (lineKind, string) {
	if st, ok := headerState(line); ok {
		c.state = st
		return lineHeader, ""
	}
	if !strings.HasPrefix(line, bulletMarker) {
		return lineDiscard, ""
	}
	content := line[len(bulletMarker):]
	if c.state == stateNone {
		return lineOrphanItem, content
	}
	return lineItem, content
}

// lines splits a block into trimmed, non-blank lines.
func lines(block string) []string {
	raw := strings.Split(block, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
