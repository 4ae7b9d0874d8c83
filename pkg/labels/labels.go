// Package labels holds the hour label sets that give each clock face its
// numbering scheme.
//
// A [LabelSet] is always stored 12-first: index 0 is drawn at the 12 o'clock
// position and indices 1 through 11 follow clockwise. Sources written in
// reading order (1 through 12) are converted once with [FromOneFirst] when
// the configuration is loaded; nothing rotates labels at draw time.
package labels

import (
	"fmt"
	"strings"

	"github.com/go-drift/exoclock/pkg/errors"
)

// Positions is the number of hour positions on a face.
const Positions = 12

// LabelSet is the ordered hour labels of one face, 12 o'clock first.
type LabelSet [Positions]string

// New builds a LabelSet from labels already in 12-first order.
// It returns a configuration error unless exactly twelve labels are given.
func New(src []string) (LabelSet, error) {
	var ls LabelSet
	if len(src) != Positions {
		return ls, errors.Config("labels.New", "label set needs %d labels, got %d", Positions, len(src))
	}
	copy(ls[:], src)
	return ls, nil
}

// FromOneFirst builds a LabelSet from labels written 1 o'clock first, with
// the 12 o'clock label last. The last label moves to index 0.
func FromOneFirst(src []string) (LabelSet, error) {
	var ls LabelSet
	if len(src) != Positions {
		return ls, errors.Config("labels.FromOneFirst", "label set needs %d labels, got %d", Positions, len(src))
	}
	ls[0] = src[Positions-1]
	copy(ls[1:], src[:Positions-1])
	return ls, nil
}

// MustFromOneFirst is like FromOneFirst but panics on error. It is meant for
// package-level tables whose length is fixed in source.
func MustFromOneFirst(src ...string) LabelSet {
	ls, err := FromOneFirst(src)
	if err != nil {
		panic(err)
	}
	return ls
}

// At returns the label for an hour on a 12-hour dial; 0 and 12 both map to
// the top position.
func (ls LabelSet) At(hour int) string {
	return ls[((hour%Positions)+Positions)%Positions]
}

// String renders the set 12-first, separated by spaces.
func (ls LabelSet) String() string {
	return strings.Join(ls[:], " ")
}

// ClockSpec pairs a label set with the title shown above its face.
type ClockSpec struct {
	Title  string
	Labels LabelSet
}

func (s ClockSpec) String() string {
	return fmt.Sprintf("%s [%s]", s.Title, s.Labels)
}

// Validate checks a panel's specs before any drawing happens.
func Validate(specs []ClockSpec) error {
	if len(specs) == 0 {
		return errors.Config("labels.Validate", "panel needs at least one clock")
	}
	for i, s := range specs {
		if strings.TrimSpace(s.Title) == "" {
			return errors.Config("labels.Validate", "clock %d has an empty title", i)
		}
	}
	return nil
}
