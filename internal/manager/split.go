package manager

import (
	"math"

	"framed/internal/geom"
)

// Direction is the axis along which a split divides its region.
type Direction int

const (
	// Horizontal places children side by side, dividing the width.
	Horizontal Direction = iota
	// Vertical stacks children top to bottom, dividing the height.
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "unknown"
}

// PanelRef is the index of a panel in a Multiplex's panel table.
type PanelRef int

// NoPanel marks a split without a panel.
const NoPanel PanelRef = -1

// Split is the value held by each node of a Multiplex's split tree.
type Split struct {
	// Portion is the share of the parent's space this split asks for.
	Portion float64
	// Panel is the panel shown in this split's region, or NoPanel.
	Panel PanelRef
	// Region is the area computed by the last arrangement.
	Region geom.Region
	// Direction is how this split divides its region among its children.
	Direction Direction
}

// Distribute divides available cells among len(portions) children.
//
// Each child first gets floor(available*portion), but at least one cell.
// Portions summing to more than one are normalised first. Any shortfall
// is then handed out one cell at a time round-robin from the first child,
// and any surplus (possible when the one-cell minimum kicks in) is taken
// back one cell at a time from the largest child, preferring later ones.
// The result always sums to available. Callers must ensure
// available >= len(portions).
func Distribute(available int, portions []float64) []int {
	n := len(portions)
	if n == 0 {
		return nil
	}
	scale := 1.0
	var total float64
	for _, p := range portions {
		total += p
	}
	if total > 1 {
		scale = 1 / total
	}

	sizes := make([]int, n)
	sum := 0
	for i, p := range portions {
		sizes[i] = max(1, int(math.Floor(float64(available)*p*scale)))
		sum += sizes[i]
	}
	for i := 0; sum < available; i = (i + 1) % n {
		sizes[i]++
		sum++
	}
	for sum > available {
		largest := n - 1
		for i := n - 2; i >= 0; i-- {
			if sizes[i] > sizes[largest] {
				largest = i
			}
		}
		sizes[largest]--
		sum--
	}
	return sizes
}
