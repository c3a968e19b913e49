package hexchess

// Axis is one of the three directions of hex adjacency.
type Axis int

const (
	// AxisA steps across files toward lower file indices for positive
	// distances, correcting the rank on the right-hand half of the board.
	AxisA Axis = iota
	// AxisB is the straight axis: rank only.
	AxisB
	// AxisC mirrors AxisA: toward higher file indices, correcting the rank
	// on the left-hand half.
	AxisC
)

// Step is a signed distance along one axis.
type Step struct {
	Axis     Axis
	Distance int
}

// Offset returns the coordinate reached by moving distance cells along axis.
// The result may be off the board; callers look it up with Board.Cell.
func (c Coords) Offset(axis Axis, distance int) Coords {
	if distance == 0 {
		return c
	}
	switch axis {
	case AxisA:
		shift := lateralShift(c.File-CenterFile, distance)
		return Coords{File: c.File - distance, Rank: c.Rank + shift*sign(distance)}
	case AxisC:
		shift := lateralShift(CenterFile-c.File, distance)
		return Coords{File: c.File + distance, Rank: c.Rank + shift*sign(distance)}
	default:
		return Coords{File: c.File, Rank: c.Rank + distance}
	}
}

// lateralShift is the number of rank corrections a step of distance picks up
// while crossing the center file; fromAxis is the signed file distance to the
// center measured on the side the axis corrects.
func lateralShift(fromAxis, distance int) int {
	towardAxis := min(max(0, fromAxis*sign(distance)), abs(distance))
	if distance > 0 {
		return towardAxis
	}
	return abs(distance) - towardAxis
}

// Apply folds the steps over c. Intermediate coordinates may leave the board.
func (c Coords) Apply(steps []Step) Coords {
	for _, s := range steps {
		c = c.Offset(s.Axis, s.Distance)
	}
	return c
}

var flatDirections = [][]Step{
	{{AxisA, 1}},
	{{AxisB, 1}},
	{{AxisC, 1}},
	{{AxisA, -1}},
	{{AxisB, -1}},
	{{AxisC, -1}},
}

var diagonalDirections = [][]Step{
	{{AxisA, 1}, {AxisB, 1}},
	{{AxisB, 1}, {AxisC, 1}},
	{{AxisC, 1}, {AxisA, -1}},
	{{AxisA, -1}, {AxisB, -1}},
	{{AxisB, -1}, {AxisC, -1}},
	{{AxisC, -1}, {AxisA, 1}},
}

var knightJumps = [][]Step{
	{{AxisA, 2}, {AxisC, -1}},
	{{AxisA, 2}, {AxisB, 1}},
	{{AxisB, 2}, {AxisA, 1}},
	{{AxisB, 2}, {AxisC, 1}},
	{{AxisC, 2}, {AxisB, 1}},
	{{AxisC, 2}, {AxisA, -1}},
	{{AxisA, -2}, {AxisC, 1}},
	{{AxisA, -2}, {AxisB, -1}},
	{{AxisB, -2}, {AxisA, -1}},
	{{AxisB, -2}, {AxisC, -1}},
	{{AxisC, -2}, {AxisB, -1}},
	{{AxisC, -2}, {AxisA, 1}},
}

// royalDirections is the queen and king direction set.
var royalDirections = append(append([][]Step{}, flatDirections...), diagonalDirections...)
