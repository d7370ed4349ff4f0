package trichess

// Axes is a player's (forward, right, left) triple of unit direction
// vectors. Forward + Right + Left is always the zero vector.
type Axes struct {
	Forward Cube `json:"forward"`
	Right   Cube `json:"right"`
	Left    Cube `json:"left"`
}

// whiteAxes is White's canonical triple: forward is the direction White's
// home rows advance in, right the direction its files run.
var whiteAxes = Axes{
	Forward: MustCube(1, -1, 0),
	Right:   MustCube(0, 1, -1),
	Left:    MustCube(-1, 0, 1),
}

// AxesFor returns the axes of p: White's triple rotated 120° once for Brown
// and twice for Black. It panics if p is not a valid player.
func AxesFor(p Player) Axes {
	mustBeValid(p)
	axes := whiteAxes
	for i := Player(0); i < p; i++ {
		axes = axes.Rotate()
	}
	return axes
}

// Rotate turns all three axes by 120°.
func (a Axes) Rotate() Axes {
	return Axes{
		Forward: a.Forward.Rotate(),
		Right:   a.Right.Rotate(),
		Left:    a.Left.Rotate(),
	}
}

// Sum returns Forward + Right + Left.
func (a Axes) Sum() Cube {
	return a.Forward.Add(a.Right).Add(a.Left)
}

// combine returns f*Forward + r*Right + l*Left.
func (a Axes) combine(f, r, l int) Cube {
	return a.Forward.Scale(f).Add(a.Right.Scale(r)).Add(a.Left.Scale(l))
}

// Bishop-like steps, named from the player's point of view.
func (a Axes) bishopUpLeft() Cube    { return a.combine(1, -2, 1) }
func (a Axes) bishopUp() Cube        { return a.combine(2, -1, -1) }
func (a Axes) bishopUpRight() Cube   { return a.combine(1, 1, -2) }
func (a Axes) bishopDownRight() Cube { return a.bishopUpLeft().Neg() }
func (a Axes) bishopDown() Cube      { return a.bishopUp().Neg() }
func (a Axes) bishopDownLeft() Cube  { return a.bishopUpRight().Neg() }

// Rook-like steps.
func (a Axes) rookLeftUp() Cube    { return a.combine(1, -1, 0) }
func (a Axes) rookRightUp() Cube   { return a.combine(1, 0, -1) }
func (a Axes) rookRight() Cube     { return a.combine(0, 1, -1) }
func (a Axes) rookRightDown() Cube { return a.rookLeftUp().Neg() }
func (a Axes) rookLeftDown() Cube  { return a.rookRightUp().Neg() }
func (a Axes) rookLeft() Cube      { return a.rookRight().Neg() }
