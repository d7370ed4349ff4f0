package trichess

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cube is a cube coordinate (a, b, c) identifying one hexagonal cell.
// Every coordinate that denotes a board cell satisfies a + b + c = 0.
// Direction vectors use the same type.
type Cube struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

// Origin is the cube coordinate (0, 0, 0).
var Origin = Cube{}

// NewCube creates a cube coordinate, rejecting triples with a + b + c != 0.
func NewCube(a, b, c int) (Cube, error) {
	cube := Cube{A: a, B: b, C: c}
	if !cube.Valid() {
		return Cube{}, fmt.Errorf("%w: %s sums to %d", ErrInvariantViolation, cube, a+b+c)
	}
	return cube, nil
}

// MustCube is like NewCube but panics on an invalid triple.
// Intended for package-level constants.
func MustCube(a, b, c int) Cube {
	cube, err := NewCube(a, b, c)
	if err != nil {
		panic(err)
	}
	return cube
}

// Valid reports whether a + b + c = 0.
func (c Cube) Valid() bool {
	return c.A+c.B+c.C == 0
}

// Add returns c + o.
func (c Cube) Add(o Cube) Cube {
	return Cube{A: c.A + o.A, B: c.B + o.B, C: c.C + o.C}
}

// Sub returns c - o.
func (c Cube) Sub(o Cube) Cube {
	return Cube{A: c.A - o.A, B: c.B - o.B, C: c.C - o.C}
}

// Scale returns k * c.
func (c Cube) Scale(k int) Cube {
	return Cube{A: k * c.A, B: k * c.B, C: k * c.C}
}

// Neg returns -c.
func (c Cube) Neg() Cube {
	return c.Scale(-1)
}

// Rotate turns c by 120° about the origin: (a, b, c) -> (c, a, b).
// Three rotations are the identity.
func (c Cube) Rotate() Cube {
	return Cube{A: c.C, B: c.A, C: c.B}
}

// Distance returns the hex distance between c and o.
func (c Cube) Distance(o Cube) int {
	d := c.Sub(o)
	return (abs(d.A) + abs(d.B) + abs(d.C)) / 2
}

// String returns the coordinate as "(a,b,c)".
func (c Cube) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.A, c.B, c.C)
}

// ParseCube parses "a,b,c" with optional surrounding parentheses and spaces.
func ParseCube(s string) (Cube, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Cube{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Cube{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
		v[i] = n
	}

	return NewCube(v[0], v[1], v[2])
}

// Surface geometry. The lattice basis vectors on the (x, z) surface are
//
//	a0 = (0, 1/2)
//	b0 = ( cos(pi/6)/2, -sin(pi/6)/2)
//	c0 = (-cos(pi/6)/2, -sin(pi/6)/2)
//
// and with c = -a - b a position is x = sqrt(3)/2*(a/2 + b), z = 3/4*a.
// The board origin sits half a unit below the lattice origin.
const originOffsetZ = 0.5

var sqrt3 = math.Sqrt(3)

// WorldToCube maps a surface position to the nearest cube coordinate.
// a and b are rounded half to even; c is derived so the result always
// satisfies the invariant.
func WorldToCube(x, z float64) Cube {
	z += originOffsetZ

	a := int(math.RoundToEven(4.0 / 3.0 * z))
	b := int(math.RoundToEven(2.0/sqrt3*x - 2.0/3.0*z))

	return Cube{A: a, B: b, C: -a - b}
}

// CubeToWorld maps a cube coordinate to its surface position.
// c is redundant given the invariant, but an invalid triple is rejected.
func CubeToWorld(c Cube) (x, z float64, err error) {
	if !c.Valid() {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvariantViolation, c)
	}

	a := float64(c.A)
	b := float64(c.B)

	x = sqrt3 / 2.0 * (a/2.0 + b)
	z = 3.0/4.0*a - originOffsetZ
	return x, z, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
