package trichess

import (
	"errors"
	"math"
	"testing"
)

func TestWorldToCubeOrigin(t *testing.T) {
	c := WorldToCube(0, -0.5)
	if c != Origin {
		t.Errorf("WorldToCube(0, -0.5) = %s, want (0,0,0)", c)
	}
}

func TestCubeToWorldOrigin(t *testing.T) {
	x, z, err := CubeToWorld(Origin)
	if err != nil {
		t.Fatalf("CubeToWorld(origin): %v", err)
	}
	if x != 0 || z != -0.5 {
		t.Errorf("CubeToWorld(origin) = (%v, %v), want (0, -0.5)", x, z)
	}
}

func TestCubeToWorldRejectsInvalid(t *testing.T) {
	_, _, err := CubeToWorld(Cube{A: 1, B: 1, C: 1})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("expected ErrInvariantViolation, got %v", err)
	}
}

func TestNewCube(t *testing.T) {
	if _, err := NewCube(1, -2, 1); err != nil {
		t.Errorf("NewCube(1,-2,1): %v", err)
	}
	if _, err := NewCube(1, 0, 0); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("NewCube(1,0,0) should violate the invariant, got %v", err)
	}
}

func TestWorldToCubeAlwaysValid(t *testing.T) {
	for x := -5.0; x <= 5.0; x += 0.37 {
		for z := -5.0; z <= 5.0; z += 0.41 {
			if c := WorldToCube(x, z); !c.Valid() {
				t.Fatalf("WorldToCube(%v, %v) = %s is not valid", x, z, c)
			}
		}
	}
}

func TestWorldToCubeNearestCell(t *testing.T) {
	// A small offset from a lattice point still maps to that point.
	want := MustCube(2, -3, 1)
	x, z, err := CubeToWorld(want)
	if err != nil {
		t.Fatal(err)
	}
	if got := WorldToCube(x+0.1, z-0.1); got != want {
		t.Errorf("WorldToCube near %s = %s", want, got)
	}
}

func TestRotateThreeTimesIsIdentity(t *testing.T) {
	c := MustCube(3, -1, -2)
	if got := c.Rotate().Rotate().Rotate(); got != c {
		t.Errorf("three rotations of %s = %s", c, got)
	}
	if got := c.Rotate(); !got.Valid() {
		t.Errorf("rotation broke the invariant: %s", got)
	}
}

func TestRotatePreservesDistance(t *testing.T) {
	c := MustCube(3, -1, -2)
	if c.Rotate().Distance(Origin) != c.Distance(Origin) {
		t.Error("rotation should preserve distance from origin")
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Cube
		want int
	}{
		{Origin, Origin, 0},
		{Origin, MustCube(1, -1, 0), 1},
		{Origin, MustCube(1, -2, 1), 2},
		{MustCube(-5, 1, 4), MustCube(5, -6, 1), 10},
	}
	for _, tt := range tests {
		if got := tt.a.Distance(tt.b); got != tt.want {
			t.Errorf("Distance(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseCube(t *testing.T) {
	tests := []struct {
		in      string
		want    Cube
		wantErr error
	}{
		{"0,0,0", Origin, nil},
		{"(-5,1,4)", MustCube(-5, 1, 4), nil},
		{" ( 2 , 4 , -6 ) ", MustCube(2, 4, -6), nil},
		{"1,1,1", Cube{}, ErrInvariantViolation},
		{"1,2", Cube{}, ErrInvalidNotation},
		{"a,b,c", Cube{}, ErrInvalidNotation},
	}
	for _, tt := range tests {
		got, err := ParseCube(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseCube(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCube(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCube(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCubeStringRoundTrip(t *testing.T) {
	c := MustCube(-3, 4, -1)
	got, err := ParseCube(c.String())
	if err != nil || got != c {
		t.Errorf("ParseCube(%q) = %s, %v", c.String(), got, err)
	}
}

func TestCubeToWorldSpacing(t *testing.T) {
	// Neighboring cells are sqrt(3)/2 apart.
	x0, z0, _ := CubeToWorld(Origin)
	x1, z1, _ := CubeToWorld(MustCube(1, -1, 0))
	d := math.Hypot(x1-x0, z1-z0)
	if math.Abs(d-math.Sqrt(3)/2) > 1e-9 {
		t.Errorf("neighbor spacing = %v, want %v", d, math.Sqrt(3)/2)
	}
}
