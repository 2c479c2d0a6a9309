package domain

import "fmt"

// Region is a rectangular area of the screen in pixel coordinates.
type Region struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Center returns the midpoint of the region.
func (r Region) Center() Location {
	return Location{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether other lies entirely inside r.
func (r Region) Contains(other Region) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.W <= r.X+r.W && other.Y+other.H <= r.Y+r.H
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Location is a single point on the screen.
type Location struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Match is the result of locating a UI element on screen. StateName and
// ObjectName attribute the match back to the element that produced it, which
// is what the region resolver keys on.
type Match struct {
	Region     Region
	Score      float64
	StateName  string
	ObjectName string
}
