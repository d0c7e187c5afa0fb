package telem

import "golang.org/x/exp/constraints"

// Point is a value on a totally ordered axis. Integer kinds form a discrete axis
// on which Decrement and Increment are meaningful. Float kinds are accepted for
// callers that sweep in half-open mode or supply their own Predecessor.
type Point interface {
	constraints.Integer | constraints.Float
}

// Predecessor returns the largest point strictly before p.
type Predecessor[P Point] func(p P) P

// Successor returns the smallest point strictly after p.
type Successor[P Point] func(p P) P

// Decrement is the default Predecessor for discrete axes.
func Decrement[P Point](p P) P { return p - 1 }

// Increment is the default Successor for discrete axes.
func Increment[P Point](p P) P { return p + 1 }
