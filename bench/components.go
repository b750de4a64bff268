// Package bench compares depot iteration against arche.
package bench

import "github.com/go-gl/mathgl/mgl64"

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

// Body is the vector flavoured counterpart of Position and Velocity
type Body struct {
	Pos mgl64.Vec2
	Vel mgl64.Vec2
}
