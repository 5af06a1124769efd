package component

import "github.com/jakecoffman/cp"

// Transform is an entity's world position. Positions share the engine's
// physics vector type.
type Transform struct {
	Pos cp.Vector
}

var TransformComponent = NewComponent[Transform]()
