package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// A positive Radius selects a circle, otherwise Width/Height form a box
// centered on the Transform.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Width  float64
	Height float64
	Radius float64

	Mass          float64
	Friction      float64
	Elasticity    float64
	LinearDamping float64
	FixedRotation bool
	Static        bool

	// Frozen switches a dynamic body to kinematic so gameplay can move it by
	// hand. The physics system applies changes on its next update.
	Frozen bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
