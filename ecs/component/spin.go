package component

// Spin rotates an entity forever at Speed radians per second.
type Spin struct {
	Speed float64
}

var SpinComponent = NewComponent[Spin]()
