package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// MapNode marks entities created from level tiles. They are all destroyed
// when a level is (re)loaded.
type MapNode struct {
	Row    int
	Column int
}

var MapNodeComponent = NewComponent[MapNode]()
