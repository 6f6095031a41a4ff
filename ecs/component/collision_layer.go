package component

import "strings"

// Category is a collision category bit. Values are powers of two so masks can
// be combined freely.
type Category uint32

const (
	CategoryPlayer Category = 1 << iota
	CategoryWall
	CategoryStar
	CategoryVortex
	CategoryTeleporter
	CategoryFinish
)

const (
	CategoryNone Category = 0

	// AllCategories matches every category.
	AllCategories = CategoryPlayer | CategoryWall | CategoryStar | CategoryVortex | CategoryTeleporter | CategoryFinish

	// PlayerContactMask is every category the player reports gameplay
	// contacts against.
	PlayerContactMask = CategoryStar | CategoryVortex | CategoryTeleporter | CategoryFinish
)

var categoryNames = []struct {
	c    Category
	name string
}{
	{CategoryPlayer, "player"},
	{CategoryWall, "wall"},
	{CategoryStar, "star"},
	{CategoryVortex, "vortex"},
	{CategoryTeleporter, "teleporter"},
	{CategoryFinish, "finish"},
}

// Has reports whether every bit of other is set in c.
func (c Category) Has(other Category) bool {
	return other != 0 && c&other == other
}

func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	parts := make([]string, 0, 2)
	for _, n := range categoryNames {
		if c&n.c != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// ParseCategory resolves a single category name as written in prefab specs.
func ParseCategory(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range categoryNames {
		if n.name == name {
			return n.c, true
		}
	}
	return CategoryNone, false
}

// CollisionLayer declares what an entity is and what it interacts with.
type CollisionLayer struct {
	// Category is this entity's own tag.
	Category Category
	// ContactMask lists categories that produce gameplay contact events.
	ContactMask Category
	// CollisionMask lists categories that physically block this entity. A
	// zero mask makes the shape a sensor.
	CollisionMask Category
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
