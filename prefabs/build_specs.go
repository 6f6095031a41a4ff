package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

// LoadEntityBuildSpec reads a prefab, preferring the copy in Dir.
func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	var spec EntityBuildSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Shape  string    `yaml:"shape"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Color  YAMLColor `yaml:"color"`
	Accent YAMLColor `yaml:"accent"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

// PhysicsBodyComponentSpec sizes the collider. A zero radius on a "circle"
// shape means half the sprite width; a zero box size means the sprite size.
type PhysicsBodyComponentSpec struct {
	Shape         string  `yaml:"shape"`
	Radius        float64 `yaml:"radius"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	LinearDamping float64 `yaml:"linear_damping"`
	FixedRotation bool    `yaml:"fixed_rotation"`
	Static        bool    `yaml:"static"`
}

// CollisionLayerComponentSpec lists category names. The special name "all"
// selects every category.
type CollisionLayerComponentSpec struct {
	Category      string   `yaml:"category"`
	ContactMask   []string `yaml:"contact_mask"`
	CollisionMask []string `yaml:"collision_mask"`
}

type SpinComponentSpec struct {
	DegreesPerSecond float64 `yaml:"degrees_per_second"`
}
