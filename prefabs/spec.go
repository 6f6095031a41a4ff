package prefabs

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLColor is an opaque "#rrggbb" sprite color.
type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("prefabs: color at line %d must be a string", value.Line)
	}
	rgb, err := hex.DecodeString(strings.TrimPrefix(value.Value, "#"))
	if err != nil || len(rgb) != 3 {
		return fmt.Errorf("prefabs: color %q at line %d is not #rrggbb", value.Value, value.Line)
	}
	c.NRGBA = color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
	return nil
}
