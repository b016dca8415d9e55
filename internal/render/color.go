package render

import (
	"fmt"
	"image/color"
)

// named colors cover the catalog's palette; anything else can be given as
// "#rrggbb".
var named = map[string]color.RGBA{
	"white":  {255, 255, 255, 255},
	"grey":   {128, 128, 128, 255},
	"gray":   {128, 128, 128, 255},
	"yellow": {255, 215, 0, 255},
	"orange": {255, 140, 0, 255},
	"red":    {220, 60, 40, 255},
	"blue":   {70, 120, 255, 255},
	"cyan":   {0, 200, 200, 255},
	"green":  {60, 180, 90, 255},
}

// ParseColor resolves a color name or "#rrggbb" hex triplet, falling back
// to white for anything it cannot parse.
func ParseColor(s string) color.RGBA {
	if c, ok := named[s]; ok {
		return c
	}
	if len(s) == 7 && s[0] == '#' {
		var r, g, b uint8
		if n, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil && n == 3 {
			return color.RGBA{r, g, b, 255}
		}
	}
	return named["white"]
}
