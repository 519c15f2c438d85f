package ordering

import (
	"hash/fnv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/hourlog/internal/constants"
)

// Palette hands out a stable color per activity. Built-in categories use
// fixed colors, custom labels get one derived from a hash of the label. The
// cache lives only as long as the palette.
type Palette struct {
	cache map[string]string
}

func NewPalette() *Palette {
	cache := make(map[string]string, len(constants.BaseColors))
	for activity, color := range constants.BaseColors {
		cache[activity] = color
	}
	return &Palette{cache: cache}
}

// Color returns the hex color for activity.
func (p *Palette) Color(activity string) string {
	if c, ok := p.cache[activity]; ok {
		return c
	}
	c := derivedColor(activity)
	p.cache[activity] = c
	return c
}

func derivedColor(label string) string {
	h := fnv.New32a()
	h.Write([]byte(label))
	sum := h.Sum32()

	hue := float64(sum % 360)
	sat := 0.55 + float64((sum>>9)%30)/100
	val := 0.75 + float64((sum>>17)%20)/100
	return colorful.Hsv(hue, sat, val).Hex()
}
