package sim

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Add(dr, dg, db int) RGB {
	r := int(c.R) + dr
	g := int(c.G) + dg
	b := int(c.B) + db
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

var Palette = struct {
	White  RGB
	Black  RGB
	Red    RGB
	Blue   RGB
	Green  RGB
	Yellow RGB
	Purple RGB
	Orange RGB
	Cyan   RGB
	Gray   RGB
	Steel  RGB
}{
	White:  RGB{R: 255, G: 255, B: 255},
	Black:  RGB{R: 0, G: 0, B: 0},
	Red:    RGB{R: 255, G: 0, B: 0},
	Blue:   RGB{R: 0, G: 0, B: 255},
	Green:  RGB{R: 0, G: 255, B: 0},
	Yellow: RGB{R: 255, G: 255, B: 0},
	Purple: RGB{R: 128, G: 0, B: 128},
	Orange: RGB{R: 255, G: 165, B: 0},
	Cyan:   RGB{R: 0, G: 255, B: 255},
	Gray:   RGB{R: 128, G: 128, B: 128},
	Steel:  RGB{R: 100, G: 100, B: 200},
}

// CubeColor is one selectable player colour.
type CubeColor struct {
	Name string
	Col  RGB
}

// CubeColors lists the colours offered on the customize screen, in display order.
var CubeColors = []CubeColor{
	{Name: "Red", Col: Palette.Red},
	{Name: "Green", Col: Palette.Green},
	{Name: "Blue", Col: Palette.Blue},
	{Name: "Yellow", Col: Palette.Yellow},
	{Name: "Purple", Col: Palette.Purple},
	{Name: "Orange", Col: Palette.Orange},
	{Name: "Cyan", Col: Palette.Cyan},
}
