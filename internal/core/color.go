package core

// Color names a palette entry for a screen cell.
// The platform layer maps entries to terminal colors.
type Color uint8

// Palette entries. ColorNone leaves the terminal default in place.
const (
	ColorNone Color = iota
	ColorSky
	ColorCloud
	ColorPipe
	ColorPipeCap
	ColorGround
	ColorGroundStripe
	ColorGrass
	ColorLlama
	ColorText
	ColorBanner
)

// String returns the palette entry name.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorSky:
		return "sky"
	case ColorCloud:
		return "cloud"
	case ColorPipe:
		return "pipe"
	case ColorPipeCap:
		return "pipe-cap"
	case ColorGround:
		return "ground"
	case ColorGroundStripe:
		return "ground-stripe"
	case ColorGrass:
		return "grass"
	case ColorLlama:
		return "llama"
	case ColorText:
		return "text"
	case ColorBanner:
		return "banner"
	default:
		return "unknown"
	}
}
