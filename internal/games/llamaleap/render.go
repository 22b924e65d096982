package llamaleap

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/llama-leap/internal/config"
	"github.com/vovakirdan/llama-leap/internal/core"
)

// Variant is the visual theme. It only ever reaches the Renderer and the host.
type Variant int

const (
	VariantOverlay Variant = iota // Transparent, composited over the chat view
	VariantArcade                 // Opaque sky, standalone arcade tile
)

// ErrInvalidVariant is returned for an unknown variant name.
var ErrInvalidVariant = errors.New("llamaleap: unknown variant")

// String returns the variant name used on the command line.
func (v Variant) String() string {
	switch v {
	case VariantOverlay:
		return "overlay"
	case VariantArcade:
		return "arcade"
	default:
		return "unknown"
	}
}

// ParseVariant maps a name to a Variant.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "overlay", "":
		return VariantOverlay, nil
	case "arcade":
		return VariantArcade, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrInvalidVariant, name)
	}
}

// Banner and caption text.
const (
	BannerBusy   = "KIWI IS THINKING..."
	BannerReady  = "RESPONSE READY!"
	CaptionTitle = "Llama Leap"
	CaptionHint  = "Tap or Spacebar to fly"
)

// Cosmetic geometry, in surface units.
const (
	capOverhang    = 4.0  // Cap extends this far past each side of the pipe
	capHeight      = 24.0 // Cap thickness at the gap edge
	stripeFraction = 0.25 // Share of each ground stripe period that is drawn
)

// Visual characters for rendering
const (
	PipeChar    = '█'
	PipeCapChar = '▓'
	GrassChar   = '▀'
	StripeChar  = '╱'
)

// Player sprites by tilt, facing right.
const (
	SpriteLevel   = "~@>"
	SpriteRising  = "/@>"
	SpriteDiving  = "\\@>"
	SpriteCrashed = "x@x"
)

type cloud struct{ x, y, r float64 }

// Static decoration, in surface units.
var clouds = []cloud{
	{100, 100, 30}, {140, 90, 40}, {180, 100, 30},
	{240, 200, 25}, {270, 190, 35},
}

// Frame carries the inputs a frame needs besides the simulation state.
type Frame struct {
	Busy bool      // External "assistant is composing" flag (overlay only)
	Now  time.Time // Wall clock for cosmetic scrolling
}

// Renderer paints a State onto a Screen. It never modifies the state.
type Renderer struct {
	cfg     config.LeapConfig
	variant Variant
}

// NewRenderer creates a renderer for one variant.
func NewRenderer(cfg config.LeapConfig, v Variant) Renderer {
	return Renderer{cfg: cfg, variant: v}
}

// viewport maps surface units to screen cells.
type viewport struct {
	sx, sy float64
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// rect covers every cell the surface rectangle touches.
func (v viewport) rect(left, top, right, bottom float64) core.Rect {
	x0, y0 := v.col(left), v.row(top)
	x1 := int(math.Ceil(right * v.sx))
	y1 := int(math.Ceil(bottom * v.sy))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Draw renders one frame.
func (r Renderer) Draw(dst *core.Screen, s *State, f Frame) {
	vp := viewport{
		sx: float64(dst.Width()) / r.cfg.Surface.Width,
		sy: float64(dst.Height()) / r.cfg.Surface.Height,
	}

	r.drawBackground(dst, vp)
	for _, o := range s.Obstacles {
		r.drawObstacle(dst, vp, o)
	}
	r.drawGround(dst, vp, s.Mode, f.Now)
	r.drawPlayer(dst, vp, s)
	r.drawHeader(dst, s.Mode, f.Busy)
}

func (r Renderer) drawBackground(dst *core.Screen, vp viewport) {
	if r.variant != VariantArcade {
		dst.Clear()
		return
	}

	dst.Fill(' ', core.ColorSky)
	if !r.cfg.Render.CloudsEnabled {
		return
	}
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			// Cell center in surface units
			ux := (float64(x) + 0.5) / vp.sx
			uy := (float64(y) + 0.5) / vp.sy
			for _, c := range clouds {
				if math.Hypot(ux-c.x, uy-c.y) <= c.r {
					dst.SetCell(x, y, core.Cell{Rune: ' ', Bg: core.ColorCloud})
					break
				}
			}
		}
	}
}

func (r Renderer) drawObstacle(dst *core.Screen, vp viewport, o Obstacle) {
	w := r.cfg.Obstacles.Width
	gapBottom := o.GapTop + r.cfg.Obstacles.GapHeight
	ground := r.cfg.GroundY()

	dst.DrawRect(vp.rect(o.X, 0, o.X+w, o.GapTop), PipeChar, core.ColorPipe, core.ColorPipe)
	dst.DrawRect(vp.rect(o.X-capOverhang, o.GapTop-capHeight, o.X+w+capOverhang, o.GapTop),
		PipeCapChar, core.ColorPipeCap, core.ColorPipe)

	dst.DrawRect(vp.rect(o.X, gapBottom, o.X+w, ground), PipeChar, core.ColorPipe, core.ColorPipe)
	dst.DrawRect(vp.rect(o.X-capOverhang, gapBottom, o.X+w+capOverhang, gapBottom+capHeight),
		PipeCapChar, core.ColorPipeCap, core.ColorPipe)
}

// GroundOffset returns the scroll phase of the ground stripes.
// It depends on wall-clock time only and stops once the round is over.
func (r Renderer) GroundOffset(mode core.Mode, now time.Time) float64 {
	rc := r.cfg.Render
	if mode == core.ModeGameOver || rc.GroundScrollMS <= 0 || rc.GroundStripe <= 0 {
		return 0
	}
	ms := float64(now.UnixMilli())
	return math.Mod(ms/rc.GroundScrollMS, rc.GroundStripe)
}

func (r Renderer) drawGround(dst *core.Screen, vp viewport, mode core.Mode, now time.Time) {
	stripe := r.cfg.Render.GroundStripe
	offset := r.GroundOffset(mode, now)

	top := core.Clamp(vp.row(r.cfg.GroundY()), 0, dst.Height()-1)
	dst.DrawRect(core.NewRect(0, top, dst.Width(), dst.Height()-top), ' ', core.ColorNone, core.ColorGround)
	dst.DrawHLine(0, top, dst.Width(), GrassChar, core.ColorGrass, core.ColorGround)
	if stripe <= 0 {
		return
	}
	for y := top; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			ux := (float64(x)+0.5)/vp.sx + float64(y-top)*stripe/2
			if math.Mod(ux+offset, stripe) < stripe*stripeFraction {
				dst.SetCell(x, y, core.Cell{Rune: StripeChar, Fg: core.ColorGroundStripe, Bg: core.ColorGround})
			}
		}
	}
}

// Tilt returns the sprite rotation in radians: level while READY,
// velocity-driven and clamped to ±45° while PLAYING, nose-down after a crash.
func (r Renderer) Tilt(s *State) float64 {
	switch s.Mode {
	case core.ModePlaying:
		return core.ClampF(s.Velocity*r.cfg.Render.RotationScale, -math.Pi/4, math.Pi/4)
	case core.ModeGameOver:
		return math.Pi / 2
	default:
		return 0
	}
}

// Sprite picks the glyphs closest to a tilt angle.
func Sprite(tilt float64) string {
	switch {
	case tilt >= math.Pi/2:
		return SpriteCrashed
	case tilt <= -math.Pi/8:
		return SpriteRising
	case tilt >= math.Pi/8:
		return SpriteDiving
	default:
		return SpriteLevel
	}
}

func (r Renderer) drawPlayer(dst *core.Screen, vp viewport, s *State) {
	sprite := Sprite(r.Tilt(s))
	n := len([]rune(sprite))
	x := vp.col(r.cfg.Player.X) - n/2
	y := core.Clamp(vp.row(s.PlayerY), 0, dst.Height()-1)
	dst.DrawText(x, y, sprite, core.ColorLlama)
}

// drawHeader shows the status banner (overlay) or title caption (arcade).
// Both stay out of the way while a round is being played.
func (r Renderer) drawHeader(dst *core.Screen, mode core.Mode, busy bool) {
	if mode == core.ModePlaying || dst.Height() < 4 {
		return
	}

	switch r.variant {
	case VariantOverlay:
		text := BannerReady
		if busy {
			text = BannerBusy
		}
		bannerLine(dst, 1, text)
	case VariantArcade:
		if mode != core.ModeReady {
			return
		}
		bannerLine(dst, 1, CaptionTitle)
		bannerLine(dst, 2, CaptionHint)
	}
}

func bannerLine(dst *core.Screen, y int, text string) {
	padded := " " + text + " "
	x := (dst.Width() - len([]rune(padded))) / 2
	i := 0
	for _, ch := range padded {
		dst.SetCell(x+i, y, core.Cell{Rune: ch, Fg: core.ColorText, Bg: core.ColorBanner})
		i++
	}
}
