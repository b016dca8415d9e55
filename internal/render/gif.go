// Package render turns captured simulation frames into an animated GIF.
// It is a pure consumer of the core's render interface: positions, radii,
// and colors in, image frames out.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/sim"
)

// Options control projection and output pacing.
type Options struct {
	Width      int
	Height     int
	CanvasSize float64 // half-width of the view in meters
	BodyScale  float64 // display magnification of body radii
	Delay      int     // per-frame delay in 1/100 s
}

func DefaultOptions() Options {
	return Options{Width: 500, Height: 500, CanvasSize: 250e9, BodyScale: 250, Delay: 2}
}

// Renderer accumulates one paletted image per observed frame. It
// implements sim.Observer, so it can be attached to a Runner directly.
type Renderer struct {
	opts    Options
	palette color.Palette
	frames  []*image.Paletted
}

func New(opts Options) *Renderer {
	o := DefaultOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = o.Width, o.Height
	}
	if opts.CanvasSize <= 0 {
		opts.CanvasSize = o.CanvasSize
	}
	if opts.BodyScale <= 0 {
		opts.BodyScale = o.BodyScale
	}
	if opts.Delay <= 0 {
		opts.Delay = o.Delay
	}
	return &Renderer{opts: opts}
}

// OnFrame draws every body onto a black canvas with the elapsed day count
// in the corner, matching the animation's classic look.
func (r *Renderer) OnFrame(f sim.Frame) {
	if r.palette == nil {
		r.palette = buildPalette(f)
	}

	img := image.NewPaletted(image.Rect(0, 0, r.opts.Width, r.opts.Height), r.palette)
	// Index 0 is black; NewPaletted zeroes the buffer, so the background
	// is already set.

	for _, b := range f.Bodies {
		px, py := r.project(b.X.X, b.X.Y)
		radius := r.displayRadius(b.R)
		r.fillCircle(img, px, py, radius, ParseColor(b.Color))
	}

	r.drawLabel(img, fmt.Sprintf("DAY %d", int(f.Days()+0.5)))
	r.frames = append(r.frames, img)
}

// Frames returns the number of rendered frames.
func (r *Renderer) Frames() int { return len(r.frames) }

// Encode writes the accumulated frames as a looping animated GIF.
func (r *Renderer) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("render: no frames to encode")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.opts.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

// Save encodes the animation to a file.
func (r *Renderer) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Encode(f)
}

// project maps simulation coordinates to pixel coordinates, y up.
func (r *Renderer) project(x, y float64) (int, int) {
	half := r.opts.CanvasSize
	px := (x/half + 1) / 2 * float64(r.opts.Width)
	py := (1 - y/half) / 2 * float64(r.opts.Height)
	return int(px), int(py)
}

// displayRadius scales a physical radius to pixels, clamped so every body
// stays visible.
func (r *Renderer) displayRadius(radius float64) int {
	px := radius * r.opts.BodyScale / (2 * r.opts.CanvasSize) * float64(r.opts.Width)
	if px < 1 {
		return 1
	}
	return int(px)
}

func (r *Renderer) fillCircle(img *image.Paletted, cx, cy, radius int, c color.RGBA) {
	idx := uint8(r.palette.Index(c))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= r.opts.Width || y >= r.opts.Height {
				continue
			}
			img.SetColorIndex(x, y, idx)
		}
	}
}

func (r *Renderer) drawLabel(img *image.Paletted, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 20),
	}
	d.DrawString(text)
}

// buildPalette collects black, white, and every body color seen in the
// first frame. The body set is fixed, so one frame covers the whole run.
func buildPalette(f sim.Frame) color.Palette {
	p := color.Palette{color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255}}
	seen := map[color.RGBA]bool{}
	for _, b := range f.Bodies {
		c := ParseColor(b.Color)
		if !seen[c] {
			seen[c] = true
			p = append(p, c)
		}
	}
	return p
}
