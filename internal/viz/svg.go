package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/render"
)

// Background is the clear colour shared by every surface.
var Background = render.RGBA{R: 0.02, G: 0.02, B: 0.05, A: 1}

// SVGSurface writes one frame as an SVG document. Additive blending maps to
// mix-blend-mode: screen, which saturates the same way for dim sprites.
type SVGSurface struct {
	Width, Height int

	proj  Projector
	cam   *camera.Camera
	blend render.BlendMode
	sb    strings.Builder
}

func NewSVGSurface(width, height int) *SVGSurface {
	return &SVGSurface{
		Width:  width,
		Height: height,
		proj:   NewProjector(width, height, 1),
	}
}

func (s *SVGSurface) BeginFrame(cam *camera.Camera) {
	s.cam = cam
	s.blend = render.BlendAdditive
	s.sb.Reset()
	s.sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g style="isolation:isolate">
`, s.Width, s.Height, s.Width, s.Height, Background.Colorful().Hex()))
}

func (s *SVGSurface) EndFrame() {
	s.sb.WriteString("</g>\n</svg>\n")
	s.cam = nil
}

func (s *SVGSurface) SetBlend(mode render.BlendMode) { s.blend = mode }
func (s *SVGSurface) SetDepthWrite(enabled bool)     {}
func (s *SVGSurface) SetLighting(enabled bool)       {}

func (s *SVGSurface) blendStyle() string {
	if s.blend == render.BlendAdditive {
		return ` style="mix-blend-mode:screen"`
	}
	return ""
}

func (s *SVGSurface) Sphere(center dynamo.Vec3, radius float64, c render.RGBA) {
	if s.cam == nil {
		return
	}
	x, y, dist, ok := s.proj.Project(s.cam, center)
	if !ok {
		return
	}
	r, _ := s.proj.Radius(radius, dist)
	s.sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"%s/>
`, x, y, r, c.Colorful().Clamped().Hex(), c.A, s.blendStyle()))
}

func (s *SVGSurface) Lines(segs []render.Segment, c render.RGBA) {
	if s.cam == nil {
		return
	}
	for _, seg := range segs {
		x0, y0, _, ok0 := s.proj.Project(s.cam, seg.A)
		x1, y1, _, ok1 := s.proj.Project(s.cam, seg.B)
		if !ok0 || !ok1 {
			continue
		}
		s.sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f"%s/>
`, x0, y0, x1, y1, c.Colorful().Clamped().Hex(), c.A, s.blendStyle()))
	}
}

func (s *SVGSurface) TriangleFan(center dynamo.Vec3, rim []dynamo.Vec3, c render.RGBA) {
	if s.cam == nil || len(rim) < 3 {
		return
	}
	var pts strings.Builder
	for i, p := range rim {
		x, y, _, ok := s.proj.Project(s.cam, p)
		if !ok {
			return
		}
		if i > 0 {
			pts.WriteByte(' ')
		}
		pts.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}
	s.sb.WriteString(fmt.Sprintf(`<polygon points="%s" fill="%s" fill-opacity="%.3f"%s/>
`, pts.String(), c.Colorful().Clamped().Hex(), c.A, s.blendStyle()))
}

func (s *SVGSurface) String() string { return s.sb.String() }

func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.sb.String())
	return int64(n), err
}

var _ render.Surface = (*SVGSurface)(nil)
