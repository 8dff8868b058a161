package render_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/palette"
	"github.com/san-kum/embersim/internal/particles"
	"github.com/san-kum/embersim/internal/render"
)

type fixedPhase float64

func (f fixedPhase) Phase() float64 { return float64(f) }

func warmSystem(ticks int, energy float64) *particles.System {
	sys := particles.New(particles.WithSeed(3), particles.WithPhase(fixedPhase(0.25)))
	for i := 0; i < ticks; i++ {
		sys.Spawn(energy)
		sys.Advance(1.0/120.0, energy)
	}
	return sys
}

var _ = Describe("DepthSort", func() {
	It("orders particles farthest first along the forward vector", func() {
		forward := dynamo.V3(0, 0, -1)
		ps := []particles.Particle{
			{Position: dynamo.V3(0, 0, 0.5), Seed: 1},
			{Position: dynamo.V3(0, 0, -1.0), Seed: 2},
			{Position: dynamo.V3(0, 0, 0.0), Seed: 3},
		}
		render.DepthSort(ps, forward)
		Expect(ps[0].Seed).To(Equal(2.0))
		Expect(ps[1].Seed).To(Equal(3.0))
		Expect(ps[2].Seed).To(Equal(1.0))
	})

	It("keeps insertion order for equal depths", func() {
		forward := dynamo.V3(0, 0, -1)
		ps := []particles.Particle{
			{Position: dynamo.V3(1, 0, 0), Seed: 1},
			{Position: dynamo.V3(-1, 0, 0), Seed: 2},
			{Position: dynamo.V3(0, 1, 0), Seed: 3},
		}
		render.DepthSort(ps, forward)
		Expect([]float64{ps[0].Seed, ps[1].Seed, ps[2].Seed}).To(Equal([]float64{1, 2, 3}))
	})

	It("produces non-increasing depth for a live system", func() {
		cam := camera.Default()
		ps := warmSystem(200, 0.6).Snapshot(nil)
		render.DepthSort(ps, cam.Forward())
		for i := 1; i < len(ps); i++ {
			Expect(ps[i-1].Position.Dot(cam.Forward())).To(BeNumerically(">=", ps[i].Position.Dot(cam.Forward())))
		}
	})
})

var _ = Describe("Scene geometry", func() {
	It("closes the burner rim at the burner height", func() {
		rim := render.BurnerRim(render.BurnerRadius, render.BurnerSegments)
		Expect(rim).To(HaveLen(render.BurnerSegments + 1))
		Expect(rim[0].X).To(BeNumerically("~", rim[len(rim)-1].X, 1e-12))
		Expect(rim[0].Z).To(BeNumerically("~", rim[len(rim)-1].Z, 1e-12))
		for _, p := range rim {
			Expect(p.Y).To(Equal(particles.Burner.Y))
			Expect(math.Hypot(p.X, p.Z)).To(BeNumerically("~", render.BurnerRadius, 1e-12))
		}
	})

	It("builds twelve edges of full side length", func() {
		edges := render.BoxEdges(render.BoxHalfSize)
		Expect(edges).To(HaveLen(12))
		for _, e := range edges {
			Expect(e.B.Sub(e.A).Length()).To(BeNumerically("~", 2*render.BoxHalfSize, 1e-12))
		}
	})
})

var _ = Describe("Renderer", func() {
	var (
		rec *recorder
		cam *camera.Camera
		r   *render.Renderer
	)

	BeforeEach(func() {
		rec = newRecorder()
		cam = camera.Default()
		r = render.New()
	})

	It("draws the frame in a fixed order", func() {
		sys := warmSystem(120, 0.5)
		n := r.Draw(rec, cam, sys, 0.5)
		Expect(n).To(Equal(sys.Len()))
		Expect(rec.ops).To(Equal([]string{
			"begin",
			"lighting:false",
			"blend:alpha", "fan", "blend:additive",
			"lighting:false", "depth:false", "sphere", "depth:true",
			"blend:alpha", "lines", "blend:additive",
			"end",
		}))
		Expect(rec.inFrame).To(BeFalse())
	})

	It("draws every sphere additively without depth writes", func() {
		sys := warmSystem(120, 0.9)
		r.Draw(rec, cam, sys, 0.9)
		Expect(rec.spheres).To(HaveLen(sys.Len()))
		for _, s := range rec.spheres {
			Expect(s.blend).To(Equal(render.BlendAdditive))
			Expect(s.depth).To(BeFalse())
		}
		Expect(rec.depth).To(BeTrue())
		Expect(rec.blend).To(Equal(render.BlendAdditive))
	})

	It("submits spheres farthest first", func() {
		sys := warmSystem(150, 0.4)
		r.Draw(rec, cam, sys, 0.4)
		f := cam.Forward()
		for i := 1; i < len(rec.spheres); i++ {
			Expect(rec.spheres[i-1].center.Dot(f)).To(BeNumerically(">=", rec.spheres[i].center.Dot(f)))
		}
	})

	It("colours spheres from the palette", func() {
		sys := warmSystem(60, 0.2)
		r.Draw(rec, cam, sys, 0.2)
		byPos := map[dynamo.Vec3]particles.Particle{}
		sys.Each(func(p particles.Particle) { byPos[p.Position] = p })
		for _, s := range rec.spheres {
			p, ok := byPos[s.center]
			Expect(ok).To(BeTrue())
			age := p.AgeFraction()
			want := palette.Color(0.2, age)
			Expect(s.color.R).To(BeNumerically("~", want.R, 1e-12))
			Expect(s.color.G).To(BeNumerically("~", want.G, 1e-12))
			Expect(s.color.B).To(BeNumerically("~", want.B, 1e-12))
			Expect(s.color.A).To(BeNumerically("~", palette.Alpha(age), 1e-12))
			Expect(s.radius).To(Equal(p.Radius))
		}
	})

	It("draws only the static scene when empty", func() {
		sys := particles.New(particles.WithSeed(1))
		Expect(r.Draw(rec, cam, sys, 0.5)).To(Equal(0))
		Expect(rec.spheres).To(BeEmpty())
		Expect(rec.fans).To(Equal(1))
		Expect(rec.lines).To(HaveLen(12))
		Expect(rec.ops).NotTo(ContainElement("sphere"))
	})

	It("does not reorder the system's own storage", func() {
		sys := warmSystem(90, 0.7)
		before := sys.Snapshot(nil)
		r.Draw(rec, cam, sys, 0.7)
		Expect(sys.Snapshot(nil)).To(Equal(before))
	})
})
