package render

import (
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/particles"
)

var _ = Describe("depthSort keys", func() {
	forward := dynamo.V3(0.3, -0.2, -0.9)

	spread := func(n int) []particles.Particle {
		ps := make([]particles.Particle, n)
		for i := range ps {
			ps[i] = particles.Particle{
				Position: dynamo.V3(float64((i*7)%11)-5, float64((i*3)%5)-2, float64((i*13)%17)-8),
				Seed:     float64(i),
			}
		}
		return ps
	}

	It("keeps each key beside its particle after sorting", func() {
		ps := spread(300)
		keys := depthSort(ps, forward, nil)
		Expect(keys).To(HaveLen(len(ps)))
		for i, p := range ps {
			Expect(keys[i]).To(Equal(p.Position.Dot(forward)))
			if i > 0 {
				Expect(keys[i-1]).To(BeNumerically(">=", keys[i]))
			}
		}
	})

	It("orders ties the same way as a stable comparison sort", func() {
		a := spread(300)
		b := spread(300)
		depthSort(a, forward, make([]float64, 5, 400))
		sort.SliceStable(b, func(i, j int) bool {
			return b[i].Position.Dot(forward) > b[j].Position.Dot(forward)
		})
		for i := range a {
			Expect(a[i].Seed).To(Equal(b[i].Seed))
		}
	})

	It("reuses a buffer with enough capacity", func() {
		buf := make([]float64, 0, 512)
		keys := depthSort(spread(300), forward, buf)
		Expect(&keys[0]).To(BeIdenticalTo(&buf[:1][0]))

		r := New()
		sys := particles.New(particles.WithSeed(5))
		for i := 0; i < 60; i++ {
			sys.Spawn(0.8)
			sys.Advance(1.0/120.0, 0.8)
		}
		r.sorted = sys.Snapshot(r.sorted[:0])
		r.depths = depthSort(r.sorted, forward, r.depths)
		first := &r.depths[0]
		r.sorted = sys.Snapshot(r.sorted[:0])
		r.depths = depthSort(r.sorted, forward, r.depths)
		Expect(&r.depths[0]).To(BeIdenticalTo(first))
	})
})
