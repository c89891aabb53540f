package boids

import (
	"errors"
	"math"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatFloat(t *testing.T) {
	Convey("When floats are formatted for gnuplot", t, func() {
		Convey("Integral values carry a single trailing zero", func() {
			So(FormatFloat(1), ShouldEqual, "1.0")
			So(FormatFloat(-2), ShouldEqual, "-2.0")
			So(FormatFloat(1000), ShouldEqual, "1000.0")
		})

		Convey("Fractional values print the shortest round-trip form", func() {
			So(FormatFloat(1.5), ShouldEqual, "1.5")
			So(FormatFloat(0.1), ShouldEqual, "0.1")
			So(FormatFloat(-0.5), ShouldEqual, "-0.5")
			So(FormatFloat(123.456), ShouldEqual, "123.456")
			So(FormatFloat(0.001), ShouldEqual, "0.001")
		})

		Convey("Zeros keep their sign", func() {
			So(FormatFloat(0), ShouldEqual, "0.0")
			So(FormatFloat(math.Copysign(0, -1)), ShouldEqual, "-0.0")
		})

		Convey("Very large and very small magnitudes use E-notation", func() {
			So(FormatFloat(1e7), ShouldEqual, "1.0E7")
			So(FormatFloat(12345678.9), ShouldEqual, "1.23456789E7")
			So(FormatFloat(0.00015), ShouldEqual, "1.5E-4")
			So(FormatFloat(-2e-5), ShouldEqual, "-2.0E-5")
		})

		Convey("Non-finite values are spelled out", func() {
			So(FormatFloat(math.NaN()), ShouldEqual, "NaN")
			So(FormatFloat(math.Inf(1)), ShouldEqual, "Infinity")
			So(FormatFloat(math.Inf(-1)), ShouldEqual, "-Infinity")
		})
	})
}

func TestBoid(t *testing.T) {
	Convey("When a boid is exported", t, func() {
		b := NewBoid(3, 1.0, 2.0, 0.5, -0.5, 200)

		Convey("It emits an arrow and then a marker", func() {
			So(b.ExportToGnuplot(), ShouldEqual,
				"set arrow 3 from 1.0,2.0 to 1.5,1.5\n"+
					"set object 3 circle at 1.0,2.0 size scr 0.005 fc rgb \"navy\"\n")
		})

		Convey("The marker size does not depend on the radius", func() {
			small := NewBoid(3, 1.0, 2.0, 0.5, -0.5, 0.1)
			So(small.ExportToGnuplot(), ShouldEqual, b.ExportToGnuplot())
		})

		Convey("Fields are stored verbatim", func() {
			So(b.ID(), ShouldEqual, 3)
			So(b.Radius(), ShouldEqual, 200.0)
			So(b.Position(), ShouldResemble, Vector{X: 1, Y: 2})
			So(b.Velocity(), ShouldResemble, Vector{X: 0.5, Y: -0.5})
		})

		Convey("Invalid values are accepted and exported as-is", func() {
			odd := NewBoid(1, math.NaN(), 0, 0, 0, -1)
			So(odd.Radius(), ShouldEqual, -1.0)
			So(odd.ExportToGnuplot(), ShouldStartWith, "set arrow 1 from NaN,0.0 to NaN,0.0\n")
		})
	})
}

func TestOverlay(t *testing.T) {
	Convey("When an overlay is exported", t, func() {
		Convey("An empty overlay exports nothing", func() {
			So(NewOverlay(nil).ExportToGnuplot(), ShouldEqual, "")
			So(NewOverlay([]*Boid{}).Len(), ShouldEqual, 0)
		})

		Convey("Boid directives are concatenated in order without separators", func() {
			b1 := NewBoid(1, 0, 0, 1, 0, 1)
			b2 := NewBoid(2, 5, 5, 0, 1, 1)
			ov := NewOverlay([]*Boid{b1, b2})
			So(ov.Len(), ShouldEqual, 2)
			So(ov.ExportToGnuplot(), ShouldEqual, b1.ExportToGnuplot()+b2.ExportToGnuplot())
		})

		Convey("The overlay keeps its own ordering snapshot", func() {
			b1 := NewBoid(1, 0, 0, 1, 0, 1)
			b2 := NewBoid(2, 5, 5, 0, 1, 1)
			boids := []*Boid{b1, b2}
			ov := NewOverlay(boids)
			boids[0], boids[1] = b2, b1

			ids := []int{}
			ov.Visit(func(b *Boid) { ids = append(ids, b.ID()) })
			So(ids, ShouldResemble, []int{1, 2})
		})
	})
}

// frameOf returns the frame an overlay was built from, by the x position tag
// each test boid carries.
func frameOf(ov *Overlay) (frame int) {
	frame = -1
	ov.Visit(func(b *Boid) { frame = int(b.Position().X) })
	return
}

func TestModel(t *testing.T) {
	Convey("When a model is constructed", t, func() {
		Convey("A negative loop count is rejected", func() {
			_, err := NewModel(-1)
			So(err, ShouldNotBeNil)
		})

		Convey("Every frame is present and empty", func() {
			m, err := NewModel(4)
			So(err, ShouldBeNil)
			So(m.Loops(), ShouldEqual, 4)
			So(m.Len(), ShouldEqual, 0)
			for i := 0; i < 4; i++ {
				ov, err := m.Update()
				So(err, ShouldBeNil)
				So(ov.Len(), ShouldEqual, 0)
			}
		})

		Convey("A model without frames cannot be updated", func() {
			m, err := NewModel(0)
			So(err, ShouldBeNil)
			_, err = m.Update()
			So(errors.Is(err, ErrFrameIndexOutOfRange), ShouldBeTrue)
		})
	})

	Convey("When a model is updated repeatedly", t, func() {
		loops := 5
		m, _ := NewModel(loops)
		for f := 0; f < loops; f++ {
			So(m.AddBoid(NewBoid(1, float64(f), 0, 0, 0, 1), f), ShouldBeNil)
		}

		Convey("Frames are returned in order and then cycle back to frame 0", func() {
			for pass := 0; pass < 3; pass++ {
				for f := 0; f < loops; f++ {
					ov, err := m.Update()
					So(err, ShouldBeNil)
					So(frameOf(ov), ShouldEqual, f)
				}
			}
		})

		Convey("A single frame model always returns that frame", func() {
			single, _ := NewModel(1)
			So(single.AddBoid(NewBoid(1, 0, 0, 0, 0, 1), 0), ShouldBeNil)
			for i := 0; i < 3; i++ {
				ov, err := single.Update()
				So(err, ShouldBeNil)
				So(ov.Len(), ShouldEqual, 1)
			}
		})
	})

	Convey("When boids are added to a frame", t, func() {
		m, _ := NewModel(3)

		Convey("They are exported in insertion order", func() {
			for id := 1; id <= 4; id++ {
				So(m.AddBoid(NewBoid(id, 0, 0, 0, 0, 1), 2), ShouldBeNil)
			}
			So(m.Len(), ShouldEqual, 4)

			m.Update()
			m.Update()
			ov, err := m.Update()
			So(err, ShouldBeNil)

			ids := []int{}
			ov.Visit(func(b *Boid) { ids = append(ids, b.ID()) })
			So(ids, ShouldResemble, []int{1, 2, 3, 4})
		})

		Convey("Adding to an already-visited frame is allowed", func() {
			m.Update()
			So(m.AddBoid(NewBoid(1, 0, 0, 0, 0, 1), 0), ShouldBeNil)
			m.Update()
			m.Update()
			ov, _ := m.Update()
			So(ov.Len(), ShouldEqual, 1)
		})

		Convey("An out of range frame is rejected without changing state", func() {
			for _, frame := range []int{3, -1, 100} {
				err := m.AddBoid(NewBoid(1, 0, 0, 0, 0, 1), frame)
				So(errors.Is(err, ErrFrameIndexOutOfRange), ShouldBeTrue)

				var indexErr *FrameIndexError
				So(errors.As(err, &indexErr), ShouldBeTrue)
				So(indexErr.Index, ShouldEqual, frame)
				So(indexErr.Loops, ShouldEqual, 3)
			}
			So(m.Len(), ShouldEqual, 0)
		})

		Convey("A nil boid is rejected", func() {
			So(m.AddBoid(nil, 0), ShouldNotBeNil)
			So(m.Len(), ShouldEqual, 0)
		})
	})

	Convey("When two single-boid frames are exported", t, func() {
		m, _ := NewModel(2)
		So(m.AddBoid(NewBoid(1, 0, 0, 1, 0, 1), 0), ShouldBeNil)
		So(m.AddBoid(NewBoid(1, 0, 0, 0, 1, 1), 1), ShouldBeNil)

		first, _ := m.Update()
		second, _ := m.Update()
		So(first.ExportToGnuplot(), ShouldEqual,
			"set arrow 1 from 0.0,0.0 to 1.0,0.0\n"+
				"set object 1 circle at 0.0,0.0 size scr 0.005 fc rgb \"navy\"\n")
		So(second.ExportToGnuplot(), ShouldEqual,
			"set arrow 1 from 0.0,0.0 to 0.0,1.0\n"+
				"set object 1 circle at 0.0,0.0 size scr 0.005 fc rgb \"navy\"\n")
		So(strings.Count(first.ExportToGnuplot(), "\n"), ShouldEqual, 2)
	})
}
