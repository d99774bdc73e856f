package geom

import "math"

// Op is the type of a path operation.
type Op uint8

const (
	// OpMoveTo starts a new contour without drawing.
	OpMoveTo Op = iota

	// OpLineTo draws a straight line to the target point.
	OpLineTo

	// OpQuadTo draws a quadratic Bezier curve.
	OpQuadTo

	// OpCubicTo draws a cubic Bezier curve.
	OpCubicTo

	// OpClose closes the current contour.
	OpClose
)

// String returns a string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpCubicTo:
		return "CubicTo"
	case OpClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Segment is a single path operation.
//   - MoveTo, LineTo: Points[0] is the target
//   - QuadTo: Points[0] is the control, Points[1] the target
//   - CubicTo: Points[0], Points[1] are controls, Points[2] the target
type Segment struct {
	Op     Op
	Points [3]Point
}

// end returns the target point of the segment.
func (s Segment) end() Point {
	switch s.Op {
	case OpQuadTo:
		return s.Points[1]
	case OpCubicTo:
		return s.Points[2]
	default:
		return s.Points[0]
	}
}

// Path is a sequence of contours described by segments.
// The zero value is an empty path ready to use.
type Path struct {
	Segments []Segment

	start Point
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.Segments = append(p.Segments, Segment{Op: OpMoveTo, Points: [3]Point{pt}})
	p.start = pt
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: OpLineTo, Points: [3]Point{Pt(x, y)}})
}

// QuadTo draws a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: OpQuadTo, Points: [3]Point{Pt(cx, cy), Pt(x, y)}})
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.Segments = append(p.Segments, Segment{
		Op:     OpCubicTo,
		Points: [3]Point{Pt(c1x, c1y), Pt(c2x, c2y), Pt(x, y)},
	})
}

// Close closes the current contour with a line back to its start.
func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Op: OpClose, Points: [3]Point{p.start}})
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.Segments) == 0
}

// Translate returns a copy of the path moved by (dx, dy).
func (p *Path) Translate(dx, dy float64) *Path {
	if p == nil {
		return nil
	}
	d := Pt(dx, dy)
	out := &Path{Segments: make([]Segment, len(p.Segments)), start: p.start.Add(d)}
	for i, s := range p.Segments {
		out.Segments[i] = Segment{Op: s.Op}
		for j := range s.Points {
			out.Segments[i].Points[j] = s.Points[j].Add(d)
		}
	}
	return out
}

// Bounds returns the bounding box of all segment points, control points included.
func (p *Path) Bounds() Rect {
	if p.IsEmpty() {
		return Rect{}
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, s := range p.Segments {
		n := 1
		switch s.Op {
		case OpQuadTo:
			n = 2
		case OpCubicTo:
			n = 3
		}
		for _, pt := range s.Points[:n] {
			r.MinX = math.Min(r.MinX, pt.X)
			r.MinY = math.Min(r.MinY, pt.Y)
			r.MaxX = math.Max(r.MaxX, pt.X)
			r.MaxY = math.Max(r.MaxY, pt.Y)
		}
	}
	return r
}

// Length returns the total arc length of the path.
// accuracy controls the precision of the approximation (smaller = more accurate).
// Closing segments contribute the length of the implied line.
func (p *Path) Length(accuracy float64) float64 {
	if p.IsEmpty() {
		return 0
	}
	if accuracy <= 0 {
		accuracy = 0.001
	}

	var length float64
	var current Point

	for _, s := range p.Segments {
		switch s.Op {
		case OpMoveTo:
			current = s.Points[0]
		case OpLineTo, OpClose:
			length += current.Distance(s.Points[0])
		case OpQuadTo:
			length += quadLength(current, s.Points[0], s.Points[1], accuracy*accuracy)
		case OpCubicTo:
			length += cubicLength(current, s.Points[0], s.Points[1], s.Points[2], accuracy*accuracy)
		}
		current = s.end()
	}

	return length
}

// quadLength computes the arc length of a quadratic Bezier by adaptive subdivision.
func quadLength(p0, p1, p2 Point, accuracySq float64) float64 {
	chord := p0.Distance(p2)
	polygon := p0.Distance(p1) + p1.Distance(p2)

	diff := polygon - chord
	if diff*diff <= accuracySq {
		return (chord + polygon) / 2
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	return quadLength(p0, q0, mid, accuracySq) + quadLength(mid, q1, p2, accuracySq)
}

// cubicLength computes the arc length of a cubic Bezier by adaptive subdivision.
func cubicLength(p0, p1, p2, p3 Point, accuracySq float64) float64 {
	chord := p0.Distance(p3)
	polygon := p0.Distance(p1) + p1.Distance(p2) + p2.Distance(p3)

	diff := polygon - chord
	if diff*diff <= accuracySq {
		return (chord + polygon) / 2
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	mid := r0.Lerp(r1, 0.5)
	return cubicLength(p0, q0, r0, mid, accuracySq) + cubicLength(mid, r1, q2, p3, accuracySq)
}
