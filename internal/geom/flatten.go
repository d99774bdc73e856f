package geom

import "math"

// DefaultTolerance is the maximum distance from the curve used for flattening.
const DefaultTolerance = 0.1

// maxDepth bounds curve subdivision for degenerate input.
const maxDepth = 16

// Polyline is an open chain of points. A closed contour repeats its first
// point at the end.
type Polyline []Point

// Length returns the sum of the polyline's edge lengths.
func (pl Polyline) Length() float64 {
	var l float64
	for i := 1; i < len(pl); i++ {
		l += pl[i-1].Distance(pl[i])
	}
	return l
}

// Flatten converts the path into one polyline per contour, approximating
// curves with straight edges no further than tolerance from the curve.
func (p *Path) Flatten(tolerance float64) []Polyline {
	if p.IsEmpty() {
		return nil
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var out []Polyline
	var cur Polyline
	var current Point

	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}

	for _, s := range p.Segments {
		switch s.Op {
		case OpMoveTo:
			flush()
			cur = Polyline{s.Points[0]}
		case OpLineTo, OpClose:
			if cur == nil {
				cur = Polyline{current}
			}
			cur = append(cur, s.Points[0])
		case OpQuadTo:
			if cur == nil {
				cur = Polyline{current}
			}
			flattenQuad(current, s.Points[0], s.Points[1], tolerance, 0, &cur)
		case OpCubicTo:
			if cur == nil {
				cur = Polyline{current}
			}
			flattenCubic(current, s.Points[0], s.Points[1], s.Points[2], tolerance, 0, &cur)
		}
		current = s.end()
	}
	flush()

	return out
}

// Trim returns the prefix of the polylines covering the given arc length,
// walking contours in order. The last edge reached is cut at the exact point.
func Trim(lines []Polyline, length float64) []Polyline {
	if length <= 0 {
		return nil
	}

	var out []Polyline
	remaining := length
	for _, pl := range lines {
		if len(pl) < 2 {
			continue
		}
		part := Polyline{pl[0]}
		for i := 1; i < len(pl); i++ {
			d := pl[i-1].Distance(pl[i])
			if d >= remaining {
				if d > 0 {
					part = append(part, pl[i-1].Lerp(pl[i], remaining/d))
				}
				return append(out, part)
			}
			remaining -= d
			part = append(part, pl[i])
		}
		out = append(out, part)
	}
	return out
}

// TotalLength returns the summed length of all polylines.
func TotalLength(lines []Polyline) float64 {
	var l float64
	for _, pl := range lines {
		l += pl.Length()
	}
	return l
}

// flattenQuad recursively subdivides a quadratic Bezier curve.
func flattenQuad(p0, p1, p2 Point, tolerance float64, depth int, out *Polyline) {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		*out = append(*out, p2)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)

	flattenQuad(p0, q0, mid, tolerance, depth+1, out)
	flattenQuad(mid, q1, p2, tolerance, depth+1, out)
}

// flattenCubic recursively subdivides a cubic Bezier curve.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, depth int, out *Polyline) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || dist < tolerance {
		*out = append(*out, p3)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	mid := r0.Lerp(r1, 0.5)

	flattenCubic(p0, q0, r0, mid, tolerance, depth+1, out)
	flattenCubic(mid, r1, q2, p3, tolerance, depth+1, out)
}

// distanceToLine returns the distance from p to the segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-10 {
		return p.Distance(a)
	}

	t := p.Sub(a).Dot(ab) / (abLen * abLen)
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
