package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestOp_String(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpMoveTo, "MoveTo"},
		{OpLineTo, "LineTo"},
		{OpQuadTo, "QuadTo"},
		{OpCubicTo, "CubicTo"},
		{OpClose, "Close"},
		{Op(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.op.String(); got != tt.want {
				t.Errorf("Op.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathLength(t *testing.T) {
	square := func() *Path {
		p := &Path{}
		p.MoveTo(0, 0)
		p.LineTo(10, 0)
		p.LineTo(10, 10)
		p.LineTo(0, 10)
		p.Close()
		return p
	}

	tests := []struct {
		name string
		path *Path
		want float64
		eps  float64
	}{
		{"nil", nil, 0, 0},
		{"empty", &Path{}, 0, 0},
		{"closed square", square(), 40, 1e-9},
		{
			name: "straight quad",
			path: func() *Path {
				p := &Path{}
				p.MoveTo(0, 0)
				p.QuadTo(5, 0, 10, 0)
				return p
			}(),
			want: 10,
			eps:  1e-6,
		},
		{
			name: "quarter circle cubic",
			path: func() *Path {
				const k = 0.5522847498
				p := &Path{}
				p.MoveTo(100, 0)
				p.CubicTo(100, 100*k, 100*k, 100, 0, 100)
				return p
			}(),
			want: math.Pi * 50,
			eps:  0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.path.Length(0.001)
			if !almostEqual(got, tt.want, tt.eps) {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathTranslate(t *testing.T) {
	p := &Path{}
	p.MoveTo(1, 2)
	p.QuadTo(3, 4, 5, 6)
	p.Close()

	moved := p.Translate(10, 20)
	if got := moved.Segments[1].Points[1]; got != Pt(15, 26) {
		t.Errorf("translated quad target = %v, want (15,26)", got)
	}
	if got := moved.Segments[2].Points[0]; got != Pt(11, 22) {
		t.Errorf("translated close target = %v, want (11,22)", got)
	}
	if p.Segments[0].Points[0] != Pt(1, 2) {
		t.Error("Translate modified the receiver")
	}
}

func TestPathBounds(t *testing.T) {
	p := &Path{}
	p.MoveTo(2, 3)
	p.CubicTo(-1, 8, 4, 9, 6, 1)

	b := p.Bounds()
	want := Rect{MinX: -1, MinY: 1, MaxX: 6, MaxY: 9}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}

	var empty Path
	if !empty.Bounds().Empty() {
		t.Error("empty path should have empty bounds")
	}
}

func TestFlattenMatchesLength(t *testing.T) {
	p := &Path{}
	p.MoveTo(0, 0)
	p.CubicTo(0, 50, 50, 50, 50, 0)
	p.MoveTo(100, 0)
	p.QuadTo(125, 40, 150, 0)
	p.Close()

	lines := p.Flatten(0.01)
	if len(lines) != 2 {
		t.Fatalf("Flatten() produced %d contours, want 2", len(lines))
	}

	flat := TotalLength(lines)
	exact := p.Length(0.0001)
	if !almostEqual(flat, exact, exact*0.01) {
		t.Errorf("flattened length %v differs from arc length %v", flat, exact)
	}
}

func TestTrim(t *testing.T) {
	lines := []Polyline{
		{Pt(0, 0), Pt(10, 0)},
		{Pt(0, 5), Pt(0, 15), Pt(10, 15)},
	}

	tests := []struct {
		name      string
		length    float64
		contours  int
		wantLen   float64
		wantFinal Point
	}{
		{"zero", 0, 0, 0, Point{}},
		{"half first", 5, 1, 5, Pt(5, 0)},
		{"exact first", 10, 1, 10, Pt(10, 0)},
		{"into second", 15, 2, 15, Pt(0, 10)},
		{"everything", 30, 2, 30, Pt(10, 15)},
		{"overshoot", 100, 2, 30, Pt(10, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trim(lines, tt.length)
			if len(got) != tt.contours {
				t.Fatalf("Trim() returned %d contours, want %d", len(got), tt.contours)
			}
			if l := TotalLength(got); !almostEqual(l, tt.wantLen, 1e-9) {
				t.Errorf("trimmed length = %v, want %v", l, tt.wantLen)
			}
			if tt.contours > 0 {
				last := got[len(got)-1]
				if end := last[len(last)-1]; !almostEqual(end.X, tt.wantFinal.X, 1e-9) || !almostEqual(end.Y, tt.wantFinal.Y, 1e-9) {
					t.Errorf("trimmed end = %v, want %v", end, tt.wantFinal)
				}
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	b := Rect{MinX: 2, MinY: -1, MaxX: 3, MaxY: 0.5}

	if got := a.Union(b); got != (Rect{MinX: 0, MinY: -1, MaxX: 3, MaxY: 1}) {
		t.Errorf("Union() = %+v", got)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty.Union(b) = %+v, want %+v", got, b)
	}
}

func BenchmarkPathLength(b *testing.B) {
	p := &Path{}
	p.MoveTo(0, 0)
	p.CubicTo(0, 50, 50, 50, 50, 0)
	p.QuadTo(75, -40, 100, 0)

	b.ReportAllocs()
	for b.Loop() {
		_ = p.Length(0.001)
	}
}
