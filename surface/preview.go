// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"strings"
)

// previewRamp maps coverage to characters, lightest first.
const previewRamp = " .:-=+*#%@"

// Preview renders the revealed strokes as text art of cols by rows
// characters. Each character shows the mean coverage of its cell.
// Non-positive dimensions yield an empty string.
func (c *Canvas) Preview(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	return asciiArt(c.Coverage(), cols, rows)
}

func asciiArt(mask *image.Alpha, cols, rows int) string {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()

	var sb strings.Builder
	sb.Grow((cols + 1) * rows)
	for r := range rows {
		y0, y1 := cellSpan(r, rows, h)
		for col := range cols {
			x0, x1 := cellSpan(col, cols, w)
			sb.WriteByte(previewRamp[rampIndex(mask, x0, y0, x1, y1)])
		}
		if r < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// cellSpan returns the pixel range [lo, hi) of cell i out of n over size
// pixels. Cells are never empty.
func cellSpan(i, n, size int) (lo, hi int) {
	lo = i * size / n
	hi = max((i+1)*size/n, lo+1)
	return lo, hi
}

func rampIndex(mask *image.Alpha, x0, y0, x1, y1 int) int {
	var sum, count float64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sum += CoverageAt(mask, x, y)
			count++
		}
	}
	if count == 0 || sum == 0 {
		return 0
	}
	// Any ink at all shows at least the faintest mark.
	i := int(sum / count * float64(len(previewRamp)-1))
	return max(1, min(i, len(previewRamp)-1))
}
