package geometry

import "math"

// fullCircleEpsilon absorbs floating-point drift when a sweep should be a full turn.
const fullCircleEpsilon = 1e-9

// PolarToCartesian converts an angle clockwise from 12 o'clock into a point.
func PolarToCartesian(cx, cy, radius, angleDeg float64) Point {
	rad := (angleDeg - 90) * math.Pi / 180
	return Point{
		X: cx + radius*math.Cos(rad),
		Y: cy + radius*math.Sin(rad),
	}
}

// DescribeArc draws an open arc between two angles. The path starts at endDeg
// and runs back to startDeg with sweep flag 0; largeArc is set when the span
// exceeds 180°. A zero or negative span yields an empty path.
func DescribeArc(cx, cy, radius, startDeg, endDeg float64) Path {
	span := endDeg - startDeg
	if !(span > 0) || radius <= 0 {
		return nil
	}
	if span >= 360-fullCircleEpsilon {
		mid := startDeg + span/2
		return Path{
			{Kind: MoveTo, To: PolarToCartesian(cx, cy, radius, endDeg)},
			{Kind: ArcTo, To: PolarToCartesian(cx, cy, radius, mid), Radius: radius},
			{Kind: ArcTo, To: PolarToCartesian(cx, cy, radius, startDeg), Radius: radius},
		}
	}
	return Path{
		{Kind: MoveTo, To: PolarToCartesian(cx, cy, radius, endDeg)},
		{Kind: ArcTo, To: PolarToCartesian(cx, cy, radius, startDeg), Radius: radius, LargeArc: span > 180},
	}
}

// DescribeDonutSegment draws a closed wedge: outer arc clockwise from start to
// end, a line to the inner radius at end, the inner arc back to start, close.
// innerR == 0 draws a pie slice through the centre. Sweeps of a full turn are
// split at their midpoint so the endpoints of each arc differ.
func DescribeDonutSegment(cx, cy, innerR, outerR, startDeg, endDeg float64) Path {
	sweep := endDeg - startDeg
	if !(sweep > 0) || outerR <= 0 {
		return nil
	}
	if innerR < 0 {
		innerR = 0
	}
	full := sweep >= 360-fullCircleEpsilon
	large := sweep > 180
	mid := startDeg + sweep/2

	p := Path{{Kind: MoveTo, To: PolarToCartesian(cx, cy, outerR, startDeg)}}
	if full {
		p = append(p,
			Command{Kind: ArcTo, To: PolarToCartesian(cx, cy, outerR, mid), Radius: outerR, Sweep: true},
			Command{Kind: ArcTo, To: PolarToCartesian(cx, cy, outerR, endDeg), Radius: outerR, Sweep: true},
		)
	} else {
		p = append(p, Command{Kind: ArcTo, To: PolarToCartesian(cx, cy, outerR, endDeg), Radius: outerR, LargeArc: large, Sweep: true})
	}

	if innerR == 0 {
		p = append(p, Command{Kind: LineTo, To: Point{X: cx, Y: cy}})
		return append(p, Command{Kind: Close})
	}

	p = append(p, Command{Kind: LineTo, To: PolarToCartesian(cx, cy, innerR, endDeg)})
	if full {
		p = append(p,
			Command{Kind: ArcTo, To: PolarToCartesian(cx, cy, innerR, mid), Radius: innerR},
			Command{Kind: ArcTo, To: PolarToCartesian(cx, cy, innerR, startDeg), Radius: innerR},
		)
	} else {
		p = append(p, Command{Kind: ArcTo, To: PolarToCartesian(cx, cy, innerR, startDeg), Radius: innerR, LargeArc: large})
	}
	return append(p, Command{Kind: Close})
}
