// Package colordist computes perceptual color differences.
package colordist

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// labScale converts go-colorful's CIELAB (L in 0..1) to conventional units (L in 0..100).
const labScale = 100

// hueTieTolerance bounds the relative cross product below which two hue vectors
// count as exactly opposite. It absorbs the rounding of the RGB round trip.
const hueTieTolerance = 1e-9

var pow25To7 = math.Pow(25, 7)

// Distance returns the CIEDE2000 difference between a and b in ΔE units.
// The pair is evaluated in a fixed order so Distance(a, b) == Distance(b, a) exactly.
// A NaN result (non-finite input) is reported as +Inf.
func Distance(a, b colorful.Color) float64 {
	if a == b {
		return 0
	}
	if less(b, a) {
		a, b = b, a
	}
	l1, a1, b1 := a.Lab()
	l2, a2, b2 := b.Lab()
	d := ciede2000(
		l1*labScale, a1*labScale, b1*labScale,
		l2*labScale, a2*labScale, b2*labScale,
	)
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	return d
}

// ciede2000 implements the formula as published by Sharma, Wu and Dalal (2005),
// with kL = kC = kH = 1. Inputs are conventional CIELAB coordinates.
func ciede2000(l1, a1, b1, l2, a2, b2 float64) float64 {
	cBar := (math.Hypot(a1, b1) + math.Hypot(a2, b2)) / 2
	cBar7 := math.Pow(cBar, 7)
	g := 0.5 * (1 - math.Sqrt(cBar7/(cBar7+pow25To7)))

	ap1, ap2 := (1+g)*a1, (1+g)*a2
	cp1, cp2 := math.Hypot(ap1, b1), math.Hypot(ap2, b2)
	hp1, hp2 := hueDeg(ap1, b1), hueDeg(ap2, b2)

	dL := l2 - l1
	dC := cp2 - cp1

	var dh, hBar float64
	switch {
	case cp1*cp2 == 0:
		dh, hBar = 0, hp1+hp2
	case oppositeHues(ap1, b1, ap2, b2):
		// |h1' - h2'| == 180: the mean takes the (h1' + h2') / 2 branch.
		dh = 180
		if hp2 < hp1 {
			dh = -180
		}
		hBar = (hp1 + hp2) / 2
	default:
		dh = hp2 - hp1
		switch {
		case dh > 180:
			dh -= 360
		case dh < -180:
			dh += 360
		}
		hBar = hp1 + dh/2
		if hBar < 0 {
			hBar += 360
		} else if hBar >= 360 {
			hBar -= 360
		}
	}
	dH := 2 * math.Sqrt(cp1*cp2) * math.Sin(rad(dh/2))

	lBar := (l1 + l2) / 2
	cpBar := (cp1 + cp2) / 2

	t := 1 - 0.17*math.Cos(rad(hBar-30)) +
		0.24*math.Cos(rad(2*hBar)) +
		0.32*math.Cos(rad(3*hBar+6)) -
		0.20*math.Cos(rad(4*hBar-63))
	dTheta := 30 * math.Exp(-math.Pow((hBar-275)/25, 2))
	cpBar7 := math.Pow(cpBar, 7)
	rC := 2 * math.Sqrt(cpBar7/(cpBar7+pow25To7))
	lm50 := (lBar - 50) * (lBar - 50)
	sL := 1 + 0.015*lm50/math.Sqrt(20+lm50)
	sC := 1 + 0.045*cpBar
	sH := 1 + 0.015*cpBar*t
	rT := -math.Sin(rad(2*dTheta)) * rC

	tl, tc, th := dL/sL, dC/sC, dH/sH
	return math.Sqrt(tl*tl + tc*tc + th*th + rT*tc*th)
}

// hueDeg returns the hue angle in [0, 360); an achromatic point has hue 0.
func hueDeg(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}
	return h
}

// oppositeHues reports whether (a1, b1) and (a2, b2) point in opposite directions.
func oppositeHues(a1, b1, a2, b2 float64) bool {
	dot := a1*a2 + b1*b2
	if dot >= 0 {
		return false
	}
	cross := a1*b2 - b1*a2
	return math.Abs(cross) <= hueTieTolerance*math.Abs(dot)
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

func less(x, y colorful.Color) bool {
	if x.R != y.R {
		return x.R < y.R
	}
	if x.G != y.G {
		return x.G < y.G
	}
	return x.B < y.B
}
