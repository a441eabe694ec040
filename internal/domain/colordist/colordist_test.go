package colordist

import (
	"fmt"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// lab builds a color from conventional CIELAB coordinates (L in 0..100).
func lab(l, a, b float64) colorful.Color {
	return colorful.Lab(l/labScale, a/labScale, b/labScale)
}

// Reference pairs from Sharma, Wu & Dalal, "The CIEDE2000 Color-Difference Formula",
// including the hue wrap pairs 9-15 on either side of a 180° hue difference.
func TestDistance_ReferencePairs(t *testing.T) {
	tests := []struct {
		pair       int
		l1, a1, b1 float64
		l2, a2, b2 float64
		want       float64
	}{
		{1, 50, 2.6772, -79.7751, 50, 0, -82.7485, 2.0425},
		{2, 50, 3.1571, -77.2803, 50, 0, -82.7485, 2.8615},
		{3, 50, 2.8361, -74.02, 50, 0, -82.7485, 3.4412},
		{4, 50, -1.3802, -84.2814, 50, 0, -82.7485, 1.0000},
		{5, 50, -1.1848, -84.8006, 50, 0, -82.7485, 1.0000},
		{6, 50, -0.9009, -85.5211, 50, 0, -82.7485, 1.0000},
		{7, 50, 0, 0, 50, -1, 2, 2.3669},
		{8, 50, -1, 2, 50, 0, 0, 2.3669},
		{9, 50, 2.49, -0.001, 50, -2.49, 0.0009, 7.1792},
		{10, 50, 2.49, -0.001, 50, -2.49, 0.001, 7.1792},
		{11, 50, 2.49, -0.001, 50, -2.49, 0.0011, 7.2195},
		{12, 50, 2.49, -0.001, 50, -2.49, 0.0012, 7.2195},
		{13, 50, -0.001, 2.49, 50, 0.0009, -2.49, 4.8045},
		{14, 50, -0.001, 2.49, 50, 0.001, -2.49, 4.8045},
		{15, 50, -0.001, 2.49, 50, 0.0011, -2.49, 4.7461},
		{16, 50, 2.5, 0, 50, 0, -2.5, 4.3065},
		{17, 50, 2.5, 0, 73, 25, -18, 27.1492},
		{18, 50, 2.5, 0, 61, -5, 29, 22.8977},
		{19, 50, 2.5, 0, 56, -27, -3, 31.9030},
		{20, 50, 2.5, 0, 58, 24, 15, 19.4535},
		{21, 50, 2.5, 0, 50, 3.1736, 0.5854, 1.0000},
		{22, 50, 2.5, 0, 50, 3.2972, 0, 1.0000},
		{23, 50, 2.5, 0, 50, 1.8634, 0.5757, 1.0000},
		{24, 50, 2.5, 0, 50, 3.2592, 0.335, 1.0000},
		{25, 60.2574, -34.0099, 36.2677, 60.4626, -34.1751, 39.4387, 1.2644},
		{26, 63.0109, -31.0961, -5.8663, 62.8187, -29.7946, -4.0864, 1.2630},
		{27, 61.2901, 3.7196, -5.3901, 61.4292, 2.248, -4.962, 1.8731},
		{28, 35.0831, -44.1164, 3.7933, 35.0232, -40.0716, 1.5901, 1.8645},
		{29, 22.7233, 20.0904, -46.694, 23.0331, 14.973, -42.5619, 2.0373},
		{30, 36.4612, 47.858, 18.3852, 36.2715, 50.5065, 21.2231, 1.4146},
		{31, 90.8027, -2.0831, 1.441, 91.1528, -1.6435, 0.0447, 1.4441},
		{32, 90.9257, -0.5406, -0.9208, 88.6381, -0.8985, -0.7239, 1.5381},
		{33, 6.7747, -0.2908, -2.4247, 5.8714, -0.0985, -2.2286, 0.6377},
		{34, 2.0776, 0.0795, -1.135, 0.9033, -0.0636, -0.5514, 0.9082},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("pair %d", tc.pair), func(t *testing.T) {
			c1, c2 := lab(tc.l1, tc.a1, tc.b1), lab(tc.l2, tc.a2, tc.b2)
			if got := Distance(c1, c2); math.Abs(got-tc.want) > 1e-4 {
				t.Errorf("Distance = %.6f, want %.4f", got, tc.want)
			}
			if got := ciede2000(tc.l1, tc.a1, tc.b1, tc.l2, tc.a2, tc.b2); math.Abs(got-tc.want) > 1e-4 {
				t.Errorf("ciede2000 = %.6f, want %.4f", got, tc.want)
			}
		})
	}
}

func TestDistance_Identity(t *testing.T) {
	colors := []colorful.Color{
		{},
		{R: 1, G: 1, B: 1},
		{R: 0.78, G: 0.17, B: 0.23},
		{R: 0.5, G: 0.5, B: 0.5},
	}
	for _, c := range colors {
		if d := Distance(c, c); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", c, c, d)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	colors := []colorful.Color{
		{},
		{R: 1},
		{G: 1},
		{B: 1},
		{R: 0.5, G: 0.5, B: 0.5},
		{R: 0.5, G: 0.5, B: 0.5001},
		{R: 0.94, G: 0.92, B: 0.85},
		{R: 0.02, G: 0.4, B: 0.09},
	}
	for _, a := range colors {
		for _, b := range colors {
			ab, ba := Distance(a, b), Distance(b, a)
			if math.Abs(ab-ba) >= 1e-6 {
				t.Errorf("asymmetric: d(%v,%v)=%v d(%v,%v)=%v", a, b, ab, b, a, ba)
			}
			if ab < 0 || math.IsNaN(ab) {
				t.Errorf("invalid distance %v for %v, %v", ab, a, b)
			}
		}
	}
}

func TestDistance_NearAchromaticIsFinite(t *testing.T) {
	grey := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	almost := colorful.Color{R: 0.5, G: 0.5, B: 0.5 + 1e-12}
	d := Distance(grey, almost)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		t.Fatalf("expected finite distance, got %v", d)
	}
}

func TestDistance_NaNInputReportsInf(t *testing.T) {
	bad := colorful.Color{R: math.NaN()}
	if d := Distance(bad, colorful.Color{G: 1}); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf, got %v", d)
	}
}

func TestDistance_OrdersPrimaries(t *testing.T) {
	red := colorful.Color{R: 1}
	orange := colorful.Color{R: 1, G: 0.5}
	blue := colorful.Color{B: 1}
	if Distance(red, orange) >= Distance(red, blue) {
		t.Errorf("expected red closer to orange than to blue")
	}
}
