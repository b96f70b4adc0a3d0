package graph

import "testing"

func TestEquilibriumZeroesBuffer(t *testing.T) {
	t.Parallel()

	buf := []float64{1, 2, 3}
	Equilibrium(buf)

	for i, v := range buf {
		if v != 0 {
			t.Errorf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestAddFrameFloat64(t *testing.T) {
	t.Parallel()

	dst := []float64{1, 2, 3}
	src := []float64{0.5, 0.5, 0.5}

	AddFrame(dst, src)

	want := []float64{1.5, 2.5, 3.5}
	for i := range want {
		if !nearlyEqual(dst[i], want[i]) {
			t.Errorf("sample %d = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestAddFrameFloat32Fallback(t *testing.T) {
	t.Parallel()

	dst := []float32{1, 2, 3}
	src := []float32{0.5, 0.5, 0.5}

	AddFrame(dst, src)

	want := []float32{1.5, 2.5, 3.5}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestMulAmpFloat64(t *testing.T) {
	t.Parallel()

	buf := []float64{1, 2, 4}
	MulAmp(buf, buf, 0.5)

	want := []float64{0.5, 1, 2}
	for i := range want {
		if !nearlyEqual(buf[i], want[i]) {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestMulAmpFloat32Fallback(t *testing.T) {
	t.Parallel()

	buf := []float32{1, 2, 4}
	MulAmp(buf, buf, 0.5)

	want := []float32{0.5, 1, 2}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want[i])
		}
	}
}
