package common

import "github.com/go-gl/mathgl/mgl64"

func Lerp[T ~float32 | ~float64](a, b, t T) T {
	return a + t*(b-a)
}

// LerpVec3 interpolates each component of a toward b by t.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
