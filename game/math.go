package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// Finite returns true if the value is neither NaN nor infinite.
func Finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// SanitizeVec2 zeroes non-finite components and clamps the vector to a magnitude of at most one.
func SanitizeVec2(v mgl32.Vec2) mgl32.Vec2 {
	if !Finite(v[0]) {
		v[0] = 0
	}
	if !Finite(v[1]) {
		v[1] = 0
	}
	if l := v.Len(); l > 1 {
		v = v.Mul(1 / l)
	}
	return v
}

// SafeNormalize normalizes the vector, returning a zero vector when its length is below 1e-5 so callers never
// divide by zero.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-5 || !Finite(l) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// Horizontal returns the vector with its Y component removed.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], 0, v[2]}
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// HorizontalLen returns the horizontal length of a vector.
func HorizontalLen(v mgl32.Vec3) float32 {
	return math32.Sqrt(Vec3HzDistSqr(v))
}

// MoveTowards moves current towards target by at most maxDelta, never overshooting the target.
func MoveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// MoveTowardsVec3 moves current in a straight line towards target by at most maxDistanceDelta.
func MoveTowardsVec3(current, target mgl32.Vec3, maxDistanceDelta float32) mgl32.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDistanceDelta || dist == 0 {
		return target
	}
	return current.Add(delta.Mul(maxDistanceDelta / dist))
}

// ProjectOnPlane removes the component of v along the plane normal.
func ProjectOnPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	sqrLen := normal.Dot(normal)
	if sqrLen < 1e-10 {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / sqrLen))
}

// Lerp linearly interpolates between a and b, with t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*ClampFloat(t, 0, 1)
}

// WrapYawDelta wraps a yaw delta into [-180, 180].
func WrapYawDelta(delta float32) float32 {
	delta = math32.Mod(delta, 360)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return delta
}

// LerpAngle interpolates between two angles in degrees along the shortest arc, with t clamped to [0, 1].
func LerpAngle(a, b, t float32) float32 {
	return a + WrapYawDelta(b-a)*ClampFloat(t, 0, 1)
}

// ClampAngle keeps an angle within one revolution and clamps it to [min, max].
func ClampAngle(angle, min, max float32) float32 {
	if angle < -360 {
		angle += 360
	}
	if angle > 360 {
		angle -= 360
	}
	return ClampFloat(angle, min, max)
}

// Forward returns the horizontal forward direction for a yaw in degrees. A yaw of zero faces +Z.
func Forward(yaw float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(yaw)
	return mgl32.Vec3{math32.Sin(rad), 0, math32.Cos(rad)}
}

// Right returns the horizontal right direction for a yaw in degrees.
func Right(yaw float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(yaw)
	return mgl32.Vec3{math32.Cos(rad), 0, -math32.Sin(rad)}
}

// YawOf returns the yaw in degrees of a direction projected onto the horizontal plane.
func YawOf(dir mgl32.Vec3) float32 {
	return mgl32.RadToDeg(math32.Atan2(dir[0], dir[2]))
}

// RotateTowards rotates the horizontal direction current towards target by at most maxDegrees.
func RotateTowards(current, target mgl32.Vec3, maxDegrees float32) mgl32.Vec3 {
	if Vec3HzDistSqr(current) < 1e-10 {
		return target
	}
	if Vec3HzDistSqr(target) < 1e-10 {
		return current
	}
	from, to := YawOf(current), YawOf(target)
	delta := WrapYawDelta(to - from)
	if math32.Abs(delta) <= maxDegrees {
		return target
	}
	if delta < 0 {
		maxDegrees = -maxDegrees
	}
	return Forward(from + maxDegrees).Mul(HorizontalLen(target))
}

// SmoothDamp moves current towards target with a critically damped spring that settles in roughly smoothTime.
// velocity carries the spring state between calls.
func SmoothDamp(current, target mgl32.Vec3, velocity *mgl32.Vec3, smoothTime, dt float32) mgl32.Vec3 {
	smoothTime = math32.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	var out mgl32.Vec3
	for i := range 3 {
		change := current[i] - target[i]
		temp := (velocity[i] + omega*change) * dt
		velocity[i] = (velocity[i] - omega*temp) * exp
		out[i] = target[i] + (change+temp)*exp

		// Never overshoot.
		if (target[i]-current[i] > 0) == (out[i] > target[i]) {
			out[i] = target[i]
			if dt > 0 {
				velocity[i] = (out[i] - target[i]) / dt
			}
		}
	}
	return out
}
