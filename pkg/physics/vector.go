// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Angle returns the angle of the vector in radians
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates the vector by angle (in radians)
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// ClampLength limits the vector's magnitude to max
func (v Vector2D) ClampLength(max float64) Vector2D {
	if v.Length() <= max {
		return v
	}
	return v.Normalize().Scale(max)
}

// FromAngle creates a vector from an angle and magnitude
func FromAngle(angle float64, magnitude float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// NormalizeAngle reduces an angle to the range [0, 2π)
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// Integrate advances position and velocity by one fixed step using
// semi-implicit Euler: velocity is updated first, then position, which keeps
// the scheme stable under a constant tick.
func Integrate(position, velocity, acceleration Vector2D, dt float64) (Vector2D, Vector2D) {
	velocity = velocity.Add(acceleration.Scale(dt))
	position = position.Add(velocity.Scale(dt))
	return position, velocity
}

// Wrap maps a position back into the world square centered on the origin,
// toroidally on both axes. Velocity and heading are untouched; wrapping an
// in-bounds position is a no-op.
func Wrap(position Vector2D, worldSize float64) Vector2D {
	half := worldSize / 2

	for position.X > half {
		position.X -= worldSize
	}
	for position.X < -half {
		position.X += worldSize
	}
	for position.Y > half {
		position.Y -= worldSize
	}
	for position.Y < -half {
		position.Y += worldSize
	}
	return position
}

// InBounds reports whether the position lies inside the world square.
func InBounds(position Vector2D, worldSize float64) bool {
	half := worldSize / 2
	return position.X >= -half && position.X <= half &&
		position.Y >= -half && position.Y <= half
}
