package autopilot

import (
	"math"

	"wavesurvivor/game"
)

// PredictiveAim returns the point to shoot at so a projectile of the given
// speed meets a target moving at a constant velocity
func PredictiveAim(shooter, target, targetVel game.Vec2, projectileSpeed float64) game.Vec2 {
	// If target is not moving, just return current position
	if math.Abs(targetVel.X) < 0.1 && math.Abs(targetVel.Y) < 0.1 {
		return target
	}

	distance := shooter.DistanceTo(target)
	if distance < 1.0 || projectileSpeed <= 0 {
		return target
	}

	// Find t such that distance(shooter, target + vel*t) = projectileSpeed*t.
	// Start from the time to reach the current position and refine.
	t := distance / projectileSpeed
	for i := 0; i < 5; i++ {
		predicted := target.Add(targetVel.Scale(t))
		predictedDistance := shooter.DistanceTo(predicted)
		if predictedDistance <= 0 {
			break
		}

		newT := predictedDistance / projectileSpeed
		if math.Abs(newT-t) < 0.001 {
			break
		}
		t = newT
	}

	return target.Add(targetVel.Scale(t))
}

// nearest returns the index of the enemy closest to p, or -1
func nearest(p game.Vec2, enemies []game.EntityState) int {
	best := -1
	bestDist := math.Inf(1)
	for i, e := range enemies {
		if d := p.DistanceTo(e.Pos); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
