package orbit

import "math"

// packEpsilon absorbs floating-point noise when verifying chord distances,
// so a ring is not widened over a rounding artifact.
const packEpsilon = 1e-9

// PackOrbit computes the shared orbit for a set of sibling circles placed
// around an anchor of the given radius. It returns the minimal orbit radius
// at which no sibling overlaps the anchor or an adjacent sibling, and the
// angle of each sibling relative to the ring's start.
//
// Siblings are spaced equally: the i-th circle sits at angle i·2π/n. A single
// child sits at orbit parentRadius + its own radius, angle 0. For n > 1 the
// orbit starts from the anchor clearance (parentRadius plus the largest child
// radius) and is widened by the chord constraint: two adjacent centers on a
// ring of radius R at angular distance θ are 2R·sin(θ/2) apart (law of
// cosines on the isoceles triangle formed by the two spokes), and that chord
// must reach the sum of the pair's radii. The binding pair sets R; every
// adjacent pair is then re-verified and R widened until none violate.
//
// Radii must be positive; PackOrbit is pure and deterministic.
func PackOrbit(parentRadius float64, radii []float64) (float64, []float64) {
	n := len(radii)
	if n == 0 {
		return 0, nil
	}

	angles := make([]float64, n)
	if n == 1 {
		return parentRadius + radii[0], angles
	}

	theta := 2 * math.Pi / float64(n)
	for i := range angles {
		angles[i] = theta * float64(i)
	}

	orbit := parentRadius
	for _, r := range radii {
		if parentRadius+r > orbit {
			orbit = parentRadius + r
		}
	}

	halfChord := math.Sin(theta / 2)
	for {
		widened := false
		for i := 0; i < n; i++ {
			need := radii[i] + radii[(i+1)%n]
			if 2*orbit*halfChord+packEpsilon < need {
				orbit = need / (2 * halfChord)
				widened = true
			}
		}
		if !widened {
			return orbit, angles
		}
	}
}

// polar converts an orbit radius and angle into a cartesian offset.
func polar(orbit, angle float64) (x, y float64) {
	return orbit * math.Cos(angle), orbit * math.Sin(angle)
}
