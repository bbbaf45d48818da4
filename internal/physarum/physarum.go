// Package physarum builds static binary terrain masks from a slime-mold
// agent simulation. Agents deposit a trail on a toroidal field, the field is
// blurred and decayed every iteration, and agents steer toward the strongest
// trail ahead of them. The result is a vein-like, spatially correlated
// pattern rather than independent per-cell noise.
package physarum

import (
	"fmt"
	"math"
	"sort"

	"fire-ca/internal/core"
)

const (
	agentDensity = 0.15
	sensorAngle  = math.Pi / 2
	sensorDist   = 9.0
	turnAngle    = math.Pi / 2
	blurSigma    = 0.5
	decayFactor  = 0.90
	perturbSpan  = 0.5
)

// Config controls one mask generation.
type Config struct {
	L     int
	Ratio float64 // target fraction of cells marked true

	// Iterations is the number of agent steps; 0 selects the default of 300.
	Iterations int

	Seed int64

	// ExactArea switches from percentile thresholding (approximate area) to
	// top-k selection (exactly round(Ratio*L*L) cells).
	ExactArea bool
}

// Validate rejects out-of-range parameters.
func (c Config) Validate() error {
	if c.L <= 0 {
		return fmt.Errorf("physarum: L=%d: %w", c.L, core.ErrInvalidParameter)
	}
	if c.Ratio < 0 || c.Ratio > 1 {
		return fmt.Errorf("physarum: ratio %g: %w", c.Ratio, core.ErrInvalidParameter)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("physarum: iterations=%d: %w", c.Iterations, core.ErrInvalidParameter)
	}
	return nil
}

// Generate runs the agent simulation and thresholds the final trail field
// into a row-major L×L boolean mask. The mask is immutable by convention:
// it is pure output with no retained internal state.
func Generate(cfg Config) ([]bool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	iters := cfg.Iterations
	if iters == 0 {
		iters = 300
	}

	L := cfg.L
	side := float64(L)
	rng := core.NewRNG(cfg.Seed)

	n := int(float64(L*L) * agentDensity)
	if n < 1 {
		n = 1
	}
	ax := make([]float64, n)
	ay := make([]float64, n)
	heading := make([]float64, n)
	for i := 0; i < n; i++ {
		ax[i] = rng.Float64() * side
		ay[i] = rng.Float64() * side
		heading[i] = rng.Float64() * 2 * math.Pi
	}

	trail := make([]float64, L*L)
	scratch := make([]float64, L*L)

	for it := 0; it < iters; it++ {
		// Move forward one unit and deposit on the landing cell.
		for i := 0; i < n; i++ {
			ax[i] = wrapFloat(ax[i]+math.Cos(heading[i]), side)
			ay[i] = wrapFloat(ay[i]+math.Sin(heading[i]), side)
			trail[int(ay[i])*L+int(ax[i])] += 1.0
		}

		gaussianBlurWrap(trail, scratch, L)
		for i := range trail {
			trail[i] *= decayFactor
		}

		// Steer toward the strongest of the three forward sensors; the
		// center sensor wins ties so agents keep going straight.
		for i := 0; i < n; i++ {
			valL := sense(trail, L, side, ax[i], ay[i], heading[i]-sensorAngle)
			valC := sense(trail, L, side, ax[i], ay[i], heading[i])
			valR := sense(trail, L, side, ax[i], ay[i], heading[i]+sensorAngle)
			if valL > valC && valL > valR {
				heading[i] -= turnAngle
			} else if valR > valC && valR > valL {
				heading[i] += turnAngle
			}
			heading[i] += (rng.Float64() - 0.5) * perturbSpan
		}
	}

	if cfg.ExactArea {
		return topK(trail, int(math.Round(cfg.Ratio*float64(L*L)))), nil
	}
	threshold := percentile(trail, 100-cfg.Ratio*100)
	mask := make([]bool, L*L)
	for i, v := range trail {
		mask[i] = v > threshold
	}
	return mask, nil
}

func sense(trail []float64, L int, side, x, y, angle float64) float64 {
	sx := wrapFloat(x+math.Cos(angle)*sensorDist, side)
	sy := wrapFloat(y+math.Sin(angle)*sensorDist, side)
	return trail[int(sy)*L+int(sx)]
}

func wrapFloat(v, side float64) float64 {
	v = math.Mod(v, side)
	if v < 0 {
		v += side
	}
	return v
}

// gaussianBlurWrap applies a separable gaussian (sigma 0.5, radius 2) with
// toroidal boundaries, matching the torus the agents live on.
var blurKernel = buildKernel(blurSigma, 2)

func buildKernel(sigma float64, radius int) []float64 {
	k := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+radius] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

func gaussianBlurWrap(trail, scratch []float64, L int) {
	radius := (len(blurKernel) - 1) / 2

	// Horizontal pass into scratch.
	for y := 0; y < L; y++ {
		row := y * L
		for x := 0; x < L; x++ {
			acc := 0.0
			for i := -radius; i <= radius; i++ {
				xx := ((x+i)%L + L) % L
				acc += trail[row+xx] * blurKernel[i+radius]
			}
			scratch[row+x] = acc
		}
	}
	// Vertical pass back into trail.
	for y := 0; y < L; y++ {
		for x := 0; x < L; x++ {
			acc := 0.0
			for i := -radius; i <= radius; i++ {
				yy := ((y+i)%L + L) % L
				acc += scratch[yy*L+x] * blurKernel[i+radius]
			}
			trail[y*L+x] = acc
		}
	}
}

// percentile computes the q-th percentile with linear interpolation between
// order statistics (the numpy default definition).
func percentile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// topK marks the k highest-intensity cells, breaking ties by cell index so
// the selection is deterministic.
func topK(values []float64, k int) []bool {
	mask := make([]bool, len(values))
	if k <= 0 {
		return mask
	}
	if k > len(values) {
		k = len(values)
	}
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})
	for _, i := range idx[:k] {
		mask[i] = true
	}
	return mask
}
