package penalty

import "math"

// tvProx writes into x the solution of
//
//	min_x ½‖x − y‖² + lambda Σ_i |x_{i+1} − x_i|
//
// using Condat's direct algorithm (L. Condat, "A direct algorithm for 1D
// total variation denoising", IEEE SPL 2013). x and y must have equal length
// and must not alias.
//
// Complexity: O(n) typical, O(n²) worst case; no allocations.
func tvProx(x, y []float64, lambda float64) {
	n := len(y)
	if n == 0 {
		return
	}
	if lambda <= 0 || n == 1 {
		copy(x, y)
		return
	}

	var (
		k, k0, kplus, kminus int
		umin, umax           = lambda, -lambda
		vmin, vmax           = y[0] - lambda, y[0] + lambda
		twoLambda            = 2 * lambda
	)
	for {
		for k == n-1 {
			switch {
			case umin < 0: // negative jump at the right end
				for {
					x[k0] = vmin
					k0++
					if k0 > kminus {
						break
					}
				}
				k, kminus = k0, k0
				vmin, umin = y[k0], lambda
				umax = vmin + umin - vmax
			case umax > 0: // positive jump at the right end
				for {
					x[k0] = vmax
					k0++
					if k0 > kplus {
						break
					}
				}
				k, kplus = k0, k0
				vmax, umax = y[k0], -lambda
				umin = vmax + umax - vmin
			default: // last segment
				vmin += umin / float64(k-k0+1)
				for {
					x[k0] = vmin
					k0++
					if k0 > k {
						break
					}
				}
				return
			}
		}

		umin += y[k+1] - vmin
		if umin < -lambda { // negative jump
			for {
				x[k0] = vmin
				k0++
				if k0 > kminus {
					break
				}
			}
			k, kminus, kplus = k0, k0, k0
			vmin = y[k0]
			vmax = vmin + twoLambda
			umin, umax = lambda, -lambda
			continue
		}
		umax += y[k+1] - vmax
		if umax > lambda { // positive jump
			for {
				x[k0] = vmax
				k0++
				if k0 > kplus {
					break
				}
			}
			k, kminus, kplus = k0, k0, k0
			vmax = y[k0]
			vmin = vmax - twoLambda
			umin, umax = lambda, -lambda
			continue
		}

		// no jump
		k++
		if umin >= lambda {
			kminus = k
			vmin += (umin - lambda) / float64(kminus-k0+1)
			umin = lambda
		}
		if umax <= -lambda {
			kplus = k
			vmax += (umax + lambda) / float64(kplus-k0+1)
			umax = -lambda
		}
	}
}

// soft is the scalar soft-threshold sign(v)·max(|v| − t, 0).
func soft(v, t float64) float64 {
	switch {
	case v > t:
		return v - t
	case v < -t:
		return v + t
	}

	return 0
}

// tvValue returns Σ_i |x_{i+1} − x_i|.
func tvValue(x []float64) float64 {
	var s float64
	for i := 1; i < len(x); i++ {
		s += math.Abs(x[i] - x[i-1])
	}

	return s
}
