package services

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// armaFit holds the result of a conditional-sum-of-squares ARMA(p, q) estimation
// on an already-differenced series.
type armaFit struct {
	p, q      int
	arCoeffs  []float64
	maCoeffs  []float64
	intercept float64
	variance  float64
	residuals []float64
}

const (
	cssMaxIter   = 200
	cssTolerance = 1e-8
	cssLearnRate = 0.01

	// Coefficient bound used when stationarity/invertibility is enforced.
	// Passing clamp <= 0 to fitARMACSS disables the bound entirely, which lets
	// near-unit-root fits proceed instead of being pushed back into the region.
	stationaryClamp = 0.99
)

// fitARMACSS estimates an ARMA(p, q) model by conditional sum of squares with
// gradient refinement. AR coefficients start from Yule-Walker estimates, MA
// coefficients from a small constant, so the whole procedure is deterministic.
func fitARMACSS(model string, y []float64, p, q int, clamp float64) (*armaFit, error) {
	n := len(y)
	if n < 2 {
		return nil, newFitError(model, "need at least 2 observations, have %d", n)
	}
	if n <= p+q+1 {
		return nil, newFitError(model, "%d observations are too few for p=%d, q=%d", n, p, q)
	}

	fit := &armaFit{
		p:        p,
		q:        q,
		arCoeffs: make([]float64, p),
		maCoeffs: make([]float64, q),
	}

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	fit.intercept = mean

	if p == 0 && q == 0 {
		// White noise around the mean.
		fit.residuals = make([]float64, n)
		sse := 0.0
		for i, v := range y {
			fit.residuals[i] = v - mean
			sse += fit.residuals[i] * fit.residuals[i]
		}
		if n > 1 {
			fit.variance = sse / float64(n-1)
		}
		return fit, nil
	}

	if p > 0 {
		acf := sampleACF(y, p)
		if est := yuleWalker(acf, p); est != nil {
			copy(fit.arCoeffs, est)
		}
	}
	for i := range fit.maCoeffs {
		fit.maCoeffs[i] = 0.1
	}

	startIdx := p
	if q > startIdx {
		startIdx = q
	}

	residuals := make([]float64, n)
	prevSSE := math.Inf(1)

	for iter := 0; iter < cssMaxIter; iter++ {
		sse := 0.0
		for t := startIdx; t < n; t++ {
			pred := fit.intercept
			for i := 0; i < p; i++ {
				pred += fit.arCoeffs[i] * (y[t-i-1] - fit.intercept)
			}
			for i := 0; i < q; i++ {
				pred += fit.maCoeffs[i] * residuals[t-i-1]
			}
			residuals[t] = y[t] - pred
			sse += residuals[t] * residuals[t]
		}

		if math.IsNaN(sse) || math.IsInf(sse, 0) {
			return nil, newFitError(model, "estimation diverged for p=%d, q=%d", p, q)
		}
		if math.Abs(prevSSE-sse) < cssTolerance {
			break
		}
		prevSSE = sse

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		for t := startIdx; t < n; t++ {
			for i := 0; i < p; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - fit.intercept)
			}
			for i := 0; i < q; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
		}

		for i := 0; i < p; i++ {
			fit.arCoeffs[i] -= cssLearnRate * arGrad[i] / float64(n)
			if clamp > 0 {
				fit.arCoeffs[i] = math.Max(-clamp, math.Min(clamp, fit.arCoeffs[i]))
			}
		}
		for i := 0; i < q; i++ {
			fit.maCoeffs[i] -= cssLearnRate * maGrad[i] / float64(n)
			if clamp > 0 {
				fit.maCoeffs[i] = math.Max(-clamp, math.Min(clamp, fit.maCoeffs[i]))
			}
		}
	}

	// Final residual pass with the converged coefficients.
	fit.residuals = make([]float64, n)
	for t := 0; t < n; t++ {
		if t < startIdx {
			fit.residuals[t] = y[t] - fit.intercept
			continue
		}
		pred := fit.intercept
		for i := 0; i < p; i++ {
			pred += fit.arCoeffs[i] * (y[t-i-1] - fit.intercept)
		}
		for i := 0; i < q; i++ {
			pred += fit.maCoeffs[i] * fit.residuals[t-i-1]
		}
		fit.residuals[t] = y[t] - pred
	}

	sse := 0.0
	count := 0
	for t := startIdx; t < n; t++ {
		sse += fit.residuals[t] * fit.residuals[t]
		count++
	}
	if count > p+q+1 {
		fit.variance = sse / float64(count-p-q-1)
	} else if count > 0 {
		fit.variance = sse / float64(count)
	}
	if math.IsNaN(fit.variance) || math.IsInf(fit.variance, 0) {
		return nil, newFitError(model, "residual variance is not finite for p=%d, q=%d", p, q)
	}

	return fit, nil
}

// forecastErrors extends the ARMA error process steps periods ahead with future
// innovations set to zero.
func (f *armaFit) forecastErrors(y []float64, steps int) []float64 {
	n := len(y)
	extY := make([]float64, n+steps)
	copy(extY, y)
	extRes := make([]float64, n+steps)
	copy(extRes, f.residuals)

	out := make([]float64, steps)
	for h := 0; h < steps; h++ {
		t := n + h
		pred := f.intercept
		for i := 0; i < f.p && t-i-1 >= 0; i++ {
			pred += f.arCoeffs[i] * (extY[t-i-1] - f.intercept)
		}
		for i := 0; i < f.q && t-i-1 >= 0 && t-i-1 < n; i++ {
			pred += f.maCoeffs[i] * extRes[t-i-1]
		}
		extY[t] = pred
		extRes[t] = 0
		out[h] = pred
	}
	return out
}

// psiWeights returns the first `steps` MA(infinity) weights of the fitted ARMA
// process (psi_0 = 1). The h-step forecast error variance on the differenced
// scale is variance * sum of the first h squared weights.
func (f *armaFit) psiWeights(steps int) []float64 {
	psi := make([]float64, steps)
	if steps == 0 {
		return psi
	}
	psi[0] = 1
	for j := 1; j < steps; j++ {
		v := 0.0
		if j <= f.q {
			v += f.maCoeffs[j-1]
		}
		for i := 1; i <= f.p && i <= j; i++ {
			v += f.arCoeffs[i-1] * psi[j-i]
		}
		psi[j] = v
	}
	return psi
}

// sampleACF computes the autocorrelation function up to maxLag.
func sampleACF(y []float64, maxLag int) []float64 {
	n := len(y)
	acf := make([]float64, maxLag+1)
	if n == 0 {
		return acf
	}

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)

	c0 := 0.0
	for _, v := range y {
		c0 += (v - mean) * (v - mean)
	}
	c0 /= float64(n)
	if c0 == 0 {
		acf[0] = 1
		return acf
	}

	acf[0] = 1
	for lag := 1; lag <= maxLag && lag < n; lag++ {
		ck := 0.0
		for t := lag; t < n; t++ {
			ck += (y[t] - mean) * (y[t-lag] - mean)
		}
		ck /= float64(n)
		acf[lag] = ck / c0
	}
	return acf
}

// yuleWalker solves the Yule-Walker equations for initial AR estimates using
// Levinson-Durbin recursion.
func yuleWalker(acf []float64, order int) []float64 {
	if order <= 0 || len(acf) <= order {
		return nil
	}

	phi := make([]float64, order)
	phi[0] = acf[1]
	if order == 1 {
		return phi
	}

	v := 1 - phi[0]*phi[0]
	for i := 1; i < order; i++ {
		if v <= 0 {
			break
		}
		lambda := acf[i+1]
		for j := 0; j < i; j++ {
			lambda -= phi[j] * acf[i-j]
		}
		lambda /= v

		newPhi := make([]float64, i+1)
		for j := 0; j < i; j++ {
			newPhi[j] = phi[j] - lambda*phi[i-1-j]
		}
		newPhi[i] = lambda
		copy(phi, newPhi)

		v *= 1 - lambda*lambda
	}
	return phi
}

// difference applies d rounds of first differencing.
func difference(y []float64, d int) []float64 {
	out := append([]float64(nil), y...)
	for i := 0; i < d; i++ {
		if len(out) < 2 {
			return nil
		}
		next := make([]float64, len(out)-1)
		for t := 1; t < len(out); t++ {
			next[t-1] = out[t] - out[t-1]
		}
		out = next
	}
	return out
}

// integrate undoes d rounds of differencing. Each round is anchored on the
// last value of the series at that differencing level, innermost first.
func integrate(forecasts, original []float64, d int) []float64 {
	result := append([]float64(nil), forecasts...)
	for k := d - 1; k >= 0; k-- {
		level := original
		if k > 0 {
			level = difference(original, k)
		}
		lastVal := level[len(level)-1]
		for j := range result {
			if j == 0 {
				result[j] += lastVal
			} else {
				result[j] += result[j-1]
			}
		}
	}
	return result
}

// gaussianQuantile returns the standard normal quantile for probability p.
func gaussianQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}
