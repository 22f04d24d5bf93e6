package services

import (
	"math"

	"inflation-forecast-api/pkg/models"

	"gonum.org/v1/gonum/mat"
)

// ARIMAXModel regresses the target series on a single exogenous regressor and
// models the regression errors as ARMA(p, q) after d joint differences. The fit
// runs with stationarity/invertibility relaxed: coefficient estimates are never
// pushed back inside the unit circle, so near-unit-root fits still produce an
// answer.
type ARIMAXModel struct {
	Order models.ModelOrder

	y, x        []float64
	dy, dx      []float64
	residuals   []float64
	alpha, beta float64
	errFit      *armaFit
	fitted      bool
}

// NewARIMAXModel creates an unfitted regression-with-ARMA-errors model.
func NewARIMAXModel(order models.ModelOrder) *ARIMAXModel {
	return &ARIMAXModel{Order: order}
}

// Fit estimates the regression and the error process on the aligned history.
func (m *ARIMAXModel) Fit(y, x []float64) error {
	if m.Order.P < 0 || m.Order.D < 0 || m.Order.Q < 0 {
		return newFitError("ARIMAX", "orders must be non-negative, got (%d, %d, %d)", m.Order.P, m.Order.D, m.Order.Q)
	}
	if len(y) != len(x) {
		return newFitError("ARIMAX", "target and exogenous series lengths differ: %d vs %d", len(y), len(x))
	}
	if len(y) <= m.Order.D {
		return newFitError("ARIMAX", "differencing order d=%d needs more than %d observations", m.Order.D, len(y))
	}

	dy := difference(y, m.Order.D)
	dx := difference(x, m.Order.D)
	if dy == nil || dx == nil {
		return newFitError("ARIMAX", "differencing d=%d times emptied the series", m.Order.D)
	}
	n := len(dy)
	if n < 3 {
		return newFitError("ARIMAX", "need at least 3 observations after differencing, have %d", n)
	}

	// OLS of the differenced target on [1, differenced exogenous].
	design := mat.NewDense(n, 2, nil)
	target := mat.NewDense(n, 1, nil)
	for t := 0; t < n; t++ {
		design.Set(t, 0, 1)
		design.Set(t, 1, dx[t])
		target.Set(t, 0, dy[t])
	}
	var coef mat.Dense
	if err := coef.Solve(design, target); err != nil {
		return newFitError("ARIMAX", "exogenous regression is singular: %v", err)
	}
	alpha := coef.At(0, 0)
	beta := coef.At(1, 0)

	residuals := make([]float64, n)
	for t := 0; t < n; t++ {
		residuals[t] = dy[t] - alpha - beta*dx[t]
	}

	// ARMA on the regression errors, relaxed (clamp disabled).
	errFit, err := fitARMACSS("ARIMAX", residuals, m.Order.P, m.Order.Q, 0)
	if err != nil {
		return err
	}

	m.y = append([]float64(nil), y...)
	m.x = append([]float64(nil), x...)
	m.dy = dy
	m.dx = dx
	m.residuals = residuals
	m.alpha = alpha
	m.beta = beta
	m.errFit = errFit
	m.fitted = true
	return nil
}

// Forecast produces point forecasts with a symmetric Gaussian interval at the
// given confidence level. futureX is the exogenous point forecast, treated as
// known with certainty; its length must equal steps.
func (m *ARIMAXModel) Forecast(steps int, futureX []float64, confidence float64) (point, lower, upper []float64, err error) {
	if !m.fitted {
		return nil, nil, nil, newFitError("ARIMAX", "model must be fitted before forecasting")
	}
	if steps < 1 {
		return nil, nil, nil, newFitError("ARIMAX", "forecast steps must be at least 1, got %d", steps)
	}
	if len(futureX) != steps {
		return nil, nil, nil, ErrHorizonMismatch
	}
	if confidence <= 0 || confidence >= 1 {
		confidence = 0.95
	}

	// Differenced exogenous values for the future periods come from the
	// history extended with the exogenous point forecast.
	xAll := append(append([]float64(nil), m.x...), futureX...)
	dxAll := difference(xAll, m.Order.D)
	futureDX := dxAll[len(dxAll)-steps:]

	errForecast := m.errFit.forecastErrors(m.residuals, steps)

	point = make([]float64, steps)
	for h := 0; h < steps; h++ {
		point[h] = m.alpha + m.beta*futureDX[h] + errForecast[h]
	}
	if m.Order.D > 0 {
		point = integrate(point, m.y, m.Order.D)
	}

	// Linear-Gaussian interval from the fitted error variance. Psi weights of
	// the ARMA error process are accumulated once per integration round so the
	// variance grows with horizon on the original scale.
	psi := m.errFit.psiWeights(steps)
	for i := 0; i < m.Order.D; i++ {
		for j := 1; j < len(psi); j++ {
			psi[j] += psi[j-1]
		}
	}

	z := gaussianQuantile((1 + confidence) / 2)
	lower = make([]float64, steps)
	upper = make([]float64, steps)
	cum := 0.0
	for h := 0; h < steps; h++ {
		cum += psi[h] * psi[h]
		se := math.Sqrt(m.errFit.variance * cum)
		lower[h] = point[h] - z*se
		upper[h] = point[h] + z*se
	}

	return point, lower, upper, nil
}
