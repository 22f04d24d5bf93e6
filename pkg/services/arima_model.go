package services

import (
	"inflation-forecast-api/pkg/models"
)

// ARIMAModel is a univariate ARIMA(p, d, q) model. It forecasts the exogenous
// GDP growth series; only point forecasts are produced here, so GDP forecast
// uncertainty is deliberately not carried into the inflation interval.
type ARIMAModel struct {
	Order models.ModelOrder

	data     []float64
	diffData []float64
	fit      *armaFit
	fitted   bool
}

// NewARIMAModel creates an unfitted ARIMA model with the given order.
func NewARIMAModel(order models.ModelOrder) *ARIMAModel {
	return &ARIMAModel{Order: order}
}

// Fit estimates the model on the full series by conditional sum of squares.
// Coefficients are kept inside the stationary/invertible region.
func (m *ARIMAModel) Fit(values []float64) error {
	if m.Order.P < 0 || m.Order.D < 0 || m.Order.Q < 0 {
		return newFitError("ARIMA", "orders must be non-negative, got (%d, %d, %d)", m.Order.P, m.Order.D, m.Order.Q)
	}
	if len(values) <= m.Order.D {
		return newFitError("ARIMA", "differencing order d=%d needs more than %d observations", m.Order.D, len(values))
	}

	diff := difference(values, m.Order.D)
	if diff == nil {
		return newFitError("ARIMA", "differencing d=%d times emptied the series", m.Order.D)
	}

	fit, err := fitARMACSS("ARIMA", diff, m.Order.P, m.Order.Q, stationaryClamp)
	if err != nil {
		return err
	}

	m.data = append([]float64(nil), values...)
	m.diffData = diff
	m.fit = fit
	m.fitted = true
	return nil
}

// Forecast returns point forecasts for the next steps periods on the original scale.
func (m *ARIMAModel) Forecast(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, newFitError("ARIMA", "model must be fitted before forecasting")
	}
	if steps < 1 {
		return nil, newFitError("ARIMA", "forecast steps must be at least 1, got %d", steps)
	}

	forecasts := m.fit.forecastErrors(m.diffData, steps)
	if m.Order.D > 0 {
		forecasts = integrate(forecasts, m.data, m.Order.D)
	}
	return forecasts, nil
}
