package models

// AnnualPoint is one row of the aligned table: a year present in both uploads.
type AnnualPoint struct {
	Year      int     `json:"year"`
	Inflation float64 `json:"inflation"`
	GDPGrowth float64 `json:"gdp_growth"`
}

// RawPoint is a single (year, value) row parsed from one uploaded table.
type RawPoint struct {
	Year  int
	Value float64
}

// ModelOrder holds ARIMA order parameters (p, d, q).
type ModelOrder struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

// ForecastPoint is one future year with its point estimate and 95% interval.
type ForecastPoint struct {
	Year     int     `json:"year"`
	Forecast float64 `json:"forecast"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
}

// ForecastTableRow is a display row with values formatted to two decimal places.
// The underlying ForecastPoint keeps full precision.
type ForecastTableRow struct {
	Year     int    `json:"year"`
	Forecast string `json:"forecast"`
	Lower    string `json:"lower_95"`
	Upper    string `json:"upper_95"`
}

// ChartSeries is a named line for the frontend chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Years  []int     `json:"years"`
	Values []float64 `json:"values"`
}

// ForecastBand is the shaded 95% interval overlay for the forecast chart.
type ForecastBand struct {
	Years []int     `json:"years"`
	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
}

// DatasetMeta reports what survived parsing and alignment.
type DatasetMeta struct {
	Rows                 int `json:"rows"`
	FirstYear            int `json:"first_year"`
	LastYear             int `json:"last_year"`
	DroppedInflationRows int `json:"dropped_inflation_rows"`
	DroppedGDPRows       int `json:"dropped_gdp_rows"`
}

// ForecastRequest carries the user-adjustable pipeline parameters.
type ForecastRequest struct {
	Horizon   int        `json:"horizon"`
	Target    ModelOrder `json:"target_order"`
	Exogenous ModelOrder `json:"exogenous_order"`
}

// ForecastResponse is the full render payload. It is only ever returned whole:
// any pipeline failure yields a single error body instead, never a partial response.
type ForecastResponse struct {
	Success      bool               `json:"success"`
	Meta         DatasetMeta        `json:"meta"`
	Historical   []ChartSeries      `json:"historical"`
	ForecastLine ChartSeries        `json:"forecast_line"`
	Band         ForecastBand       `json:"band"`
	Table        []ForecastTableRow `json:"table"`
	GDPForecast  []float64          `json:"gdp_forecast"`
	Points       []ForecastPoint    `json:"points"`
}

// ForecastSettings describes the valid parameter ranges and defaults shown by the UI.
type ForecastSettings struct {
	HorizonMin     int        `json:"horizon_min"`
	HorizonMax     int        `json:"horizon_max"`
	ARMax          int        `json:"ar_max"`
	DiffMax        int        `json:"diff_max"`
	MAMax          int        `json:"ma_max"`
	DefaultHorizon int        `json:"default_horizon"`
	DefaultOrder   ModelOrder `json:"default_order"`
}
