package services

import (
	"fmt"

	"inflation-forecast-api/pkg/models"
)

// confidenceLevel is fixed: the UI always shows a 95% interval.
const confidenceLevel = 0.95

// ForecastService runs the whole pipeline for one request: parse and align the
// two uploads, forecast GDP growth with ARIMA, then forecast inflation with the
// regression-with-ARMA-errors model using the GDP forecast as future exogenous
// input. Each run is stateless and synchronous; nothing is cached between runs.
type ForecastService struct {
	dataset *DatasetService
}

// NewForecastService creates a ForecastService on top of the given dataset service.
func NewForecastService(dataset *DatasetService) *ForecastService {
	return &ForecastService{dataset: dataset}
}

// Run executes the pipeline and builds the full render payload. On any stage
// failure it returns the error and no payload: output is all-or-nothing.
func (s *ForecastService) Run(inflationData []byte, inflationName string, gdpData []byte, gdpName string, req models.ForecastRequest) (*models.ForecastResponse, error) {
	inflation, droppedInfl, err := s.dataset.ParseInflationTable(inflationData, inflationName)
	if err != nil {
		return nil, fmt.Errorf("inflation source: %w", err)
	}
	gdp, droppedGDP, err := s.dataset.ParseGDPTable(gdpData, gdpName)
	if err != nil {
		return nil, fmt.Errorf("gdp source: %w", err)
	}

	table, err := s.dataset.Align(inflation, gdp)
	if err != nil {
		return nil, err
	}

	years := make([]int, len(table))
	inflationVals := make([]float64, len(table))
	gdpVals := make([]float64, len(table))
	for i, row := range table {
		years[i] = row.Year
		inflationVals[i] = row.Inflation
		gdpVals[i] = row.GDPGrowth
	}

	// Exogenous forecaster: point forecast of GDP growth over the horizon.
	gdpModel := NewARIMAModel(req.Exogenous)
	if err := gdpModel.Fit(gdpVals); err != nil {
		return nil, err
	}
	gdpForecast, err := gdpModel.Forecast(req.Horizon)
	if err != nil {
		return nil, err
	}

	// Target forecaster: inflation on GDP growth with ARMA errors, 95% interval.
	inflModel := NewARIMAXModel(req.Target)
	if err := inflModel.Fit(inflationVals, gdpVals); err != nil {
		return nil, err
	}
	point, lower, upper, err := inflModel.Forecast(req.Horizon, gdpForecast, confidenceLevel)
	if err != nil {
		return nil, err
	}

	lastYear := years[len(years)-1]
	forecastYears := make([]int, req.Horizon)
	for i := range forecastYears {
		forecastYears[i] = lastYear + 1 + i
	}

	points := make([]models.ForecastPoint, req.Horizon)
	tableRows := make([]models.ForecastTableRow, req.Horizon)
	for i := 0; i < req.Horizon; i++ {
		points[i] = models.ForecastPoint{
			Year:     forecastYears[i],
			Forecast: point[i],
			Lower:    lower[i],
			Upper:    upper[i],
		}
		tableRows[i] = models.ForecastTableRow{
			Year:     forecastYears[i],
			Forecast: fmt.Sprintf("%.2f", point[i]),
			Lower:    fmt.Sprintf("%.2f", lower[i]),
			Upper:    fmt.Sprintf("%.2f", upper[i]),
		}
	}

	return &models.ForecastResponse{
		Success: true,
		Meta: models.DatasetMeta{
			Rows:                 len(table),
			FirstYear:            years[0],
			LastYear:             lastYear,
			DroppedInflationRows: droppedInfl,
			DroppedGDPRows:       droppedGDP,
		},
		Historical: []models.ChartSeries{
			{Name: "Inflation", Years: years, Values: inflationVals},
			{Name: "GDP Growth", Years: years, Values: gdpVals},
		},
		ForecastLine: models.ChartSeries{Name: "Forecast Inflation", Years: forecastYears, Values: point},
		Band:         models.ForecastBand{Years: forecastYears, Lower: lower, Upper: upper},
		Table:        tableRows,
		GDPForecast:  gdpForecast,
		Points:       points,
	}, nil
}
