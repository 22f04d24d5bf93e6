package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"inflation-forecast-api/pkg/models"
	"inflation-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// Parameter ranges displayed by the UI and enforced here.
const (
	horizonMin = 1
	horizonMax = 10
	arMax      = 5
	diffMax    = 2
	maMax      = 5

	defaultHorizon = 5
)

var defaultOrder = models.ModelOrder{P: 1, D: 1, Q: 1}

// ForecastHandler exposes the inflation forecasting pipeline.
type ForecastHandler struct {
	svc         *services.ForecastService
	maxUploadMB int
}

// NewForecastHandler creates a ForecastHandler.
func NewForecastHandler(svc *services.ForecastService, maxUploadMB int) *ForecastHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &ForecastHandler{svc: svc, maxUploadMB: maxUploadMB}
}

// Forecast runs the full pipeline on two uploaded files.
// Multipart fields: inflation_file, gdp_file.
// Form/query params: horizon (1-10), p/d/q (target order), gdp_p/gdp_d/gdp_q
// (exogenous order). All parameters default to the values the page starts with.
// Any stage failure yields a single error body and no partial output.
func (h *ForecastHandler) Forecast(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(int64(h.maxUploadMB) << 20); err != nil {
		failForecast(c, http.StatusBadRequest, "could not parse upload: "+err.Error())
		return
	}

	inflationData, inflationName, err := readUpload(c, "inflation_file")
	if err != nil {
		failForecast(c, http.StatusBadRequest, err.Error())
		return
	}
	gdpData, gdpName, err := readUpload(c, "gdp_file")
	if err != nil {
		failForecast(c, http.StatusBadRequest, err.Error())
		return
	}

	req, err := parseForecastParams(c)
	if err != nil {
		failForecast(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.svc.Run(inflationData, inflationName, gdpData, gdpName, req)
	if err != nil {
		// The whole pipeline fails as one unit: charts and table are withheld
		// together and the caller gets one descriptive message.
		failForecast(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Settings returns the valid parameter ranges and defaults for the UI.
func (h *ForecastHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, models.ForecastSettings{
		HorizonMin:     horizonMin,
		HorizonMax:     horizonMax,
		ARMax:          arMax,
		DiffMax:        diffMax,
		MAMax:          maMax,
		DefaultHorizon: defaultHorizon,
		DefaultOrder:   defaultOrder,
	})
}

// readUpload reads one multipart file field fully into memory.
func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("missing upload %q (multipart file field)", field)
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("could not open upload %q: %v", field, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not read upload %q: %v", field, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("upload %q is empty", field)
	}
	return data, fileHeader.Filename, nil
}

// parseForecastParams reads and range-checks the pipeline parameters.
func parseForecastParams(c *gin.Context) (models.ForecastRequest, error) {
	req := models.ForecastRequest{
		Horizon:   defaultHorizon,
		Target:    defaultOrder,
		Exogenous: defaultOrder,
	}

	var err error
	if req.Horizon, err = intParam(c, "horizon", defaultHorizon, horizonMin, horizonMax); err != nil {
		return req, err
	}
	if req.Target.P, err = intParam(c, "p", defaultOrder.P, 0, arMax); err != nil {
		return req, err
	}
	if req.Target.D, err = intParam(c, "d", defaultOrder.D, 0, diffMax); err != nil {
		return req, err
	}
	if req.Target.Q, err = intParam(c, "q", defaultOrder.Q, 0, maMax); err != nil {
		return req, err
	}
	if req.Exogenous.P, err = intParam(c, "gdp_p", defaultOrder.P, 0, arMax); err != nil {
		return req, err
	}
	if req.Exogenous.D, err = intParam(c, "gdp_d", defaultOrder.D, 0, diffMax); err != nil {
		return req, err
	}
	if req.Exogenous.Q, err = intParam(c, "gdp_q", defaultOrder.Q, 0, maMax); err != nil {
		return req, err
	}
	return req, nil
}

// intParam reads an integer from form or query, applying a default and range check.
func intParam(c *gin.Context, name string, def, min, max int) (int, error) {
	raw := c.PostForm(name)
	if raw == "" {
		raw = c.Query(name)
	}
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be an integer, got %q", name, raw)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("parameter %q must be between %d and %d, got %d", name, min, max, v)
	}
	return v, nil
}

// failForecast writes the single all-or-nothing error body.
func failForecast(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}
