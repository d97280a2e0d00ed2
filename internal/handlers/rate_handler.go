package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finwallet/internal/services"
)

// RateHandler serves exchange-rate ingestion for the rate pipeline.
type RateHandler struct {
	rateService services.RateServicer
}

// NewRateHandler creates a new RateHandler
func NewRateHandler(rateService services.RateServicer) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// RateEntry is one exchange rate in a pipeline push. Rate is the value of one
// unit of Currency in the reporting currency.
type RateEntry struct {
	Currency string           `json:"currency" binding:"required,currency_code" example:"USD"`
	Rate     *decimal.Decimal `json:"rate" binding:"required" swaggertype:"string" example:"0.92"`
	AsOf     *time.Time       `json:"as_of"`
}

// UpsertRatesRequest is the pipeline payload.
type UpsertRatesRequest struct {
	Rates []RateEntry `json:"rates" binding:"required,min=1,max=500,dive"`
}

// UpsertRates stores exchange rates pushed by the pipeline
// @Summary     Push exchange rates
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    PipelineAPIKey
// @Param       request body UpsertRatesRequest true "Rates"
// @Success     200 {object} map[string]int "Rows written"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Failure     503 {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/rates [post]
func (h *RateHandler) UpsertRates(c *gin.Context) {
	var req UpsertRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, validationError(err))
		return
	}

	inputs := make([]services.RateInput, 0, len(req.Rates))
	for _, r := range req.Rates {
		in := services.RateInput{Currency: r.Currency, Rate: *r.Rate}
		if r.AsOf != nil {
			in.AsOf = *r.AsOf
		}
		inputs = append(inputs, in)
	}

	n, err := h.rateService.UpsertRates(c.Request.Context(), inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// ListRates returns the stored exchange rates
// @Summary     List exchange rates
// @Tags        rates
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.ExchangeRate "Stored rates"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /rates [get]
func (h *RateHandler) ListRates(c *gin.Context) {
	rates, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}
