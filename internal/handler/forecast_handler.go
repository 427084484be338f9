package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/velamo/remitroute/internal/dto"
	"github.com/velamo/remitroute/internal/service"
)

const (
	defaultHorizonDays = 7
	maxHorizonDays     = 30
)

type ForecastHandler struct {
	forecaster *service.Forecaster
}

func NewForecastHandler(forecaster *service.Forecaster) *ForecastHandler {
	return &ForecastHandler{forecaster: forecaster}
}

func (h *ForecastHandler) GetCashFlow(c *gin.Context) {
	distributorID := c.Query("distributor_id")
	corridorID := c.Query("corridor_id")
	if distributorID == "" || corridorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "distributor_id and corridor_id are required"})
		return
	}

	days := defaultHorizonDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHorizonDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 30"})
			return
		}
		days = parsed
	}

	predictions, err := h.forecaster.Predict(c.Request.Context(), distributorID, corridorID, days)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ForecastResponse{
		DistributorID: distributorID,
		CorridorID:    corridorID,
		HorizonDays:   days,
		Predictions:   predictions,
	})
}
