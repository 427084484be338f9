package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/velamo/remitroute/internal/dto"
	"github.com/velamo/remitroute/internal/model"
	"github.com/velamo/remitroute/internal/service"
)

type RouteHandler struct {
	quotes *service.QuoteService
}

func NewRouteHandler(quotes *service.QuoteService) *RouteHandler {
	return &RouteHandler{quotes: quotes}
}

func (h *RouteHandler) Optimize(c *gin.Context) {
	var req dto.OptimizeRoutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	quote, err := h.quotes.CreateQuote(c.Request.Context(), service.OptimizeRequest{
		Amount:             req.Amount,
		CurrencyFrom:       strings.ToUpper(req.CurrencyFrom),
		CurrencyTo:         strings.ToUpper(req.CurrencyTo),
		OriginCountry:      strings.ToUpper(req.OriginCountry),
		DestinationCountry: strings.ToUpper(req.DestinationCountry),
		SenderID:           req.SenderID,
		Recipient: model.RecipientInfo{
			Name:              req.Recipient.Name,
			Location:          req.Recipient.Location,
			PreferredDelivery: model.DeliveryMethod(req.Recipient.PreferredDelivery),
		},
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote))
}
