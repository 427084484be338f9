package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velamo/remitroute/internal/dto"
	"github.com/velamo/remitroute/internal/service"
)

type QuoteHandler struct {
	quotes *service.QuoteService
}

func NewQuoteHandler(quotes *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

func (h *QuoteHandler) Get(c *gin.Context) {
	quote, err := h.quotes.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

func (h *QuoteHandler) Execute(c *gin.Context) {
	var req dto.ExecuteQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	txn, err := h.quotes.Execute(c.Request.Context(), c.Param("id"), req.RouteID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ExecuteQuoteResponse{
		TransactionID: txn.ID,
		Status:        txn.Status,
	})
}
