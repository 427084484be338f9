package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/velamo/remitroute/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapError translates the domain error taxonomy and database errors to HTTP.
// Fatal user-facing errors map to 4xx Gone/NotFound/Conflict; upstream
// failures map to 503 so callers retry with backoff.
func MapError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, service.ErrNoCorridor):
		return http.StatusNotFound, ErrorResponse{Error: service.ErrNoCorridor.Error()}
	case errors.Is(err, service.ErrAmountOutsideLimits):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: service.ErrAmountOutsideLimits.Error()}
	case errors.Is(err, service.ErrNoViableCandidates):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: service.ErrNoViableCandidates.Error()}
	case errors.Is(err, service.ErrQuoteNotFound):
		return http.StatusNotFound, ErrorResponse{Error: service.ErrQuoteNotFound.Error()}
	case errors.Is(err, service.ErrQuoteExpired):
		return http.StatusGone, ErrorResponse{Error: service.ErrQuoteExpired.Error()}
	case errors.Is(err, service.ErrRouteNotInQuote):
		return http.StatusBadRequest, ErrorResponse{Error: service.ErrRouteNotInQuote.Error()}
	case errors.Is(err, service.ErrQuoteAlreadyExecuted):
		return http.StatusConflict, ErrorResponse{Error: service.ErrQuoteAlreadyExecuted.Error()}
	case errors.Is(err, service.ErrCapacityGone):
		return http.StatusConflict, ErrorResponse{Error: service.ErrCapacityGone.Error()}
	case errors.Is(err, service.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: service.ErrUpstreamUnavailable.Error()}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, ErrorResponse{Error: "resource not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, ErrorResponse{
				Error:   "resource already exists",
				Details: pgErr.Detail,
			}
		case "23503": // foreign_key_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "referenced resource does not exist",
				Details: pgErr.Detail,
			}
		case "23514": // check_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "constraint violation",
				Details: pgErr.Detail,
			}
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
