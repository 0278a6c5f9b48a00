package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/entities"
)

// respondError translates a component failure into a status code and error body
func respondError(c echo.Context, err error, logger *zap.Logger) error {
	var (
		validationErr *entities.ValidationError
		notFoundErr   *entities.NotFoundError
		synthErr      *entities.SynthesisError
		storageErr    *entities.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

	case errors.As(err, &notFoundErr):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   notFoundErr.Kind + "_not_found",
			Message: notFoundErr.Error(),
		})

	case errors.As(err, &synthErr):
		logger.Warn("Synthesis backend failure",
			zap.String("reason", string(synthErr.Reason)),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   string(synthErr.Reason),
			Message: "Speech synthesis failed, please retry",
		})

	case errors.As(err, &storageErr):
		logger.Error("Failed to store audio artifact",
			zap.String("reason", string(storageErr.Reason)),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   string(storageErr.Reason),
			Message: "Failed to store audio",
		})
	}

	logger.Error("Unhandled request error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "Internal server error",
	})
}
