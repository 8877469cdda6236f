package handlers

import (
	"errors"
	"net/http"

	"safetour/internal/services"
	"safetour/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondServiceError translates service errors into the response
// envelope. Unknown errors become a 500 without leaking detail.
func respondServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, utils.ValidationDetails(validationErrs))
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, utils.ErrInvalidSignature),
		errors.Is(err, utils.ErrTokenExpired),
		errors.Is(err, utils.ErrTokenMalformed):
		utils.UnauthorizedResponse(c)
	case errors.Is(err, services.ErrInactiveAccount):
		utils.ErrorResponse(c, http.StatusForbidden, "ACCOUNT_INACTIVE", services.ErrInactiveAccount.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrTooManyAttempts):
		utils.ErrorResponse(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", services.ErrTooManyAttempts.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		utils.ConflictResponse(c, services.ErrUsernameTaken.Error())
	case errors.Is(err, services.ErrProfileExists):
		utils.ConflictResponse(c, services.ErrProfileExists.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, services.ErrInvalidTransition.Error())
	case errors.Is(err, services.ErrAlertNotFound):
		utils.NotFoundResponse(c, "Alert")
	case errors.Is(err, services.ErrTouristNotFound):
		utils.NotFoundResponse(c, "Tourist profile")
	case errors.Is(err, services.ErrInvalidPoint):
		utils.BadRequestResponse(c, services.ErrInvalidPoint.Error())
	case errors.Is(err, services.ErrInvalidZone):
		utils.BadRequestResponse(c, services.ErrInvalidZone.Error())
	case errors.Is(err, services.ErrUnsupportedFormat):
		utils.BadRequestResponse(c, services.ErrUnsupportedFormat.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}
