package apperr

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// HTTPError converts a service error into the huma error returned to the client.
// Anything that is not an *Error is treated as a storage failure.
func HTTPError(err error) error {
	if err == nil {
		return nil
	}
	var se huma.StatusError
	if errors.As(err, &se) {
		return se
	}

	var e *Error
	if !errors.As(err, &e) {
		zap.L().Error("request failed", zap.Error(err))
		return huma.Error500InternalServerError("Internal server error")
	}

	switch e.Code {
	case CodeNotFound:
		return huma.Error404NotFound(e.Message)
	case CodeUnauthorized:
		return huma.Error401Unauthorized(e.Message)
	case CodeForbidden:
		return huma.Error403Forbidden(e.Message)
	case CodeDuplicateMembership, CodeNotEnrolled, CodeRewardInactive, CodeOutOfStock,
		CodeInsufficientPoints, CodeInvalidStatus, CodeValidation:
		return huma.Error400BadRequest(e.Message)
	default:
		zap.L().Error("unmapped error code", zap.String("code", string(e.Code)), zap.Error(err))
		return huma.Error500InternalServerError("Internal server error")
	}
}
