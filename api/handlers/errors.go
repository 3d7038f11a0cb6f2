// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"

	"github.com/danielgtaylor/huma/v2"

	"mowakeb-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	var validation *errors.ValidationError
	if stderrors.As(err, &validation) {
		return huma.Error400BadRequest(validation.Message, err)
	}

	if errors.IsRemoteUnavailable(err) {
		return huma.Error503ServiceUnavailable(err.Error())
	}

	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		msg := errors.UserMessage(err, "External service error")
		switch {
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable(msg, err)
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by external service")
		default:
			return huma.Error502BadGateway(msg, err)
		}
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
