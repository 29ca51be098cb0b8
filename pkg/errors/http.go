package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPError converts an error into an echo HTTP error with a JSON body
// of the form {"error": code, "message": text}.
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		return echoErr
	}

	var coded Error
	if As(err, &coded) {
		return echo.NewHTTPError(ToHTTPStatus(coded.Code()), echo.Map{
			"error":   coded.Code(),
			"message": coded.Error(),
		})
	}

	// Uncoded errors may carry driver details, keep them out of the response.
	return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{
		"error":   ErrInternal,
		"message": "Something went wrong!",
	})
}
