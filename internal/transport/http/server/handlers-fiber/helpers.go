package handlers_fiber

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Zaniyar/grantmaster/internal/entities"
	"github.com/gofiber/fiber/v2"
)

// ErrorCode classifies an error response.
type ErrorCode string

const (
	CodeInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	CodeInternal          ErrorCode = "INTERNAL"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
}

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := CodeInternal
	msg := err.Error()

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = CodeInvalidArgument
	case errors.Is(err, entities.ErrTeamNotFound),
		errors.Is(err, entities.ErrProposalNotFound),
		errors.Is(err, entities.ErrPullRequestNotFound):
		status = http.StatusNotFound
		code = CodeNotFound
		msg = "resource not found"
	case errors.Is(err, entities.ErrSourceUnavailable):
		status = http.StatusBadGateway
		code = CodeSourceUnavailable
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code ErrorCode, msg string) ErrorResponse {
	var res ErrorResponse
	res.Error.Code = code
	res.Error.Message = msg
	return res
}

// boolQuery reads an optional boolean query parameter; absent means false.
func boolQuery(c *fiber.Ctx, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", entities.ErrInvalidArgument, key)
	}
	return v, nil
}

func pullRequestNumber(c *fiber.Ctx) (int, error) {
	n, err := c.ParamsInt("id")
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: pull request id must be a positive integer", entities.ErrInvalidArgument)
	}
	return n, nil
}
