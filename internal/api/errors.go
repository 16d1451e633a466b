package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/matfile/internal/matstore"
	"github.com/samcharles93/matfile/pkg/mat"
)

type ResponseError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error ResponseError `json:"error"`
}

// classify maps a decode or store error to a status and error type.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, mat.ErrInternal):
		return http.StatusInternalServerError, "internal_error"
	case errors.Is(err, mat.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, mat.ErrNotFound), errors.Is(err, matstore.ErrFileNotFound):
		return http.StatusNotFound, "not_found_error"
	case errors.Is(err, mat.ErrFraming):
		return http.StatusUnprocessableEntity, "framing_error"
	case errors.Is(err, mat.ErrTypeMismatch):
		return http.StatusUnprocessableEntity, "type_mismatch_error"
	case errors.Is(err, mat.ErrConversion):
		return http.StatusUnprocessableEntity, "conversion_error"
	case errors.Is(err, mat.ErrIO):
		return http.StatusBadRequest, "read_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}

// writeJSON encodes v before committing the status, so an encoding failure
// still reaches the client as a 500.
func writeJSON(c *echo.Context, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		env := errorEnvelope{Error: ResponseError{Type: "server_error", Message: "encode response: " + err.Error()}}
		if err := json.NewEncoder(&buf).Encode(env); err != nil {
			return err
		}
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(status)
	_, err := res.Write(buf.Bytes())
	return err
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return writeJSON(c, status, errorEnvelope{Error: ResponseError{Type: errType, Message: msg}})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func (s *Server) writeFailure(c *echo.Context, err error) error {
	status, errType := classify(err)
	log := s.log.With("path", c.Request().URL.Path, "status", status)
	switch {
	case mat.IsDefect(err):
		log.Error("decoder defect", "defect", true, "error", err)
	case status >= http.StatusInternalServerError:
		log.Error("request failed", "error", err)
	default:
		log.Debug("request rejected", "error", err)
	}
	return writeError(c, status, errType, err.Error())
}
