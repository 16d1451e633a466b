package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/matfile/internal/logger"
	"github.com/samcharles93/matfile/internal/matstore"
	"github.com/samcharles93/matfile/internal/tensor"
	"github.com/samcharles93/matfile/pkg/mat"
)

// DefaultMaxUpload bounds request bodies when no limit is configured.
const DefaultMaxUpload = 256 << 20

type Server struct {
	store     *matstore.Store
	log       logger.Logger
	maxUpload int64
	started   time.Time
}

func NewServer(store *matstore.Store, log logger.Logger, maxUpload int64) *Server {
	if log == nil {
		log = logger.Discard()
	}
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &Server{
		store:     store,
		log:       log.With("component", "api"),
		maxUpload: maxUpload,
		started:   time.Now(),
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)

	e.POST("/v1/files", s.handleUpload)
	e.GET("/v1/files", s.handleList)
	e.GET("/v1/files/:id", s.handleGetFile)
	e.DELETE("/v1/files/:id", s.handleDeleteFile)
	e.GET("/v1/files/:id/arrays/:name", s.handleGetArray)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]any{
		"status": "ok",
		"files":  s.store.Len(),
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleUpload(c *echo.Context) error {
	req := c.Request()
	if req.ContentLength > s.maxUpload {
		return s.writeFailure(c, fmt.Errorf("%w: body is %d bytes, limit %d", mat.ErrTooLarge, req.ContentLength, s.maxUpload))
	}
	data, err := io.ReadAll(io.LimitReader(req.Body, s.maxUpload+1))
	if err != nil {
		return s.writeFailure(c, fmt.Errorf("%w: %w", mat.ErrIO, err))
	}
	if int64(len(data)) > s.maxUpload {
		return s.writeFailure(c, fmt.Errorf("%w: body exceeds %d bytes", mat.ErrTooLarge, s.maxUpload))
	}
	if len(data) == 0 {
		return writeBadRequest(c, "empty request body")
	}

	name := c.QueryParam("name")
	if name == "" {
		name = "upload.mat"
	}
	entry, err := s.store.Decode(name, data)
	if err != nil {
		return s.writeFailure(c, err)
	}
	return writeJSON(c, http.StatusCreated, NewFileResponse(entry))
}

func (s *Server) handleList(c *echo.Context) error {
	entries := s.store.List()
	out := FileList{Files: make([]FileResponse, len(entries))}
	for i, e := range entries {
		out.Files[i] = NewFileResponse(e)
	}
	return writeJSON(c, http.StatusOK, out)
}

func (s *Server) handleGetFile(c *echo.Context) error {
	entry, err := s.store.Get(c.Param("id"))
	if err != nil {
		return s.writeFailure(c, err)
	}
	return writeJSON(c, http.StatusOK, NewFileResponse(entry))
}

func (s *Server) handleDeleteFile(c *echo.Context) error {
	id := c.Param("id")
	if err := s.store.Delete(id); err != nil {
		return s.writeFailure(c, err)
	}
	return writeJSON(c, http.StatusOK, DeleteResponse{ID: id, Deleted: true})
}

func (s *Server) handleGetArray(c *echo.Context) error {
	entry, err := s.store.Get(c.Param("id"))
	if err != nil {
		return s.writeFailure(c, err)
	}
	name := c.Param("name")
	format := c.QueryParam("format")
	switch format {
	case "", "values", "matrix":
	default:
		return writeBadRequest(c, fmt.Sprintf("unknown format %q (want values or matrix)", format))
	}

	if a, ok := entry.File.Find(name); ok {
		if format != "matrix" {
			return writeJSON(c, http.StatusOK, NewArrayValues(a))
		}
		re, err := tensor.ToMat(a)
		if err != nil {
			return s.writeMatrixFailure(c, err)
		}
		var im *tensor.Mat
		if a.IsComplex() {
			m, err := tensor.ImagMat(a)
			if err != nil {
				return s.writeMatrixFailure(c, err)
			}
			im = &m
		}
		return writeJSON(c, http.StatusOK, NewMatrixValues(a.Name, &re, im))
	}

	if sp, ok := entry.File.FindSparse(name); ok {
		if format != "matrix" {
			return writeJSON(c, http.StatusOK, NewSparseValues(sp))
		}
		re, err := tensor.FromSparse(sp)
		if err != nil {
			return s.writeMatrixFailure(c, err)
		}
		var im *tensor.Mat
		if sp.Imag != nil {
			m, err := tensor.SparseImag(sp)
			if err != nil {
				return s.writeMatrixFailure(c, err)
			}
			im = &m
		}
		return writeJSON(c, http.StatusOK, NewMatrixValues(sp.Name, &re, im))
	}

	return s.writeFailure(c, fmt.Errorf("%w: %q in %s", mat.ErrNotFound, name, entry.ID))
}

// writeMatrixFailure reports an array that has no dense two-dimensional form.
func (s *Server) writeMatrixFailure(c *echo.Context, err error) error {
	if errors.Is(err, mat.ErrTooLarge) {
		return s.writeFailure(c, err)
	}
	return writeBadRequest(c, err.Error())
}
