package handler

import (
	"errors"
	"io"
	"net/http"

	"proveedores/internal/apierror"
	"proveedores/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bindJSON decodes the request body into req. An empty body decodes as {}.
// Returns false and writes a 400 if the body is not valid JSON for req;
// the caller should return immediately without writing another response.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	return true
}

// parseID reads the :id path parameter. An id that is not a UUID cannot
// exist, so it is answered as a missing supplier.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(model.ErrProveedorNoEncontrado.Error()))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors to their HTTP status. Unknown errors are
// attached to the context so the ErrorHandler middleware logs them and
// answers with the generic 500 body.
func respondError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	var conflictErr *model.ConflictError

	switch {
	case errors.Is(err, model.ErrProveedorNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
