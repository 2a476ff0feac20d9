package handler

import (
	"net/http"
	"strconv"

	"proveedores/internal/dto"
	"proveedores/internal/service"

	"github.com/gin-gonic/gin"
)

// MensajeEliminado is the confirmation body of a successful delete.
const MensajeEliminado = "Proveedor eliminado exitosamente"

type ProveedoresHandler struct{ svc service.ProveedorService }

func NewProveedoresHandler(svc service.ProveedorService) *ProveedoresHandler {
	return &ProveedoresHandler{svc: svc}
}

// queryInt reads an integer query parameter; missing or malformed values
// yield 0 so the service falls back to its default.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// Listar godoc
// @Summary      Listar proveedores
// @Description  Lista paginada ordenada por nombre.
// @Tags         proveedores
// @Produce      json
// @Param        page   query    int false "Página (≥1, por defecto 1)"
// @Param        limit  query    int false "Tamaño de página (por defecto 50)"
// @Success      200  {object} dto.ProveedorListResponse
// @Failure      500  {object} apierror.APIError
// @Router       /api/proveedores [get]
func (h *ProveedoresHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID godoc
// @Summary      Obtener proveedor
// @Tags         proveedores
// @Produce      json
// @Param        id   path     string true "ID del proveedor"
// @Success      200  {object} dto.ProveedorResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/proveedores/{id} [get]
func (h *ProveedoresHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Param        body body     dto.CrearProveedorRequest true "Datos del proveedor"
// @Success      201  {object} dto.ProveedorResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/proveedores [post]
func (h *ProveedoresHandler) Crear(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Actualizar proveedor
// @Description  Reemplaza cada campo presente en el cuerpo; los ausentes se conservan.
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Param        id   path     string                         true "ID del proveedor"
// @Param        body body     dto.ActualizarProveedorRequest true "Campos a reemplazar"
// @Success      200  {object} dto.ProveedorResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /api/proveedores/{id} [put]
func (h *ProveedoresHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarProveedorRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar proveedor
// @Tags         proveedores
// @Produce      json
// @Param        id   path     string true "ID del proveedor"
// @Success      200  {object} dto.MensajeResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/proveedores/{id} [delete]
func (h *ProveedoresHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: MensajeEliminado})
}

// Buscar godoc
// @Summary      Buscar proveedores
// @Description  Subcadena sin distinguir mayúsculas sobre nombre, RUC y categorías.
// @Tags         proveedores
// @Produce      json
// @Param        termino path     string true "Término de búsqueda"
// @Success      200  {array}  dto.ProveedorResponse
// @Router       /api/proveedores/buscar/{termino} [get]
func (h *ProveedoresHandler) Buscar(c *gin.Context) {
	h.buscar(c, c.Param("termino"))
}

// BuscarQuery GET /api/proveedores/buscar?q=term
func (h *ProveedoresHandler) BuscarQuery(c *gin.Context) {
	h.buscar(c, c.Query("q"))
}

func (h *ProveedoresHandler) buscar(c *gin.Context, termino string) {
	resp, err := h.svc.Buscar(c.Request.Context(), termino)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorEstado godoc
// @Summary      Proveedores por estado
// @Tags         proveedores
// @Produce      json
// @Param        estado path     string true "ACTIVO, INACTIVO o SUSPENDIDO (sin distinguir mayúsculas)"
// @Success      200  {array}  dto.ProveedorResponse
// @Router       /api/proveedores/estado/{estado} [get]
func (h *ProveedoresHandler) PorEstado(c *gin.Context) {
	resp, err := h.svc.ListarPorEstado(c.Request.Context(), normalizeEstado(c.Param("estado")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorEstadoEntrega godoc
// @Summary      Proveedores por estado de entrega
// @Tags         proveedores
// @Produce      json
// @Param        estadoEntrega path     string true "p. ej. en-tiempo, RETRASADO"
// @Success      200  {array}  dto.ProveedorResponse
// @Router       /api/proveedores/entrega/{estadoEntrega} [get]
func (h *ProveedoresHandler) PorEstadoEntrega(c *gin.Context) {
	resp, err := h.svc.ListarPorEstadoEntrega(c.Request.Context(), normalizeEstadoEntrega(c.Param("estadoEntrega")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// IncrementarEstadisticas godoc
// @Summary      Incrementar estadísticas
// @Description  Suma los deltas recibidos a los contadores de forma atómica; los ausentes valen 0.
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Param        id   path     string                             true "ID del proveedor"
// @Param        body body     dto.IncrementarEstadisticasRequest true "Deltas"
// @Success      200  {object} dto.ProveedorResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /api/proveedores/{id}/estadisticas [patch]
func (h *ProveedoresHandler) IncrementarEstadisticas(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.IncrementarEstadisticasRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.IncrementarEstadisticas(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
