package handler

import (
	"net/http"

	"github.com/weapub/sj-calculadora/internal/dto"
	"github.com/weapub/sj-calculadora/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	filter, ok := bindFiltro(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		responderError(c, err, "Error al obtener productos")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorCodigo looks a product up by its barcode, not by id.
func (h *ProductosHandler) ObtenerPorCodigo(c *gin.Context) {
	resp, err := h.svc.ObtenerPorCodigo(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		responderError(c, err, "Error al obtener producto")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.ProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Error al guardar producto")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Actualizar(c.Request.Context(), id, req); err != nil {
		responderError(c, err, "Error al actualizar producto")
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Producto actualizado"})
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err, "Error al eliminar producto")
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Producto eliminado"})
}
