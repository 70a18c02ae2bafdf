package handler

import (
	"net/http"

	"github.com/weapub/sj-calculadora/internal/dto"
	"github.com/weapub/sj-calculadora/internal/service"

	"github.com/gin-gonic/gin"
)

type ProveedoresHandler struct{ svc service.ProveedorService }

func NewProveedoresHandler(svc service.ProveedorService) *ProveedoresHandler {
	return &ProveedoresHandler{svc: svc}
}

func (h *ProveedoresHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err, "Error al obtener proveedores")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProveedoresHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err, "Error al obtener proveedor")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProveedoresHandler) Crear(c *gin.Context) {
	var req dto.ProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err, "Error al guardar proveedor")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProveedoresHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Actualizar(c.Request.Context(), id, req); err != nil {
		responderError(c, err, "Error al actualizar proveedor")
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Proveedor actualizado"})
}

func (h *ProveedoresHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err, "Error al eliminar proveedor")
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Proveedor eliminado"})
}
