package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/weapub/sj-calculadora/internal/service"

	"github.com/gin-gonic/gin"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportacionHandler struct{ svc service.ExportacionService }

func NewExportacionHandler(svc service.ExportacionService) *ExportacionHandler {
	return &ExportacionHandler{svc: svc}
}

// Productos streams the price list as an XLSX attachment. The workbook is
// rendered into memory first so a storage failure can still answer 500.
func (h *ExportacionHandler) Productos(c *gin.Context) {
	filter, ok := bindFiltro(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.svc.ExportarProductos(c.Request.Context(), filter.Q, &buf); err != nil {
		responderError(c, err, "Error al exportar productos")
		return
	}

	nombre := fmt.Sprintf("precios_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nombre))
	c.Data(http.StatusOK, mimeXLSX, buf.Bytes())
}
