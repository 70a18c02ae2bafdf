package dto

import (
	"math"

	"github.com/weapub/sj-calculadora/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProductoRequest is the body of POST /productos and PUT /productos/:id.
// proveedor_id accepts a number, a numeric string, "" or null; anything that
// is not a positive integer leaves the product unassigned.
type ProductoRequest struct {
	Codigo      string       `json:"codigo"       validate:"required,notblank"`
	Nombre      string       `json:"nombre"       validate:"required,notblank"`
	ProveedorID model.Numero `json:"proveedor_id"`
	CostoNeto   model.Numero `json:"costo_neto"`
	Tipo        *string      `json:"tipo"`
	Margen      model.Numero `json:"margen"`
	PrecioFinal model.Numero `json:"precio_final"`
}

func (r ProductoRequest) Input() model.ProductoInput {
	return model.ProductoInput{
		Codigo:      r.Codigo,
		Nombre:      r.Nombre,
		ProveedorID: idOpcional(r.ProveedorID),
		CostoNeto:   r.CostoNeto,
		Tipo:        r.Tipo,
		Margen:      r.Margen,
		PrecioFinal: r.PrecioFinal,
	}
}

// maxProveedorID is the largest value the INTEGER proveedor_id column holds.
var maxProveedorID = decimal.NewFromInt(math.MaxInt32)

func idOpcional(n model.Numero) *int64 {
	v, ok := n.Valor()
	if !ok || !v.IsInteger() || !v.IsPositive() || v.GreaterThan(maxProveedorID) {
		return nil
	}
	id := v.IntPart()
	return &id
}

// ProductoFilter binds the query string of GET /productos.
type ProductoFilter struct {
	Q string `form:"q"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID              int64           `json:"id"`
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	ProveedorID     *int64          `json:"proveedor_id"`
	CostoNeto       decimal.Decimal `json:"costo_neto"`
	Tipo            *string         `json:"tipo"`
	Margen          decimal.Decimal `json:"margen"`
	PrecioFinal     decimal.Decimal `json:"precio_final"`
	ProveedorNombre *string         `json:"proveedor_nombre"`
}
