package dto

import (
	"github.com/weapub/sj-calculadora/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProveedorRequest is the body of POST /proveedores and PUT /proveedores/:id.
// Numeric fields never fail binding; see model.Numero.
type ProveedorRequest struct {
	Nombre     string       `json:"nombre"     validate:"required,notblank"`
	IVA        model.Numero `json:"iva"`
	Percepcion model.Numero `json:"percepcion"`
	Descuento  model.Numero `json:"descuento"`
}

func (r ProveedorRequest) Input() model.ProveedorInput {
	return model.ProveedorInput{
		Nombre:     r.Nombre,
		IVA:        r.IVA,
		Percepcion: r.Percepcion,
		Descuento:  r.Descuento,
	}
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID         int64           `json:"id"`
	Nombre     string          `json:"nombre"`
	IVA        decimal.Decimal `json:"iva"`
	Percepcion decimal.Decimal `json:"percepcion"`
	Descuento  decimal.Decimal `json:"descuento"`
}

// MensajeResponse confirms a write that has no body of its own.
type MensajeResponse struct {
	Mensaje string `json:"mensaje"`
}
