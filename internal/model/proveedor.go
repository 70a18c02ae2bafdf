package model

import (
	"github.com/shopspring/decimal"
)

// Defaults applied by Normalizar when a numeric input is missing or unusable.
var (
	IVADefault        = decimal.NewFromInt(21)
	PercepcionDefault = decimal.Zero
	DescuentoDefault  = decimal.Zero
)

// Proveedor represents a supplier and the tax/discount parameters the
// front-end calculator applies to its products.
type Proveedor struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Nombre     string          `gorm:"not null" json:"nombre"`
	IVA        decimal.Decimal `gorm:"column:iva;type:numeric;not null" json:"iva"`
	Percepcion decimal.Decimal `gorm:"type:numeric;not null" json:"percepcion"`
	Descuento  decimal.Decimal `gorm:"type:numeric;not null" json:"descuento"`
}

func (Proveedor) TableName() string { return "proveedores" }

// ProveedorInput is the raw write payload. Numeric fields are normalised, never rejected.
type ProveedorInput struct {
	Nombre     string
	IVA        Numero
	Percepcion Numero
	Descuento  Numero
}

// Normalizar returns the record that will be persisted for this input.
func (in ProveedorInput) Normalizar() Proveedor {
	return Proveedor{
		Nombre:     NormalizarTexto(in.Nombre),
		IVA:        in.IVA.Normalizar(IVADefault),
		Percepcion: in.Percepcion.Normalizar(PercepcionDefault),
		Descuento:  in.Descuento.Normalizar(DescuentoDefault),
	}
}
