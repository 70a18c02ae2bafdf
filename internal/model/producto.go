package model

import (
	"github.com/shopspring/decimal"
)

var (
	CostoNetoDefault   = decimal.Zero
	MargenDefault      = decimal.Zero
	PrecioFinalDefault = decimal.Zero
)

// Producto is a catalog item. PrecioFinal is computed by the caller and stored as-is.
// ProveedorNombre is a read-only projection filled by the LEFT JOIN on proveedores.
type Producto struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Codigo          string          `gorm:"uniqueIndex:uni_productos_codigo" json:"codigo"`
	Nombre          string          `gorm:"not null" json:"nombre"`
	ProveedorID     *int64          `gorm:"index" json:"proveedor_id"`
	CostoNeto       decimal.Decimal `gorm:"type:numeric" json:"costo_neto"`
	Tipo            *string         `json:"tipo"`
	Margen          decimal.Decimal `gorm:"type:numeric" json:"margen"`
	PrecioFinal     decimal.Decimal `gorm:"type:numeric" json:"precio_final"`
	ProveedorNombre *string         `gorm:"->;-:migration" json:"proveedor_nombre"`
}

func (Producto) TableName() string { return "productos" }

// ProductoInput is the raw write payload for create and full-replace update.
type ProductoInput struct {
	Codigo      string
	Nombre      string
	ProveedorID *int64
	CostoNeto   Numero
	Tipo        *string
	Margen      Numero
	PrecioFinal Numero
}

// Normalizar applies the same defaults on every write path.
// Absent ProveedorID and Tipo stay nil so they are stored as NULL.
func (in ProductoInput) Normalizar() Producto {
	p := Producto{
		Codigo:      NormalizarTexto(in.Codigo),
		Nombre:      NormalizarTexto(in.Nombre),
		ProveedorID: in.ProveedorID,
		CostoNeto:   in.CostoNeto.Normalizar(CostoNetoDefault),
		Margen:      in.Margen.Normalizar(MargenDefault),
		PrecioFinal: in.PrecioFinal.Normalizar(PrecioFinalDefault),
	}
	if in.Tipo != nil {
		if t := NormalizarTexto(*in.Tipo); t != "" {
			p.Tipo = &t
		}
	}
	return p
}
