package service

import (
	"context"
	"fmt"
	"io"

	"github.com/weapub/sj-calculadora/internal/repository"

	"github.com/xuri/excelize/v2"
)

const hojaPrecios = "Precios"

var encabezadoPrecios = []interface{}{
	"Código", "Nombre", "Proveedor", "Tipo", "Costo neto", "Margen %", "Precio final",
}

// ExportacionService renders the product catalog as an XLSX price list.
type ExportacionService interface {
	ExportarProductos(ctx context.Context, filtro string, w io.Writer) error
}

type exportacionService struct {
	productos repository.ProductoRepository
}

func NewExportacionService(productos repository.ProductoRepository) ExportacionService {
	return &exportacionService{productos: productos}
}

// ExportarProductos writes one row per product, in the same order as GET /productos.
func (s *exportacionService) ExportarProductos(ctx context.Context, filtro string, w io.Writer) error {
	list, err := s.productos.List(ctx, filtro)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaPrecios); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetSheetRow(hojaPrecios, "A1", &encabezadoPrecios); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	for i, p := range list {
		proveedor, tipo := "", ""
		if p.ProveedorNombre != nil {
			proveedor = *p.ProveedorNombre
		}
		if p.Tipo != nil {
			tipo = *p.Tipo
		}
		row := []interface{}{
			p.Codigo,
			p.Nombre,
			proveedor,
			tipo,
			p.CostoNeto.InexactFloat64(),
			p.Margen.InexactFloat64(),
			p.PrecioFinal.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetSheetRow(hojaPrecios, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}

	return f.Write(w)
}
