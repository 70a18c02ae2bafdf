package infra

import (
	"context"
	"fmt"

	"github.com/weapub/sj-calculadora/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// schemaLockKey serialises EnsureSchema across processes starting at the same time.
const schemaLockKey = 7_310_245

// schemaPatches are applied in order on every start. Each statement is
// idempotent so re-running on an up-to-date database is a no-op. The ALTERs
// bring tables created by the first revision (productos with a single
// "precio" column) up to the current shape.
var schemaPatches = []struct{ descr, sql string }{
	{"create proveedores", `
CREATE TABLE IF NOT EXISTS proveedores (
  id         SERIAL PRIMARY KEY,
  nombre     TEXT    NOT NULL,
  iva        NUMERIC NOT NULL DEFAULT 21,
  percepcion NUMERIC NOT NULL DEFAULT 0,
  descuento  NUMERIC NOT NULL DEFAULT 0
)`},
	{"create productos", `
CREATE TABLE IF NOT EXISTS productos (
  id           SERIAL PRIMARY KEY,
  codigo       TEXT,
  nombre       TEXT    NOT NULL,
  proveedor_id INTEGER,
  costo_neto   NUMERIC DEFAULT 0,
  tipo         TEXT,
  margen       NUMERIC DEFAULT 0,
  precio_final NUMERIC DEFAULT 0
)`},
	{"proveedores legacy columns", `
ALTER TABLE proveedores
  ADD COLUMN IF NOT EXISTS iva        NUMERIC DEFAULT 21,
  ADD COLUMN IF NOT EXISTS percepcion NUMERIC DEFAULT 0,
  ADD COLUMN IF NOT EXISTS descuento  NUMERIC DEFAULT 0`},
	{"productos legacy columns", `
ALTER TABLE productos
  ADD COLUMN IF NOT EXISTS codigo       TEXT,
  ADD COLUMN IF NOT EXISTS proveedor_id INTEGER,
  ADD COLUMN IF NOT EXISTS costo_neto   NUMERIC DEFAULT 0,
  ADD COLUMN IF NOT EXISTS tipo         TEXT,
  ADD COLUMN IF NOT EXISTS margen       NUMERIC DEFAULT 0,
  ADD COLUMN IF NOT EXISTS precio_final NUMERIC DEFAULT 0`},
	{"fk productos.proveedor_id → proveedores ON DELETE SET NULL", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint
                 WHERE conrelid = 'productos'::regclass
                   AND confrelid = 'proveedores'::regclass
                   AND contype = 'f') THEN
    ALTER TABLE productos
      ADD CONSTRAINT fk_productos_proveedor
      FOREIGN KEY (proveedor_id) REFERENCES proveedores(id) ON DELETE SET NULL;
  END IF;
END $$`},
	{"unique index productos.codigo",
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_productos_codigo ON productos (codigo)`},
	{"index productos.proveedor_id",
		`CREATE INDEX IF NOT EXISTS idx_productos_proveedor_id ON productos (proveedor_id)`},
}

// SchemaOptions controls what EnsureSchema does besides DDL.
type SchemaOptions struct {
	// SeedDemo loads example suppliers/products into empty tables.
	SeedDemo bool
}

// EnsureSchema creates or upgrades both tables and optionally seeds demo rows.
// Everything runs in one transaction under an advisory lock; any failure is
// returned and the caller must not start serving.
func EnsureSchema(ctx context.Context, db *gorm.DB, opts SchemaOptions) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", schemaLockKey).Error; err != nil {
			return fmt.Errorf("schema lock: %w", err)
		}
		for _, p := range schemaPatches {
			if err := tx.Exec(p.sql).Error; err != nil {
				return fmt.Errorf("patch %q: %w", p.descr, err)
			}
		}
		if !opts.SeedDemo {
			return nil
		}
		return seedDemo(tx)
	})
}

type seedProducto struct {
	producto model.Producto
	// index into demoProveedores; -1 leaves the product unassigned
	proveedor int
}

var demoProveedores = []model.Proveedor{
	{Nombre: "Distribuidora Norte", IVA: decimal.NewFromInt(21), Percepcion: decimal.NewFromInt(3), Descuento: decimal.NewFromInt(5)},
	{Nombre: "Lácteos del Valle", IVA: decimal.RequireFromString("10.5"), Percepcion: decimal.Zero, Descuento: decimal.NewFromInt(2)},
	{Nombre: "Almacén Mayorista San Juan", IVA: decimal.NewFromInt(21), Percepcion: decimal.RequireFromString("1.5"), Descuento: decimal.Zero},
}

func strPtr(s string) *string { return &s }

var demoProductos = []seedProducto{
	{model.Producto{Codigo: "7790001000017", Nombre: "Yerba mate 1kg", CostoNeto: decimal.NewFromInt(1800), Tipo: strPtr("unidad"), Margen: decimal.NewFromInt(35)}, 0},
	{model.Producto{Codigo: "7790001000024", Nombre: "Queso cremoso", CostoNeto: decimal.NewFromInt(5200), Tipo: strPtr("pesable"), Margen: decimal.NewFromInt(40)}, 1},
	{model.Producto{Codigo: "7790001000031", Nombre: "Dulce de leche 400g", CostoNeto: decimal.NewFromInt(1350), Tipo: strPtr("unidad"), Margen: decimal.NewFromInt(30)}, 1},
	{model.Producto{Codigo: "7790001000048", Nombre: "Aceite girasol 900ml", CostoNeto: decimal.NewFromInt(1600), Tipo: strPtr("unidad"), Margen: decimal.NewFromInt(25)}, 2},
}

// seedDemo inserts the demo rows into empty tables only. Product → supplier
// links use the ids returned by the inserts, or the existing suppliers read in
// id order when that table was already populated.
func seedDemo(tx *gorm.DB) error {
	var nProv int64
	if err := tx.Model(&model.Proveedor{}).Count(&nProv).Error; err != nil {
		return fmt.Errorf("count proveedores: %w", err)
	}

	var proveedorIDs []int64
	if nProv == 0 {
		for _, demo := range demoProveedores {
			p := demo
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seed proveedor %q: %w", p.Nombre, err)
			}
			proveedorIDs = append(proveedorIDs, p.ID)
		}
		log.Info().Int("proveedores", len(proveedorIDs)).Msg("proveedores de ejemplo cargados")
	} else {
		err := tx.Model(&model.Proveedor{}).Order("id ASC").Limit(len(demoProveedores)).Pluck("id", &proveedorIDs).Error
		if err != nil {
			return fmt.Errorf("read proveedores: %w", err)
		}
	}

	var nProd int64
	if err := tx.Model(&model.Producto{}).Count(&nProd).Error; err != nil {
		return fmt.Errorf("count productos: %w", err)
	}
	if nProd > 0 {
		return nil
	}

	for _, demo := range demoProductos {
		p := demo.producto
		if demo.proveedor >= 0 && demo.proveedor < len(proveedorIDs) {
			id := proveedorIDs[demo.proveedor]
			p.ProveedorID = &id
		}
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("seed producto %q: %w", p.Codigo, err)
		}
	}
	log.Info().Int("productos", len(demoProductos)).Msg("productos de ejemplo cargados")
	return nil
}
