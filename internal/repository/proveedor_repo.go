package repository

import (
	"context"
	"time"

	"github.com/weapub/sj-calculadora/internal/metrics"
	"github.com/weapub/sj-calculadora/internal/model"

	"gorm.io/gorm"
)

// ProveedorRepository is the data access contract for suppliers.
// Update and Delete report rows affected; zero rows is not an error.
type ProveedorRepository interface {
	List(ctx context.Context) ([]model.Proveedor, error)
	FindByID(ctx context.Context, id int64) (*model.Proveedor, error)
	Create(ctx context.Context, in model.ProveedorInput) (*model.Proveedor, error)
	Update(ctx context.Context, id int64, in model.ProveedorInput) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) List(ctx context.Context) ([]model.Proveedor, error) {
	defer metrics.TrackDBOperation("proveedores.list")(time.Now())

	proveedores := make([]model.Proveedor, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&proveedores).Error
	if err != nil {
		return nil, classify("listar proveedores", err)
	}
	return proveedores, nil
}

func (r *proveedorRepo) FindByID(ctx context.Context, id int64) (*model.Proveedor, error) {
	defer metrics.TrackDBOperation("proveedores.find")(time.Now())

	var p model.Proveedor
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, classify("buscar proveedor", err)
	}
	return &p, nil
}

func (r *proveedorRepo) Create(ctx context.Context, in model.ProveedorInput) (*model.Proveedor, error) {
	p := in.Normalizar()
	if p.Nombre == "" {
		return nil, ErrNombreRequerido
	}
	defer metrics.TrackDBOperation("proveedores.create")(time.Now())

	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, classify("crear proveedor", err)
	}
	return &p, nil
}

func (r *proveedorRepo) Update(ctx context.Context, id int64, in model.ProveedorInput) (int64, error) {
	p := in.Normalizar()
	if p.Nombre == "" {
		return 0, ErrNombreRequerido
	}
	defer metrics.TrackDBOperation("proveedores.update")(time.Now())

	res := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Updates(map[string]interface{}{
		"nombre":     p.Nombre,
		"iva":        p.IVA,
		"percepcion": p.Percepcion,
		"descuento":  p.Descuento,
	})
	if res.Error != nil {
		return 0, classify("actualizar proveedor", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the supplier. Products pointing at it are detached by the
// ON DELETE SET NULL foreign key.
func (r *proveedorRepo) Delete(ctx context.Context, id int64) (int64, error) {
	defer metrics.TrackDBOperation("proveedores.delete")(time.Now())

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Proveedor{})
	if res.Error != nil {
		return 0, classify("eliminar proveedor", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *proveedorRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Proveedor{}).Count(&n).Error; err != nil {
		return 0, classify("contar proveedores", err)
	}
	return n, nil
}
