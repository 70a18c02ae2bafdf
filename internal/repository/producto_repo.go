package repository

import (
	"context"
	"strings"
	"time"

	"github.com/weapub/sj-calculadora/internal/metrics"
	"github.com/weapub/sj-calculadora/internal/model"

	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// so they can be unit tested against in-memory stubs.
type ProductoRepository interface {
	List(ctx context.Context, filtro string) ([]model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	Create(ctx context.Context, in model.ProductoInput) (*model.Producto, error)
	Update(ctx context.Context, id int64, in model.ProductoInput) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

// Rows created by older schema revisions may hold NULL in these columns.
const productoColumns = `p.id,
	COALESCE(p.codigo, '') AS codigo,
	p.nombre,
	p.proveedor_id,
	COALESCE(p.costo_neto, 0) AS costo_neto,
	p.tipo,
	COALESCE(p.margen, 0) AS margen,
	COALESCE(p.precio_final, 0) AS precio_final,
	pr.nombre AS proveedor_nombre`

func (r *productoRepo) conProveedor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("productos AS p").
		Select(productoColumns).
		Joins("LEFT JOIN proveedores AS pr ON pr.id = p.proveedor_id")
}

func (r *productoRepo) List(ctx context.Context, filtro string) ([]model.Producto, error) {
	defer metrics.TrackDBOperation("productos.list")(time.Now())

	q := r.conProveedor(ctx)
	// a blank filter lists everything; otherwise the raw text is matched
	if strings.TrimSpace(filtro) != "" {
		patron := "%" + escapeLike(filtro) + "%"
		q = q.Where("p.codigo ILIKE ? OR p.nombre ILIKE ?", patron, patron)
	}

	productos := make([]model.Producto, 0)
	if err := q.Order("p.id DESC").Scan(&productos).Error; err != nil {
		return nil, classify("listar productos", err)
	}
	return productos, nil
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	defer metrics.TrackDBOperation("productos.find")(time.Now())

	var productos []model.Producto
	err := r.conProveedor(ctx).Where("p.codigo = ?", codigo).Limit(1).Scan(&productos).Error
	if err != nil {
		return nil, classify("buscar producto", err)
	}
	if len(productos) == 0 {
		return nil, ErrNotFound
	}
	return &productos[0], nil
}

func (r *productoRepo) Create(ctx context.Context, in model.ProductoInput) (*model.Producto, error) {
	p, err := validarProducto(in)
	if err != nil {
		return nil, err
	}
	defer metrics.TrackDBOperation("productos.create")(time.Now())

	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, classify("crear producto", err)
	}
	if p.ProveedorID != nil {
		// same shape as FindByCodigo: the joined supplier name
		var nombres []string
		err := r.db.WithContext(ctx).Model(&model.Proveedor{}).
			Where("id = ?", *p.ProveedorID).Limit(1).Pluck("nombre", &nombres).Error
		if err != nil {
			return nil, classify("crear producto", err)
		}
		if len(nombres) > 0 {
			p.ProveedorNombre = &nombres[0]
		}
	}
	return &p, nil
}

func (r *productoRepo) Update(ctx context.Context, id int64, in model.ProductoInput) (int64, error) {
	p, err := validarProducto(in)
	if err != nil {
		return 0, err
	}
	defer metrics.TrackDBOperation("productos.update")(time.Now())

	res := r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Updates(map[string]interface{}{
		"codigo":       p.Codigo,
		"nombre":       p.Nombre,
		"proveedor_id": p.ProveedorID,
		"costo_neto":   p.CostoNeto,
		"tipo":         p.Tipo,
		"margen":       p.Margen,
		"precio_final": p.PrecioFinal,
	})
	if res.Error != nil {
		return 0, classify("actualizar producto", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *productoRepo) Delete(ctx context.Context, id int64) (int64, error) {
	defer metrics.TrackDBOperation("productos.delete")(time.Now())

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Producto{})
	if res.Error != nil {
		return 0, classify("eliminar producto", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *productoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Producto{}).Count(&n).Error; err != nil {
		return 0, classify("contar productos", err)
	}
	return n, nil
}

func validarProducto(in model.ProductoInput) (model.Producto, error) {
	p := in.Normalizar()
	if p.Codigo == "" {
		return p, ErrCodigoRequerido
	}
	if p.Nombre == "" {
		return p, ErrNombreRequerido
	}
	return p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE/ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
