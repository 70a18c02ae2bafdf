package service

import (
	"context"

	"github.com/weapub/sj-calculadora/internal/dto"
	"github.com/weapub/sj-calculadora/internal/model"
	"github.com/weapub/sj-calculadora/internal/repository"

	"github.com/rs/zerolog/log"
)

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	Crear(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ProductoRequest) error
	Eliminar(ctx context.Context, id int64) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func mapProducto(p model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:              p.ID,
		Codigo:          p.Codigo,
		Nombre:          p.Nombre,
		ProveedorID:     p.ProveedorID,
		CostoNeto:       p.CostoNeto,
		Tipo:            p.Tipo,
		Margen:          p.Margen,
		PrecioFinal:     p.PrecioFinal,
		ProveedorNombre: p.ProveedorNombre,
	}
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	list, err := s.repo.List(ctx, filter.Q)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapProducto(p))
	}
	return result, nil
}

func (s *productoService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	resp := mapProducto(*p)
	return &resp, nil
}

func (s *productoService) Crear(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.Create(ctx, req.Input())
	if err != nil {
		return nil, err
	}
	log.Info().Int64("producto_id", p.ID).Str("codigo", p.Codigo).Msg("producto creado")
	resp := mapProducto(*p)
	return &resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id int64, req dto.ProductoRequest) error {
	n, err := s.repo.Update(ctx, id, req.Input())
	if err != nil {
		return err
	}
	if n == 0 {
		log.Debug().Int64("producto_id", id).Msg("actualizar producto: id inexistente")
	}
	return nil
}

func (s *productoService) Eliminar(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Debug().Int64("producto_id", id).Msg("eliminar producto: id inexistente")
	}
	return nil
}
