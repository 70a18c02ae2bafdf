package service

import (
	"context"

	"github.com/weapub/sj-calculadora/internal/dto"
	"github.com/weapub/sj-calculadora/internal/model"
	"github.com/weapub/sj-calculadora/internal/repository"

	"github.com/rs/zerolog/log"
)

type ProveedorService interface {
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*dto.ProveedorResponse, error)
	Crear(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ProveedorRequest) error
	Eliminar(ctx context.Context, id int64) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func mapProveedor(p model.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:         p.ID,
		Nombre:     p.Nombre,
		IVA:        p.IVA,
		Percepcion: p.Percepcion,
		Descuento:  p.Descuento,
	}
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		result = append(result, mapProveedor(p))
	}
	return result, nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id int64) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapProveedor(*p)
	return &resp, nil
}

func (s *proveedorService) Crear(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.Create(ctx, req.Input())
	if err != nil {
		return nil, err
	}
	log.Info().Int64("proveedor_id", p.ID).Str("nombre", p.Nombre).Msg("proveedor creado")
	resp := mapProveedor(*p)
	return &resp, nil
}

// Actualizar replaces every field. An unknown id is not an error.
func (s *proveedorService) Actualizar(ctx context.Context, id int64, req dto.ProveedorRequest) error {
	n, err := s.repo.Update(ctx, id, req.Input())
	if err != nil {
		return err
	}
	if n == 0 {
		log.Debug().Int64("proveedor_id", id).Msg("actualizar proveedor: id inexistente")
	}
	return nil
}

// Eliminar deletes the supplier; its products remain with proveedor_id NULL.
func (s *proveedorService) Eliminar(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Debug().Int64("proveedor_id", id).Msg("eliminar proveedor: id inexistente")
		return nil
	}
	log.Info().Int64("proveedor_id", id).Msg("proveedor eliminado")
	return nil
}
