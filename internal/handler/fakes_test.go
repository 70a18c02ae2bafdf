package handler

import (
	"context"
	"io"

	"github.com/weapub/sj-calculadora/internal/dto"
	"github.com/weapub/sj-calculadora/internal/service"
)

// fakeProveedorSvc records the last request and returns canned results.
type fakeProveedorSvc struct {
	list    []dto.ProveedorResponse
	one     *dto.ProveedorResponse
	err     error
	lastID  int64
	lastReq dto.ProveedorRequest
}

var _ service.ProveedorService = (*fakeProveedorSvc)(nil)

func (f *fakeProveedorSvc) Listar(context.Context) ([]dto.ProveedorResponse, error) {
	return f.list, f.err
}

func (f *fakeProveedorSvc) ObtenerPorID(_ context.Context, id int64) (*dto.ProveedorResponse, error) {
	f.lastID = id
	return f.one, f.err
}

func (f *fakeProveedorSvc) Crear(_ context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	p := req.Input().Normalizar()
	return &dto.ProveedorResponse{ID: 1, Nombre: p.Nombre, IVA: p.IVA, Percepcion: p.Percepcion, Descuento: p.Descuento}, nil
}

func (f *fakeProveedorSvc) Actualizar(_ context.Context, id int64, req dto.ProveedorRequest) error {
	f.lastID, f.lastReq = id, req
	return f.err
}

func (f *fakeProveedorSvc) Eliminar(_ context.Context, id int64) error {
	f.lastID = id
	return f.err
}

type fakeProductoSvc struct {
	list       []dto.ProductoResponse
	one        *dto.ProductoResponse
	err        error
	lastID     int64
	lastCodigo string
	lastFilter dto.ProductoFilter
	lastReq    dto.ProductoRequest
}

var _ service.ProductoService = (*fakeProductoSvc)(nil)

func (f *fakeProductoSvc) Listar(_ context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	f.lastFilter = filter
	return f.list, f.err
}

func (f *fakeProductoSvc) ObtenerPorCodigo(_ context.Context, codigo string) (*dto.ProductoResponse, error) {
	f.lastCodigo = codigo
	return f.one, f.err
}

func (f *fakeProductoSvc) Crear(_ context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	p := req.Input().Normalizar()
	return &dto.ProductoResponse{
		ID: 7, Codigo: p.Codigo, Nombre: p.Nombre, ProveedorID: p.ProveedorID,
		CostoNeto: p.CostoNeto, Tipo: p.Tipo, Margen: p.Margen, PrecioFinal: p.PrecioFinal,
	}, nil
}

func (f *fakeProductoSvc) Actualizar(_ context.Context, id int64, req dto.ProductoRequest) error {
	f.lastID, f.lastReq = id, req
	return f.err
}

func (f *fakeProductoSvc) Eliminar(_ context.Context, id int64) error {
	f.lastID = id
	return f.err
}

type fakeExportacionSvc struct {
	body       []byte
	err        error
	lastFiltro string
}

func (f *fakeExportacionSvc) ExportarProductos(_ context.Context, filtro string, w io.Writer) error {
	f.lastFiltro = filtro
	if f.err != nil {
		return f.err
	}
	_, err := w.Write(f.body)
	return err
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func strp(s string) *string { return &s }

func int64p(n int64) *int64 { return &n }

