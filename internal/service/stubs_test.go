package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/weapub/sj-calculadora/internal/model"
	"github.com/weapub/sj-calculadora/internal/repository"
)

// ── In-memory store shared by both stub repositories ─────────────────────────
// Emulates the constraints PostgreSQL enforces: unique codigo, FK on
// proveedor_id with ON DELETE SET NULL.

type memStore struct {
	mu          sync.Mutex
	nextProv    int64
	nextProd    int64
	proveedores map[int64]model.Proveedor
	productos   map[int64]model.Producto
	failWith    error
}

func newMemStore() *memStore {
	return &memStore{
		proveedores: make(map[int64]model.Proveedor),
		productos:   make(map[int64]model.Producto),
	}
}

type stubProveedorRepo struct{ s *memStore }
type stubProductoRepo struct{ s *memStore }

var (
	_ repository.ProveedorRepository = (*stubProveedorRepo)(nil)
	_ repository.ProductoRepository  = (*stubProductoRepo)(nil)
)

func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	out := make([]model.Proveedor, 0, len(r.s.proveedores))
	for _, p := range r.s.proveedores {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id int64) (*model.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.proveedores[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *stubProveedorRepo) Create(_ context.Context, in model.ProveedorInput) (*model.Proveedor, error) {
	p := in.Normalizar()
	if p.Nombre == "" {
		return nil, repository.ErrNombreRequerido
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	r.s.nextProv++
	p.ID = r.s.nextProv
	r.s.proveedores[p.ID] = p
	return &p, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, id int64, in model.ProveedorInput) (int64, error) {
	p := in.Normalizar()
	if p.Nombre == "" {
		return 0, repository.ErrNombreRequerido
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.proveedores[id]; !ok {
		return 0, nil
	}
	p.ID = id
	r.s.proveedores[id] = p
	return 1, nil
}

func (r *stubProveedorRepo) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.proveedores[id]; !ok {
		return 0, nil
	}
	delete(r.s.proveedores, id)
	for pid, prod := range r.s.productos {
		if prod.ProveedorID != nil && *prod.ProveedorID == id {
			prod.ProveedorID = nil
			r.s.productos[pid] = prod
		}
	}
	return 1, nil
}

func (r *stubProveedorRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.proveedores)), nil
}

// conNombre fills the joined supplier name. Caller holds the lock.
func (s *memStore) conNombre(p model.Producto) model.Producto {
	p.ProveedorNombre = nil
	if p.ProveedorID != nil {
		if prov, ok := s.proveedores[*p.ProveedorID]; ok {
			nombre := prov.Nombre
			p.ProveedorNombre = &nombre
		}
	}
	return p
}

func (r *stubProductoRepo) List(_ context.Context, filtro string) ([]model.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	f := strings.ToLower(filtro)
	out := make([]model.Producto, 0)
	for _, p := range r.s.productos {
		if strings.TrimSpace(f) != "" && !strings.Contains(strings.ToLower(p.Codigo), f) && !strings.Contains(strings.ToLower(p.Nombre), f) {
			continue
		}
		out = append(out, r.s.conNombre(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.productos {
		if p.Codigo == codigo {
			out := r.s.conNombre(p)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubProductoRepo) check(p model.Producto, self int64) error {
	if p.Codigo == "" {
		return repository.ErrCodigoRequerido
	}
	if p.Nombre == "" {
		return repository.ErrNombreRequerido
	}
	for id, other := range r.s.productos {
		if id != self && other.Codigo == p.Codigo {
			return repository.ErrConflict
		}
	}
	if p.ProveedorID != nil {
		if _, ok := r.s.proveedores[*p.ProveedorID]; !ok {
			return repository.ErrProveedorInexistente
		}
	}
	return nil
}

func (r *stubProductoRepo) Create(_ context.Context, in model.ProductoInput) (*model.Producto, error) {
	p := in.Normalizar()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(p, 0); err != nil {
		return nil, err
	}
	r.s.nextProd++
	p.ID = r.s.nextProd
	r.s.productos[p.ID] = p
	out := r.s.conNombre(p)
	return &out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, id int64, in model.ProductoInput) (int64, error) {
	p := in.Normalizar()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(p, id); err != nil {
		return 0, err
	}
	if _, ok := r.s.productos[id]; !ok {
		return 0, nil
	}
	p.ID = id
	r.s.productos[id] = p
	return 1, nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.productos[id]; !ok {
		return 0, nil
	}
	delete(r.s.productos, id)
	return 1, nil
}

func (r *stubProductoRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.productos)), nil
}

var errStoreDown = errors.New("connection refused")

func buildServices() (ProveedorService, ProductoService, *memStore) {
	s := newMemStore()
	return NewProveedorService(&stubProveedorRepo{s}), NewProductoService(&stubProductoRepo{s}), s
}
