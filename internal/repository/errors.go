package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by single-record lookups that match nothing.
	ErrNotFound = errors.New("registro no encontrado")
	// ErrConflict is returned when a unique constraint rejects the write (e.g. duplicate codigo).
	ErrConflict = errors.New("ya existe un registro con esa clave")
	// ErrProveedorInexistente is returned when proveedor_id references no supplier.
	ErrProveedorInexistente = errors.New("el proveedor indicado no existe")
	ErrNombreRequerido      = errors.New("el nombre es obligatorio")
	ErrCodigoRequerido      = errors.New("el codigo es obligatorio")
)

// PostgreSQL SQLSTATE codes surfaced when TranslateError is off or the
// dialector does not know the code.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// StorageError wraps any store failure that is not a classified constraint violation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// classify maps a gorm/pgx error onto the repository error taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, ErrProveedorInexistente)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrConflict)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrProveedorInexistente)
		}
	}
	return &StorageError{Op: op, Err: err}
}
