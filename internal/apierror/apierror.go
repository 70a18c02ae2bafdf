// Package apierror holds the JSON envelopes for every 4xx/5xx response.
// Driver errors and stack traces never go through here; handlers log them
// and pass a fixed message instead.
package apierror

// Fixed client-facing messages shared by handlers and middleware.
const (
	MsgInterno           = "Error interno del servidor"
	MsgIDInvalido        = "ID invalido"
	MsgNoEncontrado      = "Recurso no encontrado"
	MsgCodigoDuplicado   = "Ya existe un producto con ese codigo"
	MsgProveedorFaltante = "El proveedor indicado no existe"
	MsgValidacion        = "Error de validacion"
)

// APIError is the canonical error envelope.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError lists offending fields by JSON name, mapped to the failed rule.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: MsgValidacion, Fields: fields}
}

// Campo is a shorthand for a single-field validation error.
func Campo(name, rule string) *ValidationError {
	return NewValidation(map[string]string{name: rule})
}
