package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// money and percentages travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Numero is a leniently parsed numeric input. It accepts JSON numbers and
// numeric strings ("21", "10,5", " 3.75 "). Anything else (null, booleans,
// objects, garbage text) leaves it unset instead of failing the request.
type Numero struct {
	valor  decimal.Decimal
	valido bool
}

// NumeroDe wraps an already parsed value.
func NumeroDe(d decimal.Decimal) Numero {
	return Numero{valor: d, valido: true}
}

// ParseNumero parses s with the same rules used for JSON input.
func ParseNumero(s string) Numero {
	s = strings.TrimSpace(s)
	if s == "" {
		return Numero{}
	}
	// single decimal comma, as typed in es-AR locales
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Numero{}
	}
	return NumeroDe(d)
}

// Valor reports the parsed value and whether one was present.
func (n Numero) Valor() (decimal.Decimal, bool) {
	return n.valor, n.valido
}

// Normalizar returns the parsed value, or def when it is absent, unparsable or negative.
func (n Numero) Normalizar(def decimal.Decimal) decimal.Decimal {
	if !n.valido || n.valor.IsNegative() {
		return def
	}
	return n.valor
}

func (n *Numero) UnmarshalJSON(b []byte) error {
	*n = Numero{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		*n = ParseNumero(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*n = ParseNumero(string(b))
	}
	return nil
}

func (n Numero) MarshalJSON() ([]byte, error) {
	if !n.valido {
		return []byte("null"), nil
	}
	return []byte(n.valor.String()), nil
}

// NormalizarTexto trims surrounding whitespace.
func NormalizarTexto(s string) string {
	return strings.TrimSpace(s)
}
