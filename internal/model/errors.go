package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrProveedorNoEncontrado is returned when an operation targets an id that
// does not exist.
var ErrProveedorNoEncontrado = errors.New("Proveedor no encontrado")

// ValidationError lists schema violations keyed by JSON field path
// (e.g. "condicionesPago.metodoPago").
type ValidationError struct {
	Campos map[string]string
}

func (e *ValidationError) Error() string {
	campos := make([]string, 0, len(e.Campos))
	for c := range e.Campos {
		campos = append(campos, c)
	}
	sort.Strings(campos)

	partes := make([]string, 0, len(campos))
	for _, c := range campos {
		partes = append(partes, c+": "+e.Campos[c])
	}
	return "Validación de proveedor fallida: " + strings.Join(partes, ", ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(campo, mensaje string) *ValidationError {
	return &ValidationError{Campos: map[string]string{campo: mensaje}}
}

// ConflictError reports a write that would duplicate a unique field.
type ConflictError struct {
	Campo string
	Valor string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("clave duplicada: ya existe un proveedor con %s '%s'", e.Campo, e.Valor)
}
