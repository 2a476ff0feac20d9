package handler

import "strings"

// normalizeEstado maps a status path segment ("activo", " Inactivo ") to its
// stored form.
func normalizeEstado(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalizeEstadoEntrega also accepts the URL-friendly hyphenated spelling,
// so "en-tiempo" matches EN_TIEMPO.
func normalizeEstadoEntrega(s string) string {
	return strings.ReplaceAll(normalizeEstado(s), "-", "_")
}
