// Package sanitize neutraliza marcado HTML en texto libre antes de persistirlo.
package sanitize

import (
	"html"
	"strings"
)

// Text recorta espacios y escapa &, <, >, " y ' para que el texto no pueda
// interpretarse como contenido activo al mostrarse.
// Es idempotente: un texto ya escapado (leído de la API y reenviado) no cambia.
func Text(s string) string {
	return html.EscapeString(html.UnescapeString(strings.TrimSpace(s)))
}
