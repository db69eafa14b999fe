// Package bincode normaliza los códigos de bin, que son la clave de unión entre
// componentes del layout y los datos de ocupación.
package bincode

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize recorta espacios, pliega caracteres de ancho completo (teclados IME CJK) a su
// forma estrecha y pasa a mayúsculas. "ａ－０１ " -> "A-01".
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(width.Fold.String(code)))
}

// NormalizeAll normaliza una lista conservando el orden, descartando vacíos y duplicados.
func NormalizeAll(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		n := Normalize(c)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
