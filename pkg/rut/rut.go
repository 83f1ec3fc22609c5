// Package rut valida y formatea el RUT chileno (Rol Único Tributario).
package rut

import (
	"fmt"
	"strings"
	"unicode"
)

// Normalize deja solo dígitos y el dígito verificador en mayúscula: "76.123.456-0" → "761234560".
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteByte('K')
		}
	}
	return b.String()
}

// ComputeCheckDigit calcula el dígito verificador (módulo 11, pesos 2..7 desde la derecha).
func ComputeCheckDigit(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("rut: cuerpo vacío")
	}
	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("rut: carácter inválido %q", c)
		}
		sum += int(c-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + r), nil
	}
}

// Validate acepta "76.123.456-0", "76123456-0" o "761234560".
func Validate(s string) error {
	n := Normalize(s)
	if len(n) < 2 {
		return fmt.Errorf("rut: %q es demasiado corto", s)
	}
	body, dv := n[:len(n)-1], n[len(n)-1]
	if strings.Contains(body, "K") {
		return fmt.Errorf("rut: %q tiene K fuera del dígito verificador", s)
	}
	expected, err := ComputeCheckDigit(body)
	if err != nil {
		return err
	}
	if dv != expected {
		return fmt.Errorf("rut: dígito verificador inválido: esperado %c, recibido %c", expected, dv)
	}
	return nil
}

// Format valida y devuelve el RUT con puntos y guion: "76.123.456-0".
func Format(s string) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	n := Normalize(s)
	body, dv := n[:len(n)-1], n[len(n)-1:]

	var b strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String() + "-" + dv, nil
}
