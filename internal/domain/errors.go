package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInvalidPeriod        = errors.New("período inválido, se espera YYYY-MM")
	ErrInvalidWindow        = errors.New("ventana de meses inválida")
	ErrInvalidFilter        = errors.New("filtro de tesorería inválido")
	ErrInvalidDiscount      = errors.New("el descuento supera el monto bruto")
	ErrOrganizationNotFound = errors.New("organización no encontrada")
	ErrLedgerUnavailable    = errors.New("libro de hechos no disponible")
)
