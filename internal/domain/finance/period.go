// Package finance reúne las reglas de dominio del motor de conciliación:
// calendario de negocio (meses en la zona horaria de la empresa), redondeo
// monetario y la política de redondeo de pagos en efectivo.
package finance

import (
	"fmt"
	"regexp"
	"time"
	_ "time/tzdata" // zona del negocio disponible aunque el contenedor no traiga tzdata

	"github.com/jhoicas/pyme-finanzas/internal/domain"
)

// DefaultTimezone zona horaria del negocio.
const DefaultTimezone = "America/Santiago"

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Period mes calendario en la zona del negocio. Start y End son inclusivos.
type Period struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// Key devuelve la clave YYYY-MM del período.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func (p Period) Label() string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[p.Month-1], p.Year)
}

// Calendar calcula límites de mes en una zona horaria fija.
type Calendar struct {
	loc *time.Location
}

// NewCalendar carga la zona horaria indicada (vacío = DefaultTimezone).
func NewCalendar(timezone string) (*Calendar, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("calendario: zona horaria %q: %w", timezone, err)
	}
	return &Calendar{loc: loc}, nil
}

// Location zona horaria del calendario.
func (c *Calendar) Location() *time.Location { return c.loc }

// Month construye el período year-month. Acepta meses fuera de rango y los normaliza.
func (c *Calendar) Month(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, c.loc)
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, c.loc)
	return Period{
		Year:  start.Year(),
		Month: start.Month(),
		Start: start,
		End:   next.Add(-time.Nanosecond),
	}
}

// Current devuelve el mes que contiene now, visto en la zona del negocio.
func (c *Calendar) Current(now time.Time) Period {
	local := now.In(c.loc)
	return c.Month(local.Year(), local.Month())
}

// Parse interpreta una clave YYYY-MM. Devuelve domain.ErrInvalidPeriod si no es válida.
func (c *Calendar) Parse(key string) (Period, error) {
	if !monthKeyPattern.MatchString(key) {
		return Period{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, key)
	}
	t, err := time.ParseInLocation("2006-01", key, c.loc)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, key)
	}
	return c.Month(t.Year(), t.Month()), nil
}

// Resolve devuelve el período pedido o, si key está vacío, el mes en curso.
func (c *Calendar) Resolve(key string, now time.Time) (Period, error) {
	if key == "" {
		return c.Current(now), nil
	}
	return c.Parse(key)
}

// Trailing devuelve los n meses que terminan en el mes de now, del más antiguo al más reciente.
func (c *Calendar) Trailing(now time.Time, n int) []Period {
	if n <= 0 {
		return nil
	}
	cur := c.Current(now)
	out := make([]Period, n)
	for i := 0; i < n; i++ {
		out[i] = c.Month(cur.Year, cur.Month-time.Month(n-1-i))
	}
	return out
}

const dateOnlyLayout = "2006-01-02"

var localLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", dateOnlyLayout}

// ParseInstant interpreta un instante RFC3339 o una fecha/hora sin zona, que se
// toma como hora local del negocio.
func (c *Calendar) ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
}

// ParseRangeEnd interpreta el límite superior inclusivo de un rango. Una fecha sola
// cubre el día completo y termina en su último nanosegundo local; el resto se lee
// igual que en ParseInstant.
func (c *Calendar) ParseRangeEnd(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateOnlyLayout, s, c.loc); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, c.loc).Add(-time.Nanosecond), nil
	}
	return c.ParseInstant(s)
}
