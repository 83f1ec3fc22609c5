// Package clock abstrae la hora actual para que los cálculos por período
// no dependan de time.Now() global.
package clock

import "time"

// Clock entrega el instante actual.
type Clock interface {
	Now() time.Time
}

// System usa el reloj del sistema.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed devuelve siempre el mismo instante.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }
