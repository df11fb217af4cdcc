package signal

import "math"

// Value is a scalar market observation that may be unavailable. Missing
// data is modeled as a value, never as NaN or an error, so that a gap in
// one input cannot poison downstream arithmetic silently.
type Value struct {
	v  float64
	ok bool
}

// Available wraps a concrete observation. NaN and Inf inputs collapse to
// Unavailable so they can never leak into scoring.
func Available(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// Unavailable is the explicit missing-data marker.
func Unavailable() Value {
	return Value{}
}

// Ok reports whether the observation exists.
func (v Value) Ok() bool {
	return v.ok
}

// Float returns the observation and whether it exists.
func (v Value) Float() (float64, bool) {
	return v.v, v.ok
}

// Or returns the observation, or def when unavailable.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.v
}

// Pct computes the percentage return (a/b - 1) * 100. Unavailable when
// either operand is missing or the baseline is zero.
func Pct(a, b Value) Value {
	av, aok := a.Float()
	bv, bok := b.Float()
	if !aok || !bok || bv == 0 {
		return Unavailable()
	}
	return Available((av/bv - 1.0) * 100.0)
}

// Diff computes a - b, unavailable when either operand is missing.
func Diff(a, b Value) Value {
	av, aok := a.Float()
	bv, bok := b.Float()
	if !aok || !bok {
		return Unavailable()
	}
	return Available(av - bv)
}
