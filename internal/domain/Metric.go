package domain

import (
	"bytes"
	"encoding/json"
)

// Metric is a derived scalar that is either a numeric value or explicitly
// undefined. Division by zero, a missing boundary row or a failed coercion
// all resolve to the undefined state instead of an error, and dependent
// metrics propagate it. An undefined Metric marshals to JSON null; the
// em-dash placeholder is applied at the presentation boundary.
type Metric struct {
	value   float64
	defined bool
}

// MetricOf returns a defined metric holding v.
func MetricOf(v float64) Metric {
	return Metric{value: v, defined: true}
}

// UndefinedMetric returns the undefined marker.
func UndefinedMetric() Metric {
	return Metric{}
}

// Defined reports whether the metric holds a value.
func (m Metric) Defined() bool {
	return m.defined
}

// Value returns the numeric value. It is 0 when the metric is undefined;
// callers that need to distinguish should use Float64.
func (m Metric) Value() float64 {
	return m.value
}

// Float64 returns the value and whether it is defined.
func (m Metric) Float64() (float64, bool) {
	return m.value, m.defined
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Metric{}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*m = MetricOf(v)
	return nil
}
