package models

import (
	"encoding/json"
	"math"
)

// Field is a presence-aware numeric slot. A Field is either a finite
// number or unknown; NaN and infinities never enter the model.
type Field struct {
	Value float64 `json:"value"`
	Known bool    `json:"known"`
}

// NewField returns a known Field, or an unknown one when v is NaN or infinite.
func NewField(v float64) Field {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Field{}
	}
	return Field{Value: v, Known: true}
}

// Unknown returns an unknown Field.
func Unknown() Field {
	return Field{}
}

// Positive reports whether the field is known and strictly positive.
func (f Field) Positive() bool {
	return f.Known && f.Value > 0
}

// Or returns the field's value when known, otherwise the fallback.
func (f Field) Or(fallback float64) float64 {
	if f.Known {
		return f.Value
	}
	return fallback
}

// MarshalJSON emits null for unknown fields so reports and logs never
// carry a stand-in zero.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Known {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON accepts null (unknown) or a number.
func (f *Field) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Field{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = NewField(v)
	return nil
}
