package domain

import (
	"bytes"
	"encoding/json"
)

// Number is a JSON number that never fails to decode. Anything that is not
// a JSON number (missing, null, string, bool...) leaves Valid unset so the
// calculator can report which field is wrong instead of a generic decode
// error.
type Number struct {
	Value float64
	Valid bool
}

// NumberOf returns a present Number.
func NumberOf(v float64) Number {
	return Number{Value: v, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	// Quoted numbers fail here and count as absent.
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	n.Value = v
	n.Valid = true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// PolygonSpec is the calculator input as received from a caller.
type PolygonSpec struct {
	NumSides   Number `json:"numSides"`
	SideLength Number `json:"sideLength"`
	Unit       string `json:"unit"`
}

// UnmarshalJSON decodes a unit that is not a JSON string as missing, the
// same way Number treats non-numbers.
func (p *PolygonSpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		NumSides   Number          `json:"numSides"`
		SideLength Number          `json:"sideLength"`
		Unit       json.RawMessage `json:"unit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var unit string
	if len(raw.Unit) > 0 {
		if err := json.Unmarshal(raw.Unit, &unit); err != nil {
			unit = ""
		}
	}

	*p = PolygonSpec{
		NumSides:   raw.NumSides,
		SideLength: raw.SideLength,
		Unit:       unit,
	}
	return nil
}

// NewPolygonSpec builds a spec with both numeric fields present.
func NewPolygonSpec(numSides, sideLength float64, unit string) PolygonSpec {
	return PolygonSpec{
		NumSides:   NumberOf(numSides),
		SideLength: NumberOf(sideLength),
		Unit:       unit,
	}
}

type PolygonResult struct {
	Area      float64 `json:"area"`
	Perimeter float64 `json:"perimeter"`
	Unit      string  `json:"unit"`
}

// Unit is a display-only length tag offered by the form.
type Unit struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// Units lists the tags the form offers, default first.
var Units = []Unit{
	{Tag: "cm", Label: "Centimeters"},
	{Tag: "m", Label: "Meters"},
	{Tag: "in", Label: "Inches"},
}
