package dataprep

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ryuk2git/tuitiontier/pkg/core"
)

// FieldKind says how a raw value is turned into a number.
type FieldKind int

const (
	// KindNumeric values pass through; anything unparseable becomes Missing.
	KindNumeric FieldKind = iota
	// KindArea values are land areas, either "150m2" or a range like "100-200m2".
	KindArea
	// KindCategorical values are labels from a closed Vocabulary.
	KindCategorical
)

func (k FieldKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindArea:
		return "area"
	case KindCategorical:
		return "categorical"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// ParseFieldKind is the inverse of FieldKind.String.
func ParseFieldKind(s string) (FieldKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "numeric":
		return KindNumeric, nil
	case "area":
		return KindArea, nil
	case "categorical":
		return KindCategorical, nil
	}
	return 0, fmt.Errorf("unknown field kind %q", s)
}

// Field is one configured feature.
type Field struct {
	Name  string
	Kind  FieldKind
	Vocab *Vocabulary // only for KindCategorical
}

// Normalizer turns raw records into feature vectors for a fixed field order.
// It holds no mutable state and may be shared between goroutines.
type Normalizer struct {
	fields []Field
}

// NewNormalizer returns a Normalizer for fields. Categorical fields must carry a vocabulary.
func NewNormalizer(fields []Field) (*Normalizer, error) {
	for _, f := range fields {
		if f.Kind == KindCategorical && f.Vocab == nil {
			return nil, fmt.Errorf("categorical field %q has no vocabulary", f.Name)
		}
	}
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return &Normalizer{fields: cp}, nil
}

// Fields returns the field order used for every vector.
func (n *Normalizer) Fields() []Field { return n.fields }

// Normalize converts rec into a vector. Parse failures become core.Missing;
// an out-of-vocabulary categorical value fails the whole record with core.ErrSchemaViolation.
func (n *Normalizer) Normalize(rec core.Record) (core.Vector, error) {
	out := make(core.Vector, len(n.fields))
	for i, f := range n.fields {
		v, err := NormalizeValue(f, rec[f.Name])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// NormalizeValue converts a single raw value for field f.
func NormalizeValue(f Field, raw any) (float64, error) {
	switch f.Kind {
	case KindArea:
		v, err := ParseArea(raw)
		if err != nil {
			return core.Missing, nil
		}
		return v, nil
	case KindCategorical:
		if raw == nil {
			return core.Missing, nil
		}
		if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
			return core.Missing, nil
		}
		code, err := f.Vocab.Resolve(raw)
		if err != nil {
			return 0, core.NewFieldError(core.ErrSchemaViolation, f.Name, raw)
		}
		return float64(code), nil
	default:
		v, err := ParseNumeric(raw)
		if err != nil {
			return core.Missing, nil
		}
		return v, nil
	}
}

// ParseNumeric returns raw as a finite float64, or core.ErrParseFailure.
func ParseNumeric(raw any) (float64, error) {
	if s, ok := raw.(string); ok {
		return parseFloat(strings.TrimSpace(s))
	}
	if v, ok := toFloat(raw); ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %v", core.ErrParseFailure, raw)
}

// ParseArea accepts "150", "150m2", "150 m2" or "100-200m2" (midpoint, here 150).
// Anything else is core.ErrParseFailure.
func ParseArea(raw any) (float64, error) {
	s, ok := raw.(string)
	if !ok {
		return ParseNumeric(raw)
	}
	s = stripUnit(strings.Join(strings.Fields(s), ""))
	if v, err := parseFloat(s); err == nil {
		return v, nil
	}
	parts := strings.Split(s, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, fmt.Errorf("%w: area %q", core.ErrParseFailure, raw)
	}
	lo, err := parseFloat(parts[0])
	if err != nil {
		return 0, err
	}
	hi, err := parseFloat(parts[1])
	if err != nil {
		return 0, err
	}
	return (lo + hi) / 2, nil
}

var areaUnits = []string{"m²", "m2"}

func stripUnit(s string) string {
	lower := strings.ToLower(s)
	for _, u := range areaUnits {
		lower = strings.ReplaceAll(lower, u, "")
	}
	return lower
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", core.ErrParseFailure, s)
	}
	return v, nil
}

func toFloat(raw any) (float64, bool) {
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int8:
		v = float64(x)
	case int16:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint:
		v = float64(x)
	case uint8:
		v = float64(x)
	case uint16:
		v = float64(x)
	case uint32:
		v = float64(x)
	case uint64:
		v = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
