package dataprep

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Term is one label of a closed vocabulary and its integer code.
type Term struct {
	Label string
	Code  int
}

// Vocabulary is a closed label-to-code table. Lookups never fall back to a default.
type Vocabulary struct {
	name   string
	terms  []Term
	byKey  map[string]int
	byCode map[int]string
}

// NewVocabulary builds a vocabulary, rejecting empty, duplicate (case-insensitive) labels
// and duplicate codes.
func NewVocabulary(name string, terms ...Term) (*Vocabulary, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("vocabulary %q: no terms", name)
	}
	v := &Vocabulary{
		name:   name,
		terms:  make([]Term, len(terms)),
		byKey:  make(map[string]int, len(terms)),
		byCode: make(map[int]string, len(terms)),
	}
	copy(v.terms, terms)
	for _, t := range terms {
		key := labelKey(t.Label)
		if key == "" {
			return nil, fmt.Errorf("vocabulary %q: empty label", name)
		}
		if _, dup := v.byKey[key]; dup {
			return nil, fmt.Errorf("vocabulary %q: duplicate label %q", name, t.Label)
		}
		if _, dup := v.byCode[t.Code]; dup {
			return nil, fmt.Errorf("vocabulary %q: duplicate code %d", name, t.Code)
		}
		v.byKey[key] = t.Code
		v.byCode[t.Code] = t.Label
	}
	return v, nil
}

// MustVocabulary is NewVocabulary for package-level tables; it panics on a malformed table.
func MustVocabulary(name string, terms ...Term) *Vocabulary {
	v, err := NewVocabulary(name, terms...)
	if err != nil {
		panic(err)
	}
	return v
}

// Name returns the vocabulary name.
func (v *Vocabulary) Name() string { return v.name }

// Terms returns the terms in declaration order.
func (v *Vocabulary) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// Code looks up a label. Surrounding whitespace and case are ignored.
func (v *Vocabulary) Code(label string) (int, error) {
	code, ok := v.byKey[labelKey(label)]
	if !ok {
		return 0, fmt.Errorf("%q is not a %s value", label, v.name)
	}
	return code, nil
}

// Label returns the label for code.
func (v *Vocabulary) Label(code int) (string, bool) {
	l, ok := v.byCode[code]
	return l, ok
}

// Resolve maps a raw value to a code. Strings are treated as labels first, then as
// numeric codes; numbers must be whole and equal to a defined code.
func (v *Vocabulary) Resolve(raw any) (int, error) {
	if s, ok := raw.(string); ok {
		if code, err := v.Code(s); err == nil {
			return code, nil
		}
		f, err := parseFloat(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%q is not a %s value", s, v.name)
		}
		return v.resolveCode(f)
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, fmt.Errorf("%v is not a %s value", raw, v.name)
	}
	return v.resolveCode(f)
}

func (v *Vocabulary) resolveCode(f float64) (int, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a %s code", f, v.name)
	}
	code := int(f)
	if _, ok := v.byCode[code]; !ok {
		return 0, fmt.Errorf("%d is not a %s code", code, v.name)
	}
	return code, nil
}

func labelKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Built-in closed vocabularies of the student form.
var (
	WallMaterial = MustVocabulary("wall_material",
		Term{"Bata", 0}, Term{"Kayu", 1}, Term{"Beton", 2}, Term{"Lainnya", 3})
	FloorMaterial = MustVocabulary("floor_material",
		Term{"Keramik", 0}, Term{"Kayu", 1}, Term{"Semen", 2}, Term{"Lainnya", 3})
	EducationLevel = MustVocabulary("education_level",
		Term{"Diploma", 1}, Term{"Sarjana", 2}, Term{"Magister", 3})
	ElectricitySource = MustVocabulary("electricity_source",
		Term{"PLN", 0}, Term{"Genset", 1}, Term{"Lainnya", 2})
)

var builtinVocabularies = map[string]*Vocabulary{
	WallMaterial.Name():      WallMaterial,
	FloorMaterial.Name():     FloorMaterial,
	EducationLevel.Name():    EducationLevel,
	ElectricitySource.Name(): ElectricitySource,
}

// LookupVocabulary returns a built-in vocabulary by name.
func LookupVocabulary(name string) (*Vocabulary, bool) {
	v, ok := builtinVocabularies[strings.TrimSpace(name)]
	return v, ok
}

// VocabularyNames lists the built-in vocabularies, sorted.
func VocabularyNames() []string {
	names := make([]string, 0, len(builtinVocabularies))
	for n := range builtinVocabularies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
