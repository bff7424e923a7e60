package pipeline

import (
	"fmt"
	"io"

	"github.com/ryuk2git/tuitiontier/pkg/dataprep"
	"gopkg.in/yaml.v3"
)

// Schema describes the ordered feature set used for training and inference.
type Schema struct {
	Fields []dataprep.Field
}

// DefaultSchema is the student-form feature set.
func DefaultSchema() Schema {
	return Schema{Fields: []dataprep.Field{
		{Name: "penghasilan_ayah", Kind: dataprep.KindNumeric},
		{Name: "penghasilan_ibu", Kind: dataprep.KindNumeric},
		{Name: "daya_listrik", Kind: dataprep.KindNumeric},
		{Name: "jumlah_tanggungan", Kind: dataprep.KindNumeric},
		{Name: "luas_tanah", Kind: dataprep.KindArea},
		{Name: "jarak_pusat_kota", Kind: dataprep.KindNumeric},
		{Name: "bahan_tembok", Kind: dataprep.KindCategorical, Vocab: dataprep.WallMaterial},
		{Name: "bahan_lantai", Kind: dataprep.KindCategorical, Vocab: dataprep.FloorMaterial},
		{Name: "id_pekerjaan_ayah", Kind: dataprep.KindNumeric},
		{Name: "id_pekerjaan_ibu", Kind: dataprep.KindNumeric},
		{Name: "jenjang", Kind: dataprep.KindCategorical, Vocab: dataprep.EducationLevel},
		{Name: "prodi", Kind: dataprep.KindNumeric},
		{Name: "sumber_listrik", Kind: dataprep.KindCategorical, Vocab: dataprep.ElectricitySource},
	}}
}

// Names returns the feature names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Restrict keeps the features present in columns, preserving schema order,
// and reports the ones that were dropped.
func (s Schema) Restrict(columns []string) (Schema, []string) {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	var out Schema
	var dropped []string
	for _, f := range s.Fields {
		if _, ok := present[f.Name]; ok {
			out.Fields = append(out.Fields, f)
		} else {
			dropped = append(dropped, f.Name)
		}
	}
	return out, dropped
}

// Normalizer returns a normalizer for this schema.
func (s Schema) Normalizer() (*dataprep.Normalizer, error) {
	return dataprep.NewNormalizer(s.Fields)
}

type schemaFile struct {
	Features []struct {
		Name       string `yaml:"name"`
		Kind       string `yaml:"kind"`
		Vocabulary string `yaml:"vocabulary"`
	} `yaml:"features"`
}

// LoadSchema reads a YAML feature list:
//
//	features:
//	  - name: luas_tanah
//	    kind: area
//	  - name: bahan_tembok
//	    kind: categorical
//	    vocabulary: wall_material
//
// Vocabularies must name a built-in closed vocabulary.
func LoadSchema(r io.Reader) (Schema, error) {
	var file schemaFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return Schema{}, fmt.Errorf("decode schema: %w", err)
	}
	if len(file.Features) == 0 {
		return Schema{}, fmt.Errorf("schema has no features")
	}
	seen := make(map[string]struct{}, len(file.Features))
	var s Schema
	for i, f := range file.Features {
		if f.Name == "" {
			return Schema{}, fmt.Errorf("feature %d: missing name", i)
		}
		if _, dup := seen[f.Name]; dup {
			return Schema{}, fmt.Errorf("feature %q declared twice", f.Name)
		}
		seen[f.Name] = struct{}{}
		kind, err := dataprep.ParseFieldKind(f.Kind)
		if err != nil {
			return Schema{}, fmt.Errorf("feature %q: %w", f.Name, err)
		}
		field := dataprep.Field{Name: f.Name, Kind: kind}
		if kind == dataprep.KindCategorical {
			v, ok := dataprep.LookupVocabulary(f.Vocabulary)
			if !ok {
				return Schema{}, fmt.Errorf("feature %q: unknown vocabulary %q (have %v)", f.Name, f.Vocabulary, dataprep.VocabularyNames())
			}
			field.Vocab = v
		} else if f.Vocabulary != "" {
			return Schema{}, fmt.Errorf("feature %q: vocabulary only applies to categorical features", f.Name)
		}
		s.Fields = append(s.Fields, field)
	}
	return s, nil
}
