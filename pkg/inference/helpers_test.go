package inference

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"github.com/ryuk2git/tuitiontier/pkg/data"
	"github.com/ryuk2git/tuitiontier/pkg/logging"
	"github.com/ryuk2git/tuitiontier/pkg/pipeline"
)

// lowRecord and highRecord describe two clearly separated households.
func lowRecord(i int) core.Record {
	return core.Record{
		"penghasilan_ayah":  fmt.Sprint(1000000 + i*25000),
		"penghasilan_ibu":   fmt.Sprint(500000 + i*10000),
		"daya_listrik":      "450",
		"jumlah_tanggungan": fmt.Sprint(4 + i%3),
		"luas_tanah":        fmt.Sprintf("%d-%dm2", 40+i, 60+i),
		"jarak_pusat_kota":  fmt.Sprint(25 + i),
		"bahan_tembok":      "Kayu",
		"bahan_lantai":      "Semen",
		"id_pekerjaan_ayah": "3",
		"id_pekerjaan_ibu":  "4",
		"jenjang":           "Diploma",
		"prodi":             fmt.Sprint(10 + i%3),
		"sumber_listrik":    "Genset",
	}
}

func highRecord(i int) core.Record {
	return core.Record{
		"penghasilan_ayah":  fmt.Sprint(15000000 + i*250000),
		"penghasilan_ibu":   fmt.Sprint(9000000 + i*100000),
		"daya_listrik":      "2200",
		"jumlah_tanggungan": fmt.Sprint(1 + i%2),
		"luas_tanah":        fmt.Sprintf("%dm2", 300+10*i),
		"jarak_pusat_kota":  fmt.Sprint(2 + i%3),
		"bahan_tembok":      "Beton",
		"bahan_lantai":      "Keramik",
		"id_pekerjaan_ayah": "1",
		"id_pekerjaan_ibu":  "2",
		"jenjang":           "Magister",
		"prodi":             fmt.Sprint(10 + i%3),
		"sumber_listrik":    "PLN",
	}
}

// studentDataset has n low rows followed by n high rows.
func studentDataset(n int) *data.Dataset {
	ds := &data.Dataset{Columns: pipeline.DefaultSchema().Names()}
	for i := 0; i < n; i++ {
		ds.Rows = append(ds.Rows, lowRecord(i))
	}
	for i := 0; i < n; i++ {
		ds.Rows = append(ds.Rows, highRecord(i))
	}
	return ds
}

func fit(t *testing.T, ds *data.Dataset) *Artifacts {
	t.Helper()
	art, err := Train(ds, pipeline.DefaultSchema(), DefaultOptions(), logging.Nop())
	require.NoError(t, err)
	return art
}

func newEngine(t *testing.T, art *Artifacts, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(art, opts...)
	require.NoError(t, err)
	return e
}
