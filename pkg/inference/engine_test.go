package inference

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"github.com/ryuk2git/tuitiontier/pkg/tier"
)

func TestEngine_ResolvesBothTiers(t *testing.T) {
	art := fit(t, studentDataset(10))
	e := newEngine(t, art)

	low, err := e.Infer(lowRecord(3))
	require.NoError(t, err)
	high, err := e.Infer(highRecord(3))
	require.NoError(t, err)

	assert.NotEqual(t, tier.Unresolved, low)
	assert.NotEqual(t, tier.Unresolved, high)
	assert.NotEqual(t, low, high)
	assert.Equal(t, tier.Resolve(art.Labels[0]), low)
	assert.Equal(t, tier.Resolve(art.Labels[10]), high)
}

func TestEngine_TrainingRowsKeepTheirCluster(t *testing.T) {
	ds := studentDataset(10)
	art := fit(t, ds)
	e := newEngine(t, art)

	for i, r := range ds.Rows {
		p, err := e.Predict(r)
		require.NoError(t, err)
		assert.Equal(t, art.Labels[i], p.Cluster, "row %d", i)
		assert.Equal(t, tier.Resolve(p.Cluster), p.Tier)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	e := newEngine(t, fit(t, studentDataset(6)))
	rec := highRecord(2)
	first, err := e.Predict(rec)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.Predict(rec)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEngine_SchemaViolation(t *testing.T) {
	e := newEngine(t, fit(t, studentDataset(6)))
	rec := lowRecord(1)
	rec["jenjang"] = "Doktor"

	p, err := e.Predict(rec)
	require.ErrorIs(t, err, core.ErrSchemaViolation)
	assert.True(t, IsRejection(err))
	assert.Equal(t, tier.Unresolved, p.Tier)
	assert.Equal(t, -1, p.Cluster)

	var fe *core.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "jenjang", fe.Field)
}

func TestEngine_CompletenessPolicy(t *testing.T) {
	art := fit(t, studentDataset(6))
	strict := newEngine(t, art)
	lenient := newEngine(t, art, WithPolicy(PolicyLenient))
	assert.Equal(t, PolicyStrict, strict.Policy())
	assert.Equal(t, PolicyLenient, lenient.Policy())

	partial := highRecord(1)
	partial["luas_tanah"] = "luas sekali"
	delete(partial, "prodi")

	_, err := strict.Infer(partial)
	require.ErrorIs(t, err, core.ErrIncompleteInput)
	assert.Contains(t, err.Error(), "luas_tanah")
	assert.Contains(t, err.Error(), "prodi")

	got, err := lenient.Infer(partial)
	require.NoError(t, err)
	assert.NotEqual(t, tier.Unresolved, got)

	empty := core.Record{"penghasilan_ayah": "", "bahan_tembok": nil}
	for _, e := range []*Engine{strict, lenient} {
		_, err := e.Infer(empty)
		assert.ErrorIs(t, err, core.ErrIncompleteInput, e.Policy().String())
	}
}

func TestEngine_InferBatch(t *testing.T) {
	e := newEngine(t, fit(t, studentDataset(6)))
	bad := lowRecord(0)
	bad["sumber_listrik"] = "Surya"

	res := e.InferBatch([]core.Record{lowRecord(1), bad, highRecord(1)})
	require.Len(t, res, 3)
	assert.NoError(t, res[0].Err)
	assert.ErrorIs(t, res[1].Err, core.ErrSchemaViolation)
	assert.Equal(t, tier.Unresolved, res[1].Tier)
	assert.NoError(t, res[2].Err)
	assert.NotEqual(t, res[0].Tier, res[2].Tier)
}

func TestEngine_Concurrent(t *testing.T) {
	e := newEngine(t, fit(t, studentDataset(8)))
	want, err := e.Infer(lowRecord(4))
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]tier.Tier, 32)
	errs := make([]error, 32)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = e.Infer(lowRecord(4))
		}(i)
	}
	wg.Wait()
	for i := range got {
		require.NoError(t, errs[i])
		assert.Equal(t, want, got[i])
	}
}

func TestNewEngine_RequiresArtifacts(t *testing.T) {
	_, err := NewEngine(nil)
	assert.ErrorIs(t, err, core.ErrNotFitted)
	_, err = NewEngine(&Artifacts{})
	assert.ErrorIs(t, err, core.ErrNotFitted)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"strict", PolicyStrict, false},
		{" Lenient ", PolicyLenient, false},
		{"loose", PolicyStrict, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "Policy(7)", Policy(7).String())
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(core.ErrIncompleteInput))
	assert.False(t, IsRejection(core.ErrNotFitted))
	assert.Equal(t, "error", outcome(core.ErrNotFitted))
	assert.Equal(t, "incomplete_input", outcome(core.ErrIncompleteInput))
}
