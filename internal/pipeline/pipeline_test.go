package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enterstudio/location-normalizer/internal/domain"
	"github.com/enterstudio/location-normalizer/internal/observability"
	"github.com/enterstudio/location-normalizer/internal/pipeline"
)

// --- mocks ---

type mockExtractor struct {
	batches [][]domain.RawRecord
	index   atomic.Int64
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.RawRecord, error) {
	i := int(m.index.Add(1) - 1)
	if i >= len(m.batches) {
		// block until context cancelled to simulate waiting for messages
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.batches[i], nil
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawRecord) (domain.EntityRecord, error) {
	if m.err != nil {
		return domain.EntityRecord{}, m.err
	}
	return domain.EntityRecord{Kind: domain.KindEvent, Key: string(raw.Key), RawPayload: raw.Value}, nil
}

type mockLoader struct {
	loaded []domain.EntityRecord
	err    error
}

func (m *mockLoader) LoadBatch(_ context.Context, records []domain.EntityRecord) error {
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, records...)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	raw := makeRawRecord(t, "event", "2026ilch")

	ext := &mockExtractor{batches: [][]domain.RawRecord{{raw}}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 20)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	require.Len(t, ldr.loaded, 1)
	assert.Equal(t, "2026ilch", ldr.loaded[0].Key)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{} // no batches, will block
	tfm := &mockTransformer{}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
}

func TestPipeline_Run_TransformErrorSkipsAndCommits(t *testing.T) {
	commits := 0
	raw := makeRawRecord(t, "event", "2026bad")
	raw.Commit = func(_ context.Context) error {
		commits++
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawRecord{{raw}}}
	tfm := &mockTransformer{err: errors.New("bad data")}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 20)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
	// Poison messages are committed so they do not wedge the partition.
	assert.Equal(t, 1, commits)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	commitCalled := false
	raw := makeRawRecord(t, "team", "frc254")
	raw.Topic = "raw-entity-records"
	raw.Commit = func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawRecord{{raw}}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 20)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, commitCalled)
}

func TestPipeline_Run_LoadErrorDoesNotMarkReady(t *testing.T) {
	raw := makeRawRecord(t, "event", "2026ilch")

	ext := &mockExtractor{batches: [][]domain.RawRecord{{raw}}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{err: errors.New("broker unavailable")}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 20)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestRecordTransformer_Transform(t *testing.T) {
	frozen := time.Date(2026, time.March, 14, 15, 10, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() {
		domain.SetClock(nil)
	})

	raw := makeRawRecord(t, "event", "2026ilch")

	tfm := pipeline.NewTransformer(nil, nil, slog.Default(), observability.NewMetricsForTesting())
	rec, err := tfm.Transform(context.Background(), raw)
	require.NoError(t, err)

	type recordSummary struct {
		Kind domain.EntityKind
		Key  string
	}
	expected := recordSummary{Kind: domain.KindEvent, Key: "2026ilch"}
	actual := recordSummary{Kind: rec.Kind, Key: rec.Key}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, rec.ProcessedAt.Equal(frozen))
}

func TestRecordTransformer_Transform_Invalid(t *testing.T) {
	tfm := pipeline.NewTransformer(nil, nil, slog.Default(), observability.NewMetricsForTesting())
	_, err := tfm.Transform(context.Background(), domain.RawRecord{Value: []byte("not json")})
	assert.Error(t, err)
}

// --- helpers ---

func makeRawRecord(t *testing.T, kind, key string) domain.RawRecord {
	t.Helper()
	data, err := json.Marshal(map[string]string{
		"kind":     kind,
		"key":      key,
		"city":     "Springfield",
		"location": "Springfield, IL, USA",
	})
	require.NoError(t, err)
	return domain.RawRecord{
		Key:   []byte(key),
		Value: data,
	}
}
