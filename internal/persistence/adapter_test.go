package persistence

import (
	"errors"
	"strings"
	"testing"

	"pet-manager/internal/adapters/storage/memory"
	"pet-manager/internal/domain/pets"
	"pet-manager/internal/platform/logger"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func strPtr(s string) *string { return &s }

func samplePets() []pets.Pet {
	return []pets.Pet{
		{
			ID: "a1", Name: "Rex", Species: "Dog", Breed: "Labrador",
			Age: 3, Weight: 28.5, Color: "Golden",
			NextVaccination: strPtr("2025-03-01"),
		},
		{
			ID: "b2", Name: "Milo", Species: "Cat", Age: 1,
			Notes: strPtr("indoor"), ImageURL: strPtr("https://example.com/milo.jpg"),
		},
	}
}

func newObserved(t *testing.T, kv *memory.KV, opts Options) (*Adapter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	opts.Log = logger.FromZap(zap.New(core))
	return New(kv, opts), logs
}

func TestRoundTrip_LoadSaveLoad(t *testing.T) {
	a := New(memory.NewKV(), Options{})

	assert.Empty(t, a.Load())

	want := samplePets()
	a.Save(want)

	if diff := cmp.Diff(want, a.Load()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_TwiceIsNotMerged(t *testing.T) {
	a := New(memory.NewKV(), Options{})

	want := samplePets()
	a.Save(want)
	a.Save(want)

	if diff := cmp.Diff(want, a.Load()); diff != "" {
		t.Fatalf("idempotence mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_ReplacesWholeCollection(t *testing.T) {
	a := New(memory.NewKV(), Options{})

	a.Save(samplePets())
	a.Save(samplePets()[:1])

	got := a.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)
}

func TestLoad_MissingKeyReturnsEmpty(t *testing.T) {
	a, logs := newObserved(t, memory.NewKV(), Options{})

	got, err := a.TryLoad()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, logs.Len())
}

func TestLoad_CorruptContentLogsAndReturnsEmpty(t *testing.T) {
	kv := memory.NewKV()
	require.NoError(t, kv.SetItem(DefaultKey, "{not json"))
	a, logs := newObserved(t, kv, Options{})

	_, err := a.TryLoad()
	assert.ErrorIs(t, err, ErrCorrupt)

	got := a.Load()
	assert.Empty(t, got)
	assert.NotNil(t, got)

	entries := logs.FilterMessage("error reading pets from storage").All()
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultKey, entries[0].ContextMap()["key"])
}

func TestLoad_NullPayloadIsEmpty(t *testing.T) {
	kv := memory.NewKV()
	require.NoError(t, kv.SetItem(DefaultKey, "null"))

	got, err := New(kv, Options{}).TryLoad()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_ShapeIsNotValidated(t *testing.T) {
	kv := memory.NewKV()
	require.NoError(t, kv.SetItem(DefaultKey, `[{"id":"x","age":99,"notes":null}]`))

	got := New(kv, Options{}).Load()
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Name)
	assert.Equal(t, 99, got[0].Age)
	assert.Nil(t, got[0].Notes)
}

func TestLoad_StorageErrorLogsAndReturnsEmpty(t *testing.T) {
	kv := memory.NewKV()
	kv.FailGet = memory.ErrUnavailable
	a, logs := newObserved(t, kv, Options{})

	assert.Empty(t, a.Load())
	assert.Equal(t, 1, logs.Len())
}

func TestSave_FailureIsSilent(t *testing.T) {
	kv := memory.NewKV()
	a, logs := newObserved(t, kv, Options{})
	a.Save(samplePets())

	kv.FailSet = errors.New("disk full")
	a.Save(samplePets()[:1])

	assert.Equal(t, 1, logs.FilterMessage("error saving pets to storage").Len())

	// el valor previo sigue intacto
	kv.FailSet = nil
	assert.Len(t, a.Load(), 2)
}

func TestSave_QuotaExceeded(t *testing.T) {
	kv := memory.NewKV()
	a, logs := newObserved(t, kv, Options{MaxBytes: 64})

	err := a.TrySave(samplePets())
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	a.Save(samplePets())
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, 0, kv.Len())
}

func TestSave_OmitsAbsentOptionals(t *testing.T) {
	kv := memory.NewKV()
	a := New(kv, Options{Key: "custom"})

	a.Save([]pets.Pet{{ID: "a1", Name: "Rex", Species: "Dog", Age: 3}})

	raw, ok, err := kv.GetItem("custom")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"a1","name":"Rex","species":"Dog","breed":"","age":3,"weight":0,"color":""}]`, raw)
	assert.False(t, strings.Contains(raw, "null"))
}

func TestSave_NilCollectionWritesEmptyArray(t *testing.T) {
	kv := memory.NewKV()
	require.NoError(t, New(kv, Options{}).TrySave(nil))

	raw, _, _ := kv.GetItem(DefaultKey)
	assert.Equal(t, "[]", raw)
}

func TestClear(t *testing.T) {
	kv := memory.NewKV()
	a, logs := newObserved(t, kv, Options{})

	a.Save(samplePets())
	a.Clear()
	assert.Empty(t, a.Load())

	kv.FailRemove = errors.New("locked")
	a.Clear()
	assert.Equal(t, 1, logs.FilterMessage("error clearing pets storage").Len())
}

func TestNilKV_FailsSoft(t *testing.T) {
	a := New(nil, Options{})

	_, err := a.TryLoad()
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, a.TrySave(nil), ErrStorageUnavailable)
	assert.ErrorIs(t, a.TryClear(), ErrStorageUnavailable)

	assert.Empty(t, a.Load())
	a.Save(samplePets())
	a.Clear()
}

func TestNew_Defaults(t *testing.T) {
	a := New(memory.NewKV(), Options{Key: "  ", MaxBytes: -1})
	assert.Equal(t, DefaultKey, a.Key())
}
