package transfer

import (
	"bytes"
	"strings"
	"testing"

	"pet-manager/internal/domain/pets"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sample() []pets.Pet {
	return []pets.Pet{
		{ID: "a1", Name: "Rex", Species: "Dog", Breed: "Labrador", Age: 3, Weight: 28.5, Color: "Golden", NextVaccination: strPtr("2025-03-01")},
		{ID: "b2", Name: "Milo", Species: "Cat", Age: 1, Notes: strPtr("indoor\ncat")},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, f, sample()))

			got, err := Decode(&buf, f)
			require.NoError(t, err)
			if diff := cmp.Diff(sample(), got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeYAML_UsesStorageFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, sample()[:1]))

	out := buf.String()
	assert.Contains(t, out, "nextVaccination:")
	assert.Contains(t, out, "2025-03-01")
	assert.NotContains(t, out, "notes:")
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		got, err := Decode(strings.NewReader(""), f)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(strings.NewReader("{oops"), FormatJSON)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("a: [b"), FormatYAML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("[]"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormatAndPath(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, FormatYAML, FormatForPath("backup.yaml"))
	assert.Equal(t, FormatJSON, FormatForPath("backup.json"))
	assert.Equal(t, FormatJSON, FormatForPath("backup"))
}

func TestCheckIDs(t *testing.T) {
	assert.NoError(t, CheckIDs(sample()))
	assert.ErrorIs(t, CheckIDs([]pets.Pet{{ID: ""}}), pets.ErrInvalidInput)
	assert.ErrorIs(t, CheckIDs([]pets.Pet{{ID: "a"}, {ID: "a"}}), pets.ErrInvalidInput)
}
