package shelf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shelflog/internal/book"
)

func TestEncode_NilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestEncode_OmitsEmptyDescription(t *testing.T) {
	data, err := Encode([]book.Book{bookA()})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "description")

	withDesc := bookA()
	withDesc.Description = "notes"
	data, err = Encode([]book.Book{withDesc})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":"notes"`)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []book.Book
		wantErr bool
	}{
		{name: "empty array", input: "[]", want: []book.Book{}},
		{name: "null", input: "null", want: []book.Book{}},
		{
			name:  "unknown fields ignored",
			input: `[{"id":"1","name":"Book A","date":"2024-02-25","rating":5,"genre":"פרוזה","cover":"x.png"}]`,
			want:  []book.Book{bookA()},
		},
		{name: "not json", input: "not json", wantErr: true},
		{name: "object instead of array", input: `{"id":"1"}`, wantErr: true},
		{name: "rating as string", input: `[{"id":"1","rating":"five"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "decode books")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodec_RoundTripPreservesOrder(t *testing.T) {
	in := []book.Book{bookB(), bookA()}
	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
