package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enc "github.com/lbarreto/equifinance/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := enc.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestNewUTF8Reader(t *testing.T) {
	type testCase struct {
		name  string
		input []byte
		want  string
	}

	utf16le := func(s string) []byte {
		out := []byte{0xFF, 0xFE}
		for _, r := range s {
			out = append(out, byte(r), byte(r>>8))
		}

		return out
	}

	tests := []testCase{
		{
			name:  "PlainUTF8",
			input: []byte("Data;Categoria;Valor\n2024-05-01;Alimentação;42,50\n"),
			want:  "Data;Categoria;Valor\n2024-05-01;Alimentação;42,50\n",
		},
		{
			name:  "UTF8WithBOM",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Saúde")...),
			want:  "Saúde",
		},
		{
			name:  "UTF16LEWithBOM",
			input: utf16le("Lazer;10,00"),
			want:  "Lazer;10,00",
		},
		{
			// "Alimentação" in Latin-1: ç=0xE7, ã=0xE3.
			name:  "Latin1Fallback",
			input: []byte{'A', 'l', 'i', 'm', 'e', 'n', 't', 'a', 0xE7, 0xE3, 'o'},
			want:  "Alimentação",
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode(t, tt.input))
		})
	}
}
