package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		id   uint64
	}{
		{"empty", nil, 0xef46db3751d8e999},
		{"short", []byte("test"), 0x4fdcca5ddb678139},
		{"longer", []byte("this is a longer test string to hash"), 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, Digest(tt.data))
		})
	}
}

func TestDigestDiffers(t *testing.T) {
	a := Digest([]byte{0x00, 0x01, 0x02})
	b := Digest([]byte{0x00, 0x01, 0x03})
	assert.NotEqual(t, a, b)
}
