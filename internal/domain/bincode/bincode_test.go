package bincode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Eddiexian/AI-Pr/internal/domain/bincode"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"A-01":        "A-01",
		"  b-02 ":     "B-02",
		"ａ－０１":        "A-01",
		"６Ｆ-Ｂ-１０": "6F-B-10",
		"":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, bincode.Normalize(in), "entrada %q", in)
	}
}

func TestNormalizeAll_ConservaOrdenSinDuplicados(t *testing.T) {
	got := bincode.NormalizeAll([]string{"a-02", "A-01", " ", "Ａ-02", "a-01"})
	assert.Equal(t, []string{"A-02", "A-01"}, got)
}
