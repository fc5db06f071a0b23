package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatYen(t *testing.T) {
	cases := map[int64]string{
		0:       "¥0",
		950:     "¥950",
		50050:   "¥50,050",
		1234567: "¥1,234,567",
		-3000:   "-¥3,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatYen(in), "input %d", in)
	}
}
