package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/3DMakc/3d-makc-fishing-store/internal/format"
)

// digits strips grouping separators, which vary by locale data version.
func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "0 грн", format.Money(0))
	assert.Equal(t, "250 грн", format.Money(250))

	// rounds to whole hryvnias
	assert.Equal(t, "100 грн", format.Money(99.6))
	assert.Equal(t, "99 грн", format.Money(99.4))

	got := format.Money(12345.6)
	assert.True(t, strings.HasSuffix(got, "грн"), got)
	assert.Equal(t, "12346", digits(got))
}
