package tiss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glosaguard/internal/validator/tiss"
)

func TestValidCPF(t *testing.T) {
	tests := []struct {
		name string
		cpf  string
		want bool
	}{
		{"first check digit remainder ten maps to zero", "12345678909", true},
		{"valid punctuated", "123.456.789-09", true},
		{"valid other", "52998224725", true},
		{"valid third", "11144477735", true},
		{"second check digit wrong", "12345678901", false},
		{"first check digit wrong", "12345678919", false},
		{"all zeros", "00000000000", false},
		{"all nines", "99999999999", false},
		{"too short", "1234567890", false},
		{"too long", "123456789090", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tiss.ValidCPF(tt.cpf))
		})
	}
}

func TestValidCPF_RepeatedDigitsAlwaysRejected(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		cpf := string([]rune{d, d, d, d, d, d, d, d, d, d, d})
		assert.False(t, tiss.ValidCPF(cpf), cpf)
	}
}
