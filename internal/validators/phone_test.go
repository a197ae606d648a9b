package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"09121234567", "09121234567"},
		{"0912 123 4567", "09121234567"},
		{"0912-123-4567", "09121234567"},
		{"+989121234567", "09121234567"},
		{"989121234567", "09121234567"},
		{"۰۹۱۲۱۲۳۴۵۶۷", "09121234567"}, // Persian digits
		{"٠٩١٢١٢٣٤٥٦٧", "09121234567"}, // Arabic-Indic digits
		{"  09121234567  ", "09121234567"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in), tc.in)
	}
}

func TestIsMobileValid(t *testing.T) {
	valid := []string{
		"09121234567",
		"+989351112233",
		"۰۹۱۲۱۲۳۴۵۶۷",
	}
	for _, p := range valid {
		assert.True(t, IsMobileValid(p), p)
	}

	invalid := []string{
		"",
		"12345",
		"0912123456",    // too short
		"091212345678",  // too long
		"08121234567",   // not a mobile prefix
		"+19121234567",  // foreign prefix
		"0912123456a",
	}
	for _, p := range invalid {
		assert.False(t, IsMobileValid(p), p)
	}
}
