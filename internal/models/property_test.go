package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9123456780", "9123456780"},
		{"+919123456780", "9123456780"},
		{"+91 91234-56780", "9123456780"},
		{"091 2345 6780", "9123456780"},
		{"12345", "12345"},
		{"", ""},
		{"abc", ""},
		{"tel:+91-9123456780", "9123456780"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestValidArea(t *testing.T) {
	assert.True(t, ValidArea("Kismatpur"))
	assert.True(t, ValidArea("Bandlaguda Jagir"))
	assert.False(t, ValidArea("kismatpur"), "area match is case sensitive")
	assert.False(t, ValidArea("Gotham"))
	assert.False(t, ValidArea(""))
}
