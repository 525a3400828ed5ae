package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedFile(t *testing.T) {
	for _, name := range []string{"a.png", "a.JPG", "photo.jpeg", "x.y.gif"} {
		assert.True(t, AllowedFile(name), name)
	}
	for _, name := range []string{"png", "a.bmp", "a.png.exe", "", "."} {
		assert.False(t, AllowedFile(name), name)
	}
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{"i contain cool \u00fcml\u00e4uts.txt", "i_contain_cool_umlauts.txt"},
		{"\uc0ac\uc9c4.png", "png"},
		{"..hidden.jpg", "hidden.jpg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SecureFilename(tt.input), tt.input)
	}
}

func TestUniqueFilename(t *testing.T) {
	a := UniqueFilename("scan.png")
	b := UniqueFilename("scan.png")

	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^[0-9a-f]{32}_scan\.png$`, a)
}
