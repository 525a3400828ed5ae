package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateText_KeepsHangulIntact(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// each syllable is 3 bytes; 4 bytes cuts the second one
	out := tp.TruncateText("안녕하세요", 4)

	assert.True(t, strings.HasPrefix(out, "안"))
	assert.True(t, strings.HasSuffix(out, truncationMarker))
	assert.True(t, utf8.ValidString(out))
}

func TestTruncateText_NoLimit(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "short", tp.TruncateText("short", 0))
	assert.Equal(t, "short", tp.TruncateText("short", 10))
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "ab", tp.SanitizeUTF8("a\xffb"))
	assert.Equal(t, "정상", tp.SanitizeUTF8("정상"))
}

func TestNormalizeHangul(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	decomposed := "\u1112\u1161\u11ab"
	assert.Equal(t, "\ud55c", tp.NormalizeHangul(decomposed))
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	out := tp.ProcessText("  한\xff  ", 100)
	assert.Equal(t, "한", out)
}
