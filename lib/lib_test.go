package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"windows separators", `..\..\boot.ini`, "boot.ini"},
		{"spaces and specials", "my file?.png", "my_file_.png"},
		{"hidden file", ".env", "env"},
		{"empty", "", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSplitExt(t *testing.T) {
	base, ext := SplitExt("a.png")
	assert.Equal(t, "a", base)
	assert.Equal(t, ".png", ext)

	base, ext = SplitExt("archive.tar.gz")
	assert.Equal(t, "archive.tar", base)
	assert.Equal(t, ".gz", ext)

	base, ext = SplitExt("README")
	assert.Equal(t, "README", base)
	assert.Equal(t, "", ext)
}

func TestRandomToken(t *testing.T) {
	a := RandomToken(32)
	b := RandomToken(32)
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
