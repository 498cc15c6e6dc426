package scaffold

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPost(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPost(&buf, PostData{Title: "Hello"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("Hello\n---\n")), "got %q", buf.String())

	buf.Reset()
	require.NoError(t, RenderPost(&buf, PostData{Title: "Hello", TitlePic: "cover.png"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("Hello\ncover.png\n---\n")), "got %q", buf.String())
	assert.Contains(t, buf.String(), "```go")
}

func TestPostDataValidate(t *testing.T) {
	tests := []struct {
		name string
		data PostData
		ok   bool
	}{
		{"title only", PostData{Title: "T"}, true},
		{"with picture", PostData{Title: "T", TitlePic: "a.png"}, true},
		{"empty title", PostData{Title: "  "}, false},
		{"newline in title", PostData{Title: "a\nb"}, false},
		{"separator in title", PostData{Title: "a --- b"}, false},
		{"separator in picture", PostData{Title: "T", TitlePic: "---.png"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
