package pdf_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/pdf"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDocument renders one PDF page per entry in pages.
func newDocument(t *testing.T, pages ...string) []byte {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	for _, text := range pages {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		doc.Cell(120, 10, text)
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts pages in order", func(t *testing.T) {
		t.Parallel()

		data := newDocument(t, "Monetary Policy Statement", "Repo rate unchanged")

		text, err := pdf.NewParser().Parse(data)

		require.NoError(t, err)
		first := strings.Index(text, "Monetary")
		second := strings.Index(text, "Repo")
		require.GreaterOrEqual(t, first, 0, "text: %q", text)
		require.GreaterOrEqual(t, second, 0, "text: %q", text)
		assert.Less(t, first, second)
		assert.Contains(t, text[first:second], "\n")
	})

	t.Run("returns EPARSE for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := pdf.NewParser().Parse(nil)

		require.Error(t, err)
		assert.Equal(t, govdoc.EPARSE, govdoc.ErrorCode(err))
	})

	t.Run("returns EPARSE for non-PDF bytes", func(t *testing.T) {
		t.Parallel()

		_, err := pdf.NewParser().Parse([]byte("<html><body>Not Found</body></html>"))

		require.Error(t, err)
		assert.Equal(t, govdoc.EPARSE, govdoc.ErrorCode(err))
	})

	t.Run("returns EPARSE for truncated PDF", func(t *testing.T) {
		t.Parallel()

		data := newDocument(t, "Gazette notification")

		assert.NotPanics(t, func() {
			_, err := pdf.NewParser().Parse(data[:len(data)/2])
			require.Error(t, err)
			assert.Equal(t, govdoc.EPARSE, govdoc.ErrorCode(err))
		})
	})
}
