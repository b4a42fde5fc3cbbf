package goquery_test

import (
	"testing"

	"github.com/fwojciec/govdoc"
	"github.com/fwojciec/govdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/Scripts/Notifications.aspx">Notifications</a>
<a href="docs/annual-report.pdf">Annual   Report</a>
<a href="https://sebi.gov.in/circulars">SEBI</a>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://rbi.org.in/home/index.html")

		require.NoError(t, err)
		assert.Equal(t, []govdoc.Link{
			{URL: "https://rbi.org.in/Scripts/Notifications.aspx", Text: "Notifications"},
			{URL: "https://rbi.org.in/home/docs/annual-report.pdf", Text: "Annual Report"},
			{URL: "https://sebi.gov.in/circulars", Text: "SEBI"},
		}, links)
	})

	t.Run("skips non-HTTP scheme links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/real">Real Link</a>
<a href="javascript:void(0)">JS Link</a>
<a href="mailto:info@gov.in">Email Link</a>
<a href="tel:1800">Phone</a>
<a href="ftp://files.gov.in/a.pdf">FTP</a>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://gov.in")

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://gov.in/real", links[0].URL)
	})

	t.Run("strips fragments and skips self links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="#top">Top</a>
<a href="/acts#section-3">Section 3</a>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://indiacode.nic.in/current")

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://indiacode.nic.in/acts", links[0].URL)
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/a">One</a><a href="/a">Two</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://gov.in")

		require.NoError(t, err)
		assert.Len(t, links, 2)
	})

	t.Run("honors base element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><base href="https://upsc.gov.in/exams/"></head>
<body><a href="notice.pdf">Notice</a></body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://upsc.gov.in/index")

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://upsc.gov.in/exams/notice.pdf", links[0].URL)
	})

	t.Run("returns error for invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkExtractor().ExtractLinks(`<a href="/docs">Docs</a>`, "://invalid-url")

		require.Error(t, err)
		assert.Equal(t, govdoc.EINVALID, govdoc.ErrorCode(err))
	})

	t.Run("handles empty HTML", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkExtractor().ExtractLinks("", "https://gov.in")

		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
