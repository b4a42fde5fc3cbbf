package govdoc_test

import (
	"testing"

	"github.com/fwojciec/govdoc"
	"github.com/stretchr/testify/assert"
)

func TestAccess_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts complete access", func(t *testing.T) {
		t.Parallel()

		a := &govdoc.Access{Tool: "ParseAuthorizedGovPDF", URL: "https://gov.in/x.pdf", Outcome: govdoc.OutcomeVerified}

		assert.NoError(t, a.Validate())
	})

	t.Run("requires tool", func(t *testing.T) {
		t.Parallel()

		a := &govdoc.Access{URL: "https://gov.in/x.pdf", Outcome: govdoc.OutcomeVerified}

		assert.Equal(t, govdoc.EINVALID, govdoc.ErrorCode(a.Validate()))
	})

	t.Run("requires url", func(t *testing.T) {
		t.Parallel()

		a := &govdoc.Access{Tool: "ParseAuthorizedGovPDF", Outcome: govdoc.OutcomeRejected}

		assert.Equal(t, govdoc.EINVALID, govdoc.ErrorCode(a.Validate()))
	})

	t.Run("rejects unknown outcome", func(t *testing.T) {
		t.Parallel()

		a := &govdoc.Access{Tool: "x", URL: "https://gov.in", Outcome: "maybe"}

		assert.Equal(t, govdoc.EINVALID, govdoc.ErrorCode(a.Validate()))
	})
}
