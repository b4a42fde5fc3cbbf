package govdoc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Markers used in extraction results. A result starting with
// RejectionSentinel or FailureSentinel carries no extracted content.
const (
	RejectionSentinel = "❌ UNAUTHORIZED SOURCE:"
	FailureSentinel   = "❌ ERROR:"
	SuccessMarker     = "✅"
	FooterHeading     = "📋 SOURCE VERIFICATION:"
	TruncationMarker  = "...\n[TRUNCATED]"
)

// MaxTextLength is the default number of characters (runes) of extracted
// text kept before truncation.
const MaxTextLength = 7000

// SourceKind identifies what kind of source produced extracted text.
type SourceKind int

// Source kinds.
const (
	SourceDocument SourceKind = iota
	SourcePage
)

// String returns the source kind name used in logs and the access ledger.
func (k SourceKind) String() string {
	switch k {
	case SourceDocument:
		return "document"
	case SourcePage:
		return "page"
	default:
		return "unknown"
	}
}

// Annotate truncates text to max runes and appends the provenance footer
// naming the verified host. A max of zero or less uses MaxTextLength.
func Annotate(text, host string, kind SourceKind, max int) string {
	return Truncate(text, max) + "\n\n" + Footer(host, kind)
}

// Truncate returns text unchanged if it has at most max runes. Otherwise it
// returns the first max runes followed by TruncationMarker.
// A max of zero or less uses MaxTextLength.
func Truncate(text string, max int) string {
	if max <= 0 {
		max = MaxTextLength
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i] + TruncationMarker
		}
		n++
	}
	return text
}

// Footer returns the provenance footer for a verified host.
func Footer(host string, kind SourceKind) string {
	source, status := "Authorized Government Source", "Document verified and extracted successfully"
	if kind == SourcePage {
		source, status = "Authorized Government Website", "Content extracted and verified successfully"
	}
	return fmt.Sprintf("%s\n%s %s: %s\n%s %s", FooterHeading, SuccessMarker, source, singleLine(host), SuccessMarker, status)
}

// Reject returns the single-line rejection notice for an unauthorized host.
// The result must be returned to the caller as is.
func Reject(host string) string {
	return fmt.Sprintf("%s Domain '%s' is not in the authorized government domains list. Only official government sources are allowed.",
		RejectionSentinel, singleLine(host))
}

// Fail returns the failure notice for an error that occurred while
// performing action (e.g. "parsing government PDF").
func Fail(action string, err error) string {
	msg := "unknown error"
	if err != nil {
		msg = ErrorMessage(err)
		if ErrorCode(err) == EINTERNAL {
			msg = err.Error()
		}
	}
	return fmt.Sprintf("%s %s: %s", FailureSentinel, action, singleLine(msg))
}

// IsRejection reports whether result is a rejection notice.
func IsRejection(result string) bool {
	return strings.HasPrefix(result, RejectionSentinel)
}

// IsFailure reports whether result is a failure notice.
func IsFailure(result string) bool {
	return strings.HasPrefix(result, FailureSentinel)
}

// singleLine collapses all whitespace runs, including newlines, to one space.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
