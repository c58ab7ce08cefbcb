package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/advocateworks/lexhub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Filed motion to dismiss."); got != "Filed motion to dismiss." {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Hearing</strong> moved to <em>Monday</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Note</p><script>alert('xss')</script>"
	if got := htmlsanitize.Sanitize(input); got != "<p>Note</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<button onclick="alert('xss')">Click</button>`
	if got := htmlsanitize.Sanitize(input); strings.Contains(got, "onclick") {
		t.Errorf("expected onclick removed, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	if got := htmlsanitize.StripTags("<b>State v. Doe</b>"); got != "State v. Doe" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}
