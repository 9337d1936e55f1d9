package sanitize_test

import (
	"testing"

	"github.com/dalemusser/pollhub/internal/app/system/sanitize"
)

func TestText_Plain(t *testing.T) {
	got := sanitize.Text("Best language?")
	if got != "Best language?" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestText_Empty(t *testing.T) {
	if got := sanitize.Text(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestText_StripsTags(t *testing.T) {
	got := sanitize.Text("<b>Go</b> or <i>Rust</i>?")
	if got != "Go or Rust?" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}

func TestText_StripsScript(t *testing.T) {
	got := sanitize.Text("Hello<script>alert('xss')</script>")
	if got != "Hello" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestText_KeepsEntities(t *testing.T) {
	got := sanitize.Text("Tom & Jerry")
	if got != "Tom & Jerry" {
		t.Errorf("expected ampersand preserved, got %q", got)
	}
}
