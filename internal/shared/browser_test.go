package shared

import (
	"strings"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	t.Run("unsupported platform returns an error", func(t *testing.T) {
		original := getRuntime
		defer func() { getRuntime = original }()
		getRuntime = func() string { return "plan9" }

		err := OpenBrowser("http://example.com")
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), "unsupported platform") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
