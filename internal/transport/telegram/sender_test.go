package telegram

import (
	"strings"
	"testing"
)

func TestSplitHTML(t *testing.T) {
	t.Run("short text stays whole", func(t *testing.T) {
		chunks := splitHTML("hello", 100)
		if len(chunks) != 1 || chunks[0] != "hello" {
			t.Errorf("chunks = %v", chunks)
		}
	})

	t.Run("splits at newline when available", func(t *testing.T) {
		text := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)
		chunks := splitHTML(text, 100)
		if len(chunks) != 2 {
			t.Fatalf("chunks = %d, want 2", len(chunks))
		}
		if strings.Contains(chunks[0], "b") {
			t.Errorf("first chunk crossed the newline: %q", chunks[0])
		}
	})

	t.Run("hard split without newlines", func(t *testing.T) {
		text := strings.Repeat("a", 250)
		chunks := splitHTML(text, 100)
		if len(chunks) != 3 {
			t.Fatalf("chunks = %d, want 3", len(chunks))
		}
		for i, chunk := range chunks {
			if len(chunk) > 100 {
				t.Errorf("chunk %d length %d exceeds limit", i, len(chunk))
			}
		}
	})
}
