package random

import (
	"strings"
	"testing"
	"time"
)

func TestGetNowAndLenRandomString(t *testing.T) {
	s := GetNowAndLenRandomString(11)
	if len(s) != 17 {
		t.Fatalf("len = %d, want 17", len(s))
	}
	prefix := time.Now().Format("060102")
	if !strings.HasPrefix(s, prefix) {
		t.Fatalf("%q should start with %q", s, prefix)
	}
	for _, c := range s[6:] {
		if !strings.ContainsRune(charset, c) {
			t.Fatalf("unexpected rune %q in %q", c, s)
		}
	}
}

func TestGetNowAndLenRandomStringUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s := GetNowAndLenRandomString(11)
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate id %q after %d draws", s, i)
		}
		seen[s] = struct{}{}
	}
}
