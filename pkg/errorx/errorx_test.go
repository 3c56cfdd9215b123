package errorx

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	base := errors.New("duplicate entry")
	err := Wrapf(base, CodeDuplicateRelationship, "创建关系 %s-%s", "U1", "U2")

	if !errors.Is(err, ErrDuplicateRelationship) {
		t.Fatalf("wrapped error should match ErrDuplicateRelationship")
	}
	if errors.Is(err, ErrAlreadyFriends) {
		t.Fatalf("wrapped error must not match a different code")
	}
	if !errors.Is(err, base) {
		t.Fatalf("cause should stay reachable through Unwrap")
	}
}

func TestIsThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("accept: %w", ErrForbidden)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("fmt wrapped sentinel should match")
	}
	if GetCode(err) != CodeForbidden {
		t.Fatalf("GetCode = %d, want %d", GetCode(err), CodeForbidden)
	}
}

func TestGetCodeDefaultsToServerBusy(t *testing.T) {
	if got := GetCode(errors.New("boom")); got != CodeServerBusy {
		t.Fatalf("GetCode = %d, want %d", got, CodeServerBusy)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *CodeError
		want string
	}{
		{"plain", New(CodeBlocked, "blocked"), "blocked"},
		{"wrapped", Wrap(errors.New("io"), CodeUnavailable, "fetch"), "fetch: io"},
		{"formatted", Newf(CodeNotFound, "关系 %s 不存在", "R1"), "关系 R1 不存在"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(Wrap(errors.New("record not found"), CodeNotFound, "查询关系")) {
		t.Fatalf("CodeNotFound should be reported as not found")
	}
	if IsNotFound(ErrForbidden) {
		t.Fatalf("ErrForbidden is not a not-found error")
	}
	if IsNotFound(nil) {
		t.Fatalf("nil is not a not-found error")
	}
}
