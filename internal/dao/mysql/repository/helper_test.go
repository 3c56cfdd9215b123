package repository

import (
	"errors"
	"testing"

	"cine_social_server/pkg/errorx"

	"gorm.io/gorm"
)

func TestWrapDBError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", gorm.ErrRecordNotFound, errorx.CodeNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, errorx.CodeDuplicateRelationship},
		{"other", errors.New("connection refused"), errorx.CodeDBError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapDBError(tt.err, "op")
			if got := errorx.GetCode(err); got != tt.code {
				t.Fatalf("code = %d, want %d", got, tt.code)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("cause lost")
			}
		})
	}
	if wrapDBError(nil, "op") != nil {
		t.Fatalf("nil error should stay nil")
	}
}
