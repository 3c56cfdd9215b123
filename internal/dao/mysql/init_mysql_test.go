package mysql

import (
	"testing"

	"cine_social_server/internal/config"
)

func TestDSN(t *testing.T) {
	got := DSN(&config.MysqlConfig{
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "root",
		Password:     "secret",
		DatabaseName: "cine_social",
	})
	want := "root:secret@tcp(127.0.0.1:3306)/cine_social?charset=utf8mb4&parseTime=True&loc=Local"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
