package database

import (
	"strings"
	"testing"
	"time"
)

func TestConnConfig(t *testing.T) {
	cfg := connConfig("diner", "s3cret", "db.local", "3307", "reservations")

	if cfg.Addr != "db.local:3307" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, "db.local:3307")
	}
	if !cfg.ParseTime {
		t.Error("ParseTime disabled; DATETIME columns would scan as []byte")
	}
	if cfg.Loc != time.UTC {
		t.Errorf("Loc = %v, want UTC", cfg.Loc)
	}

	dsn := cfg.FormatDSN()
	for _, want := range []string{"diner:s3cret@tcp(db.local:3307)/reservations", "charset=utf8mb4", "parseTime=true"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("FormatDSN() = %q, missing %q", dsn, want)
		}
	}
}

func TestConnConfigEmptyPassword(t *testing.T) {
	dsn := connConfig("root", "", "127.0.0.1", "3306", "reservations").FormatDSN()
	if !strings.HasPrefix(dsn, "root@tcp(") {
		t.Errorf("FormatDSN() = %q, want bare user before @tcp", dsn)
	}
}
