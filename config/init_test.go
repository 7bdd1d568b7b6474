package config

import (
	"testing"
	"time"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("load must fail without a signing secret")
	}

	t.Setenv("AUTH_JWT_SECRET", "CHANGE_ME")
	if _, err := Load(); err == nil {
		t.Fatal("load must fail with the placeholder secret")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TokenTTL() != time.Hour {
		t.Fatalf("token ttl = %v, want 1h", cfg.TokenTTL())
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatal(err)
	}
	if loc != time.UTC {
		t.Fatalf("timezone = %v, want UTC", loc)
	}
	if cfg.Server.HTTPPort != "8080" {
		t.Fatalf("port = %s", cfg.Server.HTTPPort)
	}
	if cfg.Database.Driver != "" {
		t.Fatalf("driver = %q, want in-memory default", cfg.Database.Driver)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "4")
	t.Setenv("BOOKING_TIMEZONE", "Europe/Berlin")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TokenTTL() != 4*time.Hour {
		t.Fatalf("token ttl = %v, want 4h", cfg.TokenTTL())
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatal(err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Fatalf("timezone = %v", loc)
	}
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("BOOKING_TIMEZONE", "Mars/Olympus_Mons")
	if _, err := Load(); err == nil {
		t.Fatal("load must fail with an unknown timezone")
	}
}
