package config

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"10s", 10 * time.Second, false},
		{"5m", 5 * time.Minute, false},
		{"10", 10 * time.Second, false},
		{` "10s" `, 10 * time.Second, false},
		{"'15'", 15 * time.Second, false},
		{"", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDuration(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDuration(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDuration(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDurationSecondsSetValue(t *testing.T) {
	var d durationSeconds
	if err := d.SetValue("90"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if d.Duration() != 90*time.Second {
		t.Errorf("Duration() = %v, want 90s", d.Duration())
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTP.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.HTTP.Port)
	}
	if cfg.DB.URL != "tasks.db" {
		t.Errorf("DB URL = %q, want tasks.db", cfg.DB.URL)
	}
	if cfg.HTTP.ReadTimeout.Duration() != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", cfg.HTTP.ReadTimeout.Duration())
	}
	if cfg.HTTP.IdleTimeout.Duration() != 60*time.Second {
		t.Errorf("IdleTimeout = %v, want 60s", cfg.HTTP.IdleTimeout.Duration())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "/var/data/tasks.db")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DB.URL != "/var/data/tasks.db" {
		t.Errorf("DB URL = %q", cfg.DB.URL)
	}
	if cfg.HTTP.Port != "9090" {
		t.Errorf("Port = %q", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeout.Duration() != 30*time.Second {
		t.Errorf("ReadTimeout = %v, want 30s", cfg.HTTP.ReadTimeout.Duration())
	}
}

func TestLoadRejectsBlankDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "   ")
	if _, err := Load(); err == nil {
		t.Error("Load should reject a blank DATABASE_URL")
	}
}
