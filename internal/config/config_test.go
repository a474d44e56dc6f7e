package config

import "testing"

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GENERATOR_MAX_COUNT", "4")
	t.Setenv("PLAYBACK_DEFAULT_BPM", "128")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9100" {
		t.Errorf("expected port 9100, got %q", cfg.Server.Port)
	}
	if !cfg.IsDebug() {
		t.Error("expected debug logging to be enabled case-insensitively")
	}
	if cfg.Generator.MaxCount != 4 {
		t.Errorf("expected max count 4, got %d", cfg.Generator.MaxCount)
	}
	if cfg.Playback.DefaultBPM != 128 {
		t.Errorf("expected bpm 128, got %d", cfg.Playback.DefaultBPM)
	}
	if cfg.Generator.DefaultCount != 5 || cfg.Generator.RetryFactor != 10 {
		t.Errorf("expected generator defaults, got %+v", cfg.Generator)
	}
	if cfg.CORS.AllowOrigins != "*" {
		t.Errorf("expected permissive CORS by default, got %q", cfg.CORS.AllowOrigins)
	}
}
