package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Speakers.Agent != "Agent" || cfg.Speakers.Customer != "Customer" {
		t.Errorf("speakers = %+v", cfg.Speakers)
	}
	if cfg.NLU.BatchSize != 5 || cfg.NLU.CooldownSec != 1 {
		t.Errorf("nlu rate limit = %+v", cfg.NLU)
	}
	if cfg.Paths.STTData != "stt_data" || cfg.Paths.BackupDir != "backup" {
		t.Errorf("paths = %+v", cfg.Paths)
	}
}

func TestLoad_EnvOverridesSpeakersAndCredentials(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRANSCRIPT_SPEAKER_ONE", "Rep")
	t.Setenv("TRANSCRIPT_SPEAKER_TWO", "Caller")
	t.Setenv("WATSON_NLU_API_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Speakers.Agent != "Rep" || cfg.Speakers.Customer != "Caller" {
		t.Errorf("speakers = %+v", cfg.Speakers)
	}
	if cfg.NLU.APIKey != "secret" {
		t.Errorf("nlu api key = %q", cfg.NLU.APIKey)
	}
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_ENV", "test")

	cfgDir := filepath.Join(dir, "config", "test")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
stt:
  url: https://stt.example.com
  model: en-US_Telephony
nlu:
  batch_size: 3
  cooldown_sec: 2
speakers:
  agent: Support
`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.STT.URL != "https://stt.example.com" || cfg.STT.Model != "en-US_Telephony" {
		t.Errorf("stt = %+v", cfg.STT)
	}
	if cfg.NLU.BatchSize != 3 || cfg.NLU.CooldownSec != 2 {
		t.Errorf("nlu = %+v", cfg.NLU)
	}
	if cfg.Speakers.Agent != "Support" {
		t.Errorf("agent = %q", cfg.Speakers.Agent)
	}
}
