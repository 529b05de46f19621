package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Service struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type STT struct {
	Service     `yaml:",inline"`
	Model       string `yaml:"model"`
	ContentType string `yaml:"content_type"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

type NLU struct {
	Service     `yaml:",inline"`
	Version     string `yaml:"version"`
	TimeoutSec  int    `yaml:"timeout_sec"`
	BatchSize   int    `yaml:"batch_size"`
	CooldownSec int    `yaml:"cooldown_sec"`
}

type Speakers struct {
	Agent    string `yaml:"agent"`
	Customer string `yaml:"customer"`
}

type Paths struct {
	STTData     string `yaml:"stt_data"`
	NLUData     string `yaml:"nlu_data"`
	RadarData   string `yaml:"radar_data"`
	BackupDir   string `yaml:"backup_dir"`
	SampleAudio string `yaml:"sample_audio"`
}

type Root struct {
	STT      STT      `yaml:"stt"`
	NLU      NLU      `yaml:"nlu"`
	Speakers Speakers `yaml:"speakers"`
	Paths    Paths    `yaml:"paths"`
}

// Load reads the YAML config if one is present, then applies environment
// overrides. A missing config file is fine; the defaults plus env are enough
// for a local run.
func Load() (*Root, error) {
	cfg := defaults()

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guesses := []string{
		filepath.Join("config", env, "config.yaml"),
		"config.yaml",
	}
	for _, p := range guesses {
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		err = yaml.NewDecoder(f).Decode(cfg)
		f.Close()
		if err != nil {
			return nil, err
		}
		break
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Root {
	return &Root{
		STT: STT{
			Model:       "en-US_NarrowbandModel",
			ContentType: "audio/wav",
			TimeoutSec:  120,
		},
		NLU: NLU{
			Version:     "2022-04-07",
			TimeoutSec:  15,
			BatchSize:   5,
			CooldownSec: 1,
		},
		Speakers: Speakers{Agent: "Agent", Customer: "Customer"},
		Paths: Paths{
			STTData:     "stt_data",
			NLUData:     "nlu_data",
			RadarData:   "radar_data",
			BackupDir:   "backup",
			SampleAudio: filepath.Join("audio_files", "FSM-Agent-Assist-Combined.wav"),
		},
	}
}

func applyEnv(cfg *Root) {
	cfg.STT.URL = envOr("WATSON_STT_URL", cfg.STT.URL)
	cfg.STT.APIKey = envOr("WATSON_STT_API_KEY", cfg.STT.APIKey)
	cfg.NLU.URL = envOr("WATSON_NLU_URL", cfg.NLU.URL)
	cfg.NLU.APIKey = envOr("WATSON_NLU_API_KEY", cfg.NLU.APIKey)
	cfg.Speakers.Agent = envOr("TRANSCRIPT_SPEAKER_ONE", cfg.Speakers.Agent)
	cfg.Speakers.Customer = envOr("TRANSCRIPT_SPEAKER_TWO", cfg.Speakers.Customer)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func (s STT) Timeout() time.Duration { return time.Duration(s.TimeoutSec) * time.Second }

func (n NLU) Timeout() time.Duration { return time.Duration(n.TimeoutSec) * time.Second }

func (n NLU) Cooldown() time.Duration { return time.Duration(n.CooldownSec) * time.Second }
