package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Task is one scheduled harvest source. Type selects the harvester:
// JOBS and EVENTS read RSS feeds, INTERNSHIPS reads a markdown document.
type Task struct {
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	SubType string `yaml:"sub_type"`
}

// Link is a curated resource shown by the static commands.
type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Bot struct {
		ChatID         int64  `yaml:"chat_id"`
		KeyringAccount string `yaml:"keyring_account"`
		ExtractorURL   string `yaml:"extractor_url"`
	} `yaml:"bot"`

	Store struct {
		Path      string `yaml:"path"`
		DedupMode string `yaml:"dedup_mode"` // identity | content
	} `yaml:"store"`

	Harvest struct {
		Cron           string  `yaml:"cron"` // robfig/cron spec, e.g. "@every 6h"
		RequestsPerSec float64 `yaml:"requests_per_sec"`
		Burst          int     `yaml:"burst"`
		Tasks          []Task  `yaml:"tasks"`
	} `yaml:"harvest"`

	Resources   []Link `yaml:"resources"`
	ResumeLinks []Link `yaml:"resume_links"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
