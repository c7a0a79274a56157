package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// OverlayEnv applies environment overrides on top of the YAML config.
// A .env file is loaded when present; real environment variables win
// either way. The keys match what the deployment scripts already export.
func OverlayEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("[config] ignoring invalid TELEGRAM_CHAT_ID: %v", err)
		} else {
			cfg.Bot.ChatID = id
		}
	}

	if v := os.Getenv("CLUBBOT_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("EXTRACTOR_URL"); v != "" {
		cfg.Bot.ExtractorURL = v
	}

	// TASK_TYPE plus its URL variable narrows the harvest to a single
	// source, the way the original scheduled runner was invoked.
	taskType := strings.ToUpper(strings.TrimSpace(os.Getenv("TASK_TYPE")))
	if taskType == "" {
		return
	}

	urlVar := map[string]string{
		"JOBS":        "JOBS_RSS_URL",
		"EVENTS":      "EVENTS_RSS_URL",
		"INTERNSHIPS": "INTERNSHIPS_MARKDOWN_URL",
	}[taskType]
	if urlVar == "" {
		log.Printf("[config] unsupported TASK_TYPE %q; keeping configured tasks", taskType)
		return
	}

	url := os.Getenv(urlVar)
	if url == "" {
		log.Printf("[config] TASK_TYPE=%s set but %s is empty; keeping configured tasks", taskType, urlVar)
		return
	}

	cfg.Harvest.Tasks = []Task{{Type: taskType, URL: url}}
}
