package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults, trims the task list, and reports
// anything that would make the bot come up in a useless state.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.DataDir == "" {
		out.App.DataDir = "."
	}
	if out.Store.Path == "" {
		out.Store.Path = "records.csv"
	}
	if out.Store.DedupMode == "" {
		out.Store.DedupMode = "identity"
	}
	if out.Harvest.Cron == "" {
		out.Harvest.Cron = "@every 6h"
	}
	if out.Harvest.RequestsPerSec <= 0 {
		out.Harvest.RequestsPerSec = 1.0
	}
	if out.Harvest.Burst <= 0 {
		out.Harvest.Burst = 2
	}

	switch out.Store.DedupMode {
	case "identity", "content":
	default:
		res.addErr("store.dedup_mode must be identity or content, got %q", out.Store.DedupMode)
	}

	if out.Bot.ChatID == 0 {
		res.addErr("bot.chat_id is required (or set TELEGRAM_CHAT_ID)")
	}

	var tasks []Task
	for i, t := range out.Harvest.Tasks {
		typ := strings.ToUpper(strings.TrimSpace(t.Type))
		url := strings.TrimSpace(t.URL)

		switch typ {
		case "JOBS", "EVENTS", "INTERNSHIPS":
		default:
			res.addErr("harvest.tasks[%d].type must be JOBS, EVENTS, or INTERNSHIPS, got %q", i, t.Type)
			continue
		}
		if url == "" {
			res.addErr("harvest.tasks[%d].url is required", i)
			continue
		}
		tasks = append(tasks, Task{Type: typ, URL: url, SubType: strings.TrimSpace(t.SubType)})
	}
	out.Harvest.Tasks = tasks

	if len(out.Harvest.Tasks) == 0 {
		res.addWarn("no harvest tasks configured; the bot will only serve existing store content")
	}
	if len(out.Resources) == 0 {
		res.addWarn("resources list is empty; the resources command will have nothing to show")
	}

	return out, res
}
