package events

import (
	"fmt"
	"time"
)

// Notice describes the outcome of one harvest task run.
type Notice struct {
	Task  string    `json:"task"`
	URL   string    `json:"url,omitempty"`
	Added int       `json:"added"`
	Err   string    `json:"err,omitempty"`
	At    time.Time `json:"at"`
}

// Summary renders one human line for the announcement channel.
func (n Notice) Summary() string {
	if n.Err != "" {
		return fmt.Sprintf("%s harvest failed: %s", n.Task, n.Err)
	}
	if n.Added == 1 {
		return fmt.Sprintf("%s harvest stored 1 new record.", n.Task)
	}
	return fmt.Sprintf("%s harvest stored %d new records.", n.Task, n.Added)
}
