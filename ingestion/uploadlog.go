package ingestion

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/reviewpipe/core"
)

// uploadLog appends a human-readable line for every received notification.
type uploadLog struct {
	mu     sync.Mutex
	w      io.Writer
	now    func() time.Time
	logger *slog.Logger
}

func newUploadLog(w io.Writer, logger *slog.Logger) *uploadLog {
	return &uploadLog{w: w, now: time.Now, logger: logger}
}

// record writes one line; write errors are logged and otherwise ignored.
func (u *uploadLog) record(n core.Notification) {
	if u == nil || u.w == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	_, err := fmt.Fprintf(u.w, "[%s] File uploaded to bucket: %s, object: %s\n",
		u.now().UTC().Format(time.RFC3339), n.Container, n.Key)
	if err != nil {
		u.logger.Warn("error writing upload log", "err", err)
	}
}
