package messaging

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/clubboard/internal/store"
)

// Change is the body published when a cached resource is replaced.
type Change struct {
	Resource  store.Resource `json:"resource"`
	ChangedAt time.Time      `json:"changed_at"`
}

// Subscribable is the store's listener registration.
type Subscribable interface {
	Subscribe(fn store.Listener) (unsubscribe func())
}

// Notifier publishes a Change to "<prefix>.<resource>" for every store update.
type Notifier struct {
	pub    Publisher
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// NewNotifier creates a notifier. An empty prefix publishes to the bare
// resource name.
func NewNotifier(pub Publisher, prefix string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		pub:    pub,
		prefix: strings.TrimSuffix(prefix, "."),
		logger: logger,
		now:    time.Now,
	}
}

// Attach subscribes the notifier to s and returns the unsubscribe func.
func (n *Notifier) Attach(s Subscribable) func() {
	return s.Subscribe(n.Notify)
}

// Subject returns the subject a resource's changes go to.
func (n *Notifier) Subject(r store.Resource) string {
	if n.prefix == "" {
		return string(r)
	}
	return n.prefix + "." + string(r)
}

// Notify publishes one change. Failures are logged; the store never sees them.
func (n *Notifier) Notify(r store.Resource) {
	payload, err := json.Marshal(Change{Resource: r, ChangedAt: n.now().UTC()})
	if err != nil {
		n.logger.Warn("encode change", "resource", r, "error", err)
		return
	}
	if err := n.pub.Publish(n.Subject(r), payload); err != nil {
		n.logger.Warn("publish change", "resource", r, "subject", n.Subject(r), "error", err)
	}
}
