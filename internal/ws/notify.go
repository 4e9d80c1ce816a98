package ws

import (
	"encoding/json"
	"time"

	"hirematch/internal/domain/job"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventJobsUpdated = "jobs_updated"

type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Notifier publishes posting changes to the hub.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) NotifyJobUpdated(jobID uuid.UUID, status job.Status) {
	if n == nil || n.hub == nil {
		return
	}

	evt := JobsUpdatedEvent{
		Type:      EventJobsUpdated,
		JobID:     jobID.String(),
		Status:    string(status),
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.hub.logger.Warn("WS event encode failed", zap.Error(err))
		return
	}

	n.hub.Broadcast(b)
}
