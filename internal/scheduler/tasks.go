package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskWebhookDelivery posts a prepared JSON body to an automation webhook.
const TaskWebhookDelivery = "webhooks.deliver"

// WebhookDeliveryPayload is everything the worker needs to retry a delivery
// without touching the lead store.
type WebhookDeliveryPayload struct {
	Kind string          `json:"kind"`
	URL  string          `json:"url"`
	Body json.RawMessage `json:"body"`
	// Ref identifies the source record (lead ID or alert event ID) in logs.
	Ref string `json:"ref"`
}

func NewWebhookDeliveryTask(payload WebhookDeliveryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWebhookDelivery, data), nil
}

func ParseWebhookDeliveryPayload(task *asynq.Task) (WebhookDeliveryPayload, error) {
	var payload WebhookDeliveryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return WebhookDeliveryPayload{}, err
	}
	return payload, nil
}
