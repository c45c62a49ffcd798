package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskListingExpiry = "listings.expiry"

// ListingExpiryPayload identifies who asked for the expiry sweep.
type ListingExpiryPayload struct {
	Reason string `json:"reason"`
}

func NewListingExpiryTask(payload ListingExpiryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskListingExpiry, data), nil
}

func ParseListingExpiryPayload(task *asynq.Task) (ListingExpiryPayload, error) {
	var payload ListingExpiryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ListingExpiryPayload{}, err
	}
	return payload, nil
}
