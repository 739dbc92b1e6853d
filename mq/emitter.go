package mq

import (
	"context"
	"encoding/json"
	"log"

	"campuskitchen/models"
	"campuskitchen/rdx"
)

const activityChannel = "activity-events"

// Emit publishes an activity event to Redis for any live dashboard
// listeners. Best-effort; failures are logged, never surfaced.
func Emit(eventName string, activity models.Activity) {
	data, err := json.Marshal(activity)
	if err != nil {
		log.Printf("[Emit] Failed to marshal %s event: %v", eventName, err)
		return
	}
	rdx.Publish(activityChannel, data)
}

// StartActivityWorker consumes published activity events and logs them.
// Runs for the life of the process.
func StartActivityWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, activityChannel)
	ch := sub.Channel()

	log.Println("[ActivityWorker] Listening for activity events...")

	for msg := range ch {
		var event models.Activity
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[ActivityWorker] Failed to parse event: %v", err)
			continue
		}
		log.Printf("[ActivityWorker] %s: %s", event.Type, event.Details)
	}
}
