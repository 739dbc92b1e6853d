package models

import "time"

// Activity is an append-only audit record shown on the admin dashboard.
type Activity struct {
	ActivityID  string            `json:"activityid" bson:"activityid"`
	UserID      string            `json:"userid" bson:"userid"`
	Type        string            `json:"type" bson:"type"`
	Details     string            `json:"details" bson:"details"`
	UserDetails *OrderUserDetails `json:"userDetails,omitempty" bson:"userDetails,omitempty"`
	Metadata    map[string]any    `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp" bson:"timestamp"`
}

// Feedback is a customer rating and comment about the storefront.
type Feedback struct {
	FeedbackID string    `json:"feedbackid" bson:"feedbackid"`
	UserID     string    `json:"userid" bson:"userid"`
	Rating     int       `json:"rating" bson:"rating"`
	Message    string    `json:"message" bson:"message"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
