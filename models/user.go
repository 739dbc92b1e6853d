package models

import "time"

// Roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleDelivery = "delivery"
)

// Subscription is a time-bounded grant of meal tokens tied to a named plan.
type Subscription struct {
	Plan        string    `json:"plan" bson:"plan"`
	PlanID      string    `json:"planId" bson:"planId"`
	TokenGrant  int       `json:"tokenGrant" bson:"tokenGrant"`
	StartDate   time.Time `json:"startDate" bson:"startDate"`
	EndDate     time.Time `json:"endDate" bson:"endDate"`
	Active      bool      `json:"active" bson:"active"`
	HasExtended bool      `json:"hasExtended" bson:"hasExtended"`
}

type User struct {
	UserID        string        `json:"userid" bson:"userid"`
	Username      string        `json:"username" bson:"username"`
	Email         string        `json:"email" bson:"email"`
	Name          string        `json:"name,omitempty" bson:"name,omitempty"`
	Phone         string        `json:"phone,omitempty" bson:"phone,omitempty"`
	Password      string        `json:"password,omitempty" bson:"password"`
	Role          string        `json:"role" bson:"role"`
	Tokens        int           `json:"tokens" bson:"tokens"`
	Subscription  *Subscription `json:"subscription,omitempty" bson:"subscription,omitempty"`
	RefreshToken  string        `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time     `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time     `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
}
