package subscription

import (
	"time"

	"campuskitchen/apperr"
	"campuskitchen/models"
)

// Plan is a purchasable token grant. Prices are INR.
type Plan struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	Days       int      `json:"days"`
	TokenGrant int      `json:"tokens"`
	Features   []string `json:"features"`
}

var plans = []Plan{
	{
		ID: "weekly", Name: "Weekly", Price: 699, Days: 7, TokenGrant: 7,
		Features: []string{"7 meal tokens", "Valid for 7 days"},
	},
	{
		ID: "biweekly", Name: "Bi-Weekly", Price: 1299, Days: 15, TokenGrant: 15,
		Features: []string{"15 meal tokens", "Valid for 15 days", "Save 7% compared to weekly plan"},
	},
	{
		ID: "monthly", Name: "Monthly", Price: 2499, Days: 30, TokenGrant: 30,
		Features: []string{"30 meal tokens", "Valid for 30 days", "Save 12% compared to weekly plan"},
	},
}

// Plans lists the purchasable subscription plans.
func Plans() []Plan {
	return plans
}

// PlanByID returns the plan with the given id.
func PlanByID(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// ApplyPurchase records a confirmed plan purchase on the user. Switching
// plans while one is still active tops up the balance by the grant
// difference instead of replacing it; a fresh purchase sets the balance to
// the grant.
func ApplyPurchase(user *models.User, plan Plan, now time.Time) {
	topUp := user.Subscription != nil &&
		user.Subscription.Active &&
		user.Subscription.PlanID != plan.ID

	if topUp {
		user.Tokens += plan.TokenGrant - user.Subscription.TokenGrant
		if user.Tokens < 0 {
			user.Tokens = 0
		}
	} else {
		user.Tokens = plan.TokenGrant
	}

	user.Subscription = &models.Subscription{
		Plan:        plan.Name,
		PlanID:      plan.ID,
		TokenGrant:  plan.TokenGrant,
		StartDate:   now,
		EndDate:     now.Add(time.Duration(plan.Days) * 24 * time.Hour),
		Active:      true,
		HasExtended: false,
	}
}

// ConsumeOneToken decrements the balance by one. Returns false without
// mutating anything when the user has no tokens or no active subscription.
func ConsumeOneToken(user *models.User) bool {
	if user.Tokens <= 0 || user.Subscription == nil || !user.Subscription.Active {
		return false
	}
	user.Tokens--
	return true
}

// Refresh performs lazy expiry: an active subscription whose end date has
// passed is flipped inactive. Returns true when a change was made. Token
// balances are left untouched. Expiry is only ever detected here, on read;
// nothing runs in the background.
func Refresh(sub *models.Subscription, now time.Time) bool {
	if sub == nil || !sub.Active {
		return false
	}
	if sub.EndDate.Before(now) {
		sub.Active = false
		return true
	}
	return false
}

// Extend pushes the end date out by two months and reactivates the
// subscription. Allowed once per subscription.
func Extend(sub *models.Subscription) error {
	if sub == nil {
		return apperr.NotFound("NoSubscription", "No subscription to extend")
	}
	if sub.HasExtended {
		return apperr.Conflict("AlreadyExtended", "Subscription has already been extended")
	}
	sub.EndDate = sub.EndDate.AddDate(0, 2, 0)
	sub.Active = true
	sub.HasExtended = true
	return nil
}
