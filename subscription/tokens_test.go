package subscription

import (
	"testing"
	"time"

	"campuskitchen/apperr"
	"campuskitchen/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC)

func activeSub(planID string, grant int) *models.Subscription {
	p, _ := PlanByID(planID)
	return &models.Subscription{
		Plan:       p.Name,
		PlanID:     p.ID,
		TokenGrant: grant,
		StartDate:  now.AddDate(0, 0, -2),
		EndDate:    now.AddDate(0, 0, 5),
		Active:     true,
	}
}

func TestPlanByID(t *testing.T) {
	p, ok := PlanByID("biweekly")
	require.True(t, ok)
	assert.Equal(t, 1299.0, p.Price)
	assert.Equal(t, 15, p.TokenGrant)
	assert.Equal(t, 15, p.Days)

	_, ok = PlanByID("yearly")
	assert.False(t, ok)
}

func TestApplyPurchaseFreshSetsBalanceToGrant(t *testing.T) {
	user := models.User{Tokens: 0}
	plan, _ := PlanByID("weekly")

	ApplyPurchase(&user, plan, now)

	assert.Equal(t, 7, user.Tokens)
	require.NotNil(t, user.Subscription)
	assert.True(t, user.Subscription.Active)
	assert.False(t, user.Subscription.HasExtended)
	assert.Equal(t, now.Add(7*24*time.Hour), user.Subscription.EndDate)
}

func TestApplyPurchaseTopUpOnPlanSwitch(t *testing.T) {
	// 3 tokens left on an active weekly plan, upgrading to bi-weekly:
	// balance becomes 3 + (15 - 7) = 11, not 15.
	user := models.User{Tokens: 3, Subscription: activeSub("weekly", 7)}
	plan, _ := PlanByID("biweekly")

	ApplyPurchase(&user, plan, now)

	assert.Equal(t, 11, user.Tokens)
	assert.Equal(t, "biweekly", user.Subscription.PlanID)
	assert.Equal(t, 15, user.Subscription.TokenGrant)
}

func TestApplyPurchaseTopUpFloorsAtZero(t *testing.T) {
	// Downgrading monthly -> weekly with a low balance would go negative;
	// the ledger floors at zero instead.
	user := models.User{Tokens: 2, Subscription: activeSub("monthly", 30)}
	plan, _ := PlanByID("weekly")

	ApplyPurchase(&user, plan, now)

	assert.Equal(t, 0, user.Tokens)
}

func TestApplyPurchaseSamePlanResetsBalance(t *testing.T) {
	user := models.User{Tokens: 3, Subscription: activeSub("weekly", 7)}
	plan, _ := PlanByID("weekly")

	ApplyPurchase(&user, plan, now)

	assert.Equal(t, 7, user.Tokens)
}

func TestApplyPurchaseExpiredSubscriptionResetsBalance(t *testing.T) {
	sub := activeSub("weekly", 7)
	sub.Active = false
	user := models.User{Tokens: 3, Subscription: sub}
	plan, _ := PlanByID("biweekly")

	ApplyPurchase(&user, plan, now)

	assert.Equal(t, 15, user.Tokens, "inactive subscription means fresh purchase, not top-up")
}

func TestConsumeOneToken(t *testing.T) {
	user := models.User{Tokens: 2, Subscription: activeSub("weekly", 7)}

	assert.True(t, ConsumeOneToken(&user))
	assert.Equal(t, 1, user.Tokens)

	user.Tokens = 0
	assert.False(t, ConsumeOneToken(&user))
	assert.Equal(t, 0, user.Tokens, "never goes negative")

	noSub := models.User{Tokens: 5}
	assert.False(t, ConsumeOneToken(&noSub))
	assert.Equal(t, 5, noSub.Tokens)
}

func TestRefreshLazyExpiry(t *testing.T) {
	sub := activeSub("weekly", 7)
	sub.EndDate = now.AddDate(0, 0, -1)
	user := models.User{Tokens: 4, Subscription: sub}

	changed := Refresh(user.Subscription, now)

	assert.True(t, changed)
	assert.False(t, user.Subscription.Active)
	assert.Equal(t, 4, user.Tokens, "expiry never touches the balance")

	// second read is a no-op
	assert.False(t, Refresh(user.Subscription, now))
}

func TestRefreshActiveSubscriptionUntouched(t *testing.T) {
	sub := activeSub("weekly", 7)

	assert.False(t, Refresh(sub, now))
	assert.True(t, sub.Active)

	assert.False(t, Refresh(nil, now))
}

func TestExtendOnce(t *testing.T) {
	sub := activeSub("monthly", 30)
	originalEnd := sub.EndDate

	require.NoError(t, Extend(sub))
	assert.Equal(t, originalEnd.AddDate(0, 2, 0), sub.EndDate)
	assert.True(t, sub.HasExtended)
	assert.True(t, sub.Active)

	err := Extend(sub)
	ae := apperr.As(err)
	assert.Equal(t, apperr.KindStateConflict, ae.Kind)
	assert.Equal(t, "AlreadyExtended", ae.Reason)
	assert.Equal(t, originalEnd.AddDate(0, 2, 0), sub.EndDate, "second extend changes nothing")
}

func TestExtendReactivatesExpired(t *testing.T) {
	sub := activeSub("weekly", 7)
	sub.EndDate = now.AddDate(0, 0, -1)
	Refresh(sub, now)
	require.False(t, sub.Active)

	require.NoError(t, Extend(sub))
	assert.True(t, sub.Active)
}

func TestExtendWithoutSubscription(t *testing.T) {
	err := Extend(nil)
	ae := apperr.As(err)
	assert.Equal(t, apperr.KindNotFound, ae.Kind)
}
