package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

func TestHasAccess(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	private := &models.Media{ID: "m1", CreatorID: "A", IsPublic: false}
	public := &models.Media{ID: "m2", CreatorID: "A", IsPublic: true}

	tests := []struct {
		name      string
		subs      []models.Subscription
		creatorID string
		media     *models.Media
		want      bool
	}{
		{
			name:      "active subscription until tomorrow",
			subs:      []models.Subscription{{CreatorID: "A", Status: models.StatusActive, CurrentPeriodEnd: tomorrow}},
			creatorID: "A",
			media:     private,
			want:      true,
		},
		{
			name:      "active subscription expired yesterday",
			subs:      []models.Subscription{{CreatorID: "A", Status: models.StatusActive, CurrentPeriodEnd: yesterday}},
			creatorID: "A",
			media:     private,
			want:      false,
		},
		{
			name:      "period end equal to now is expired",
			subs:      []models.Subscription{{CreatorID: "A", Status: models.StatusActive, CurrentPeriodEnd: now}},
			creatorID: "A",
			media:     private,
			want:      false,
		},
		{
			name:      "canceled subscription",
			subs:      []models.Subscription{{CreatorID: "A", Status: models.StatusCanceled, CurrentPeriodEnd: tomorrow}},
			creatorID: "A",
			media:     private,
			want:      false,
		},
		{
			name:      "past due subscription",
			subs:      []models.Subscription{{CreatorID: "A", Status: models.StatusPastDue, CurrentPeriodEnd: tomorrow}},
			creatorID: "A",
			media:     private,
			want:      false,
		},
		{
			name:      "subscription to another creator",
			subs:      []models.Subscription{{CreatorID: "B", Status: models.StatusActive, CurrentPeriodEnd: tomorrow}},
			creatorID: "A",
			media:     private,
			want:      false,
		},
		{
			name:      "public media without subscriptions",
			subs:      nil,
			creatorID: "A",
			media:     public,
			want:      true,
		},
		{
			name:      "creator level check without media",
			subs:      []models.Subscription{{CreatorID: "A", Status: models.StatusActive, CurrentPeriodEnd: tomorrow}},
			creatorID: "A",
			media:     nil,
			want:      true,
		},
		{
			name: "one of several records is active",
			subs: []models.Subscription{
				{CreatorID: "A", Status: models.StatusCanceled, CurrentPeriodEnd: tomorrow},
				{CreatorID: "A", Status: models.StatusActive, CurrentPeriodEnd: tomorrow},
			},
			creatorID: "A",
			media:     private,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAccess(tt.subs, tt.creatorID, tt.media, now))
		})
	}
}

func TestHasAccess_ReevaluatesClock(t *testing.T) {
	end := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	subs := []models.Subscription{{CreatorID: "A", Status: models.StatusActive, CurrentPeriodEnd: end}}

	assert.True(t, HasAccess(subs, "A", nil, end.Add(-time.Second)))
	assert.False(t, HasAccess(subs, "A", nil, end.Add(time.Second)))
}

func TestActiveCreatorIDs(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	subs := []models.Subscription{
		{CreatorID: "B", Status: models.StatusActive, CurrentPeriodEnd: later},
		{CreatorID: "A", Status: models.StatusCanceled, CurrentPeriodEnd: later},
		{CreatorID: "C", Status: models.StatusActive, CurrentPeriodEnd: now.Add(-time.Hour)},
		{CreatorID: "A", Status: models.StatusActive, CurrentPeriodEnd: later},
		{CreatorID: "B", Status: models.StatusActive, CurrentPeriodEnd: later},
	}

	assert.Equal(t, []string{"B", "A"}, ActiveCreatorIDs(subs, now))
	assert.Empty(t, ActiveCreatorIDs(nil, now))
}
