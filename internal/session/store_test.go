package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

type FetcherMock struct{ mock.Mock }

func (m *FetcherMock) FetchUserSubscriptions(ctx context.Context, viewer Viewer) ([]models.Subscription, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestStore_Subscriptions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	viewer := Viewer{ID: "u1", Role: models.RoleUser, Token: "tkn"}
	subs := []models.Subscription{{ID: "s1", UserID: "u1", CreatorID: "c1", Status: models.StatusActive}}

	fetcher := new(FetcherMock)
	fetcher.On("FetchUserSubscriptions", mock.Anything, viewer).Return(subs, nil).Twice()

	store := NewStore(fetcher, time.Minute, clock.Now, newNoopLogger())

	got, err := store.Subscriptions(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, subs, got)

	got[0].Status = models.StatusCanceled
	again, err := store.Subscriptions(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, again[0].Status, "snapshot must not be mutated through returned slice")

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = store.Subscriptions(context.Background(), viewer)
	require.NoError(t, err)

	fetcher.AssertExpectations(t)
}

func TestStore_AnonymousViewer(t *testing.T) {
	fetcher := new(FetcherMock)
	store := NewStore(fetcher, time.Minute, nil, newNoopLogger())

	got, err := store.Subscriptions(context.Background(), Anonymous())
	require.NoError(t, err)
	assert.Nil(t, got)
	fetcher.AssertNotCalled(t, "FetchUserSubscriptions", mock.Anything, mock.Anything)
}

func TestStore_FetchError(t *testing.T) {
	viewer := Viewer{ID: "u1"}
	fetcher := new(FetcherMock)
	fetcher.On("FetchUserSubscriptions", mock.Anything, viewer).Return(nil, errors.New("upstream down")).Once()

	store := NewStore(fetcher, time.Minute, nil, newNoopLogger())
	_, err := store.Subscriptions(context.Background(), viewer)
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestStore_ResetDuringRefreshDiscardsResult(t *testing.T) {
	viewer := Viewer{ID: "u1"}
	fetcher := new(FetcherMock)
	store := NewStore(fetcher, time.Minute, nil, newNoopLogger())

	fetcher.On("FetchUserSubscriptions", mock.Anything, viewer).
		Run(func(_ mock.Arguments) { store.Reset("u1") }).
		Return([]models.Subscription{{ID: "old"}}, nil).Once()

	_, err := store.Refresh(context.Background(), viewer)
	require.ErrorIs(t, err, ErrStale)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.generations, "generation is kept only while a refresh is running")
	assert.Empty(t, store.inflight)

	fetcher.On("FetchUserSubscriptions", mock.Anything, viewer).
		Return([]models.Subscription{{ID: "new"}}, nil).Once()
	got, err := store.Subscriptions(context.Background(), viewer)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestStore_SubscriptionsRetriesStaleRefresh(t *testing.T) {
	tests := []struct {
		name    string
		resets  int
		wantErr error
	}{
		{name: "single reset is retried", resets: 1},
		{name: "reset on every attempt", resets: 2, wantErr: ErrStale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := Viewer{ID: "u1"}
			fetcher := new(FetcherMock)
			store := NewStore(fetcher, time.Minute, nil, newNoopLogger())

			fetcher.On("FetchUserSubscriptions", mock.Anything, viewer).
				Run(func(_ mock.Arguments) { store.HandleSubscriptionChanged(models.SubscriptionChangedEvent{UserID: "u1"}) }).
				Return([]models.Subscription{{ID: "old"}}, nil).Times(tt.resets)
			if tt.resets < 2 {
				fetcher.On("FetchUserSubscriptions", mock.Anything, viewer).
					Return([]models.Subscription{{ID: "new"}}, nil).Once()
			}

			got, err := store.Subscriptions(context.Background(), viewer)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, store.Len())
			} else {
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, "new", got[0].ID)
			}
			fetcher.AssertExpectations(t)
		})
	}
}

func TestStore_ResetUnknownViewerKeepsNoState(t *testing.T) {
	store := NewStore(new(FetcherMock), time.Minute, nil, newNoopLogger())

	for _, id := range []string{"u1", "u2", "u3"} {
		store.HandleSubscriptionChanged(models.SubscriptionChangedEvent{UserID: id})
	}
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.generations)
	assert.Empty(t, store.inflight)
}

func TestStore_Prune(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	fetcher := new(FetcherMock)
	store := NewStore(fetcher, time.Minute, clock.Now, newNoopLogger())

	old := Viewer{ID: "old"}
	fresh := Viewer{ID: "fresh"}
	fetcher.On("FetchUserSubscriptions", mock.Anything, mock.Anything).Return([]models.Subscription{}, nil)

	_, err := store.Subscriptions(context.Background(), old)
	require.NoError(t, err)
	clock.t = clock.t.Add(45 * time.Second)
	_, err = store.Subscriptions(context.Background(), fresh)
	require.NoError(t, err)
	clock.t = clock.t.Add(30 * time.Second)

	assert.Equal(t, 1, store.Prune())
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 0, store.Prune())
}

func TestStore_CanceledContextStoresNothing(t *testing.T) {
	viewer := Viewer{ID: "u1"}
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := new(FetcherMock)
	fetcher.On("FetchUserSubscriptions", mock.Anything, viewer).
		Run(func(_ mock.Arguments) { cancel() }).
		Return([]models.Subscription{{ID: "s1"}}, nil).Once()

	store := NewStore(fetcher, time.Minute, nil, newNoopLogger())
	_, err := store.Refresh(ctx, viewer)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Len())
}

func TestStore_HandleSubscriptionChanged(t *testing.T) {
	viewer := Viewer{ID: "u1"}
	fetcher := new(FetcherMock)
	fetcher.On("FetchUserSubscriptions", mock.Anything, viewer).Return([]models.Subscription{}, nil).Once()

	store := NewStore(fetcher, time.Hour, nil, newNoopLogger())
	_, err := store.Subscriptions(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	store.HandleSubscriptionChanged(models.SubscriptionChangedEvent{UserID: ""})
	assert.Equal(t, 1, store.Len())

	store.HandleSubscriptionChanged(models.SubscriptionChangedEvent{UserID: "u1"})
	assert.Equal(t, 0, store.Len())
}

func TestViewer(t *testing.T) {
	anon := FromContext(context.Background())
	assert.False(t, anon.IsAuthenticated())
	assert.False(t, anon.Owns(""))

	v := Viewer{ID: "c1", Role: models.RoleCreator}
	ctx := WithViewer(context.Background(), v)
	got := FromContext(ctx)
	assert.Equal(t, v, got)
	assert.True(t, got.IsCreator())
	assert.True(t, got.Owns("c1"))
	assert.False(t, got.Owns("c2"))
}
