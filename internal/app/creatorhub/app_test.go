package creatorhub

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/session"
	"github.com/magabrotheeeer/creator-hub/internal/upload"
)

type staticFetcher struct{}

func (staticFetcher) FetchUserSubscriptions(context.Context, session.Viewer) ([]models.Subscription, error) {
	return []models.Subscription{}, nil
}

func TestApp_SweepReleasesIdleState(t *testing.T) {
	registry := upload.NewRegistry(upload.NewValidator(upload.DefaultLimits(), nil), nil)
	store := session.NewStore(staticFetcher{}, time.Millisecond, nil, sl.Discard())

	preview, err := upload.NewStager(t.TempDir(), 0).Stage("a.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	reason, err := registry.Get("c1").Add(context.Background(), []*upload.Preview{preview})
	require.NoError(t, err)
	require.Empty(t, reason)

	_, err = store.Subscriptions(context.Background(), session.Viewer{ID: "u1"})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	app := &App{
		logger:     sl.Discard(),
		registry:   registry,
		store:      store,
		sweepEvery: 5 * time.Millisecond,
		batchIdle:  time.Millisecond,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.sweep(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return registry.Len() == 0 && store.Len() == 0
	}, time.Second, 5*time.Millisecond)

	_, err = os.Stat(preview.File.Path)
	assert.True(t, os.IsNotExist(err))

	cancel()
	<-done
}
