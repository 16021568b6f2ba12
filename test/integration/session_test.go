//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndpatients/patients/internal/platform/session"
)

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	store := session.NewRedisStore(globalEnv.Redis, time.Minute)
	require.NoError(t, store.Ping(ctx))

	st := &session.State{}
	st.SelectPatient("p-1", "Patel, Nina")
	st.SelectPatientDiagnosis("pd-1", "Asthma")
	require.NoError(t, store.Save(ctx, "sid-1", st))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, *st, *got)

	ttl, err := globalEnv.Redis.TTL(ctx, "session:sid-1").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, store.Delete(ctx, "sid-1"))
	_, err = store.Get(ctx, "sid-1")
	require.True(t, errors.Is(err, session.ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestRedisSessionStore_Expires(t *testing.T) {
	ctx := context.Background()
	store := session.NewRedisStore(globalEnv.Redis, time.Second)

	require.NoError(t, store.Save(ctx, "sid-short", &session.State{MedicationTypeID: "mt-1"}))
	require.Eventually(t, func() bool {
		_, err := store.Get(ctx, "sid-short")
		return errors.Is(err, session.ErrNotFound)
	}, 5*time.Second, 100*time.Millisecond)
}
