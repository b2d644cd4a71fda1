package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("session-1", "secret", time.Hour)
	require.NoError(t, err)

	sid, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "session-1", sid)
}

func TestToken_Rejected(t *testing.T) {
	token, err := GenerateToken("session-1", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateToken("session-1", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("garbage", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	_, err := GenerateToken("session-1", "", time.Hour)
	assert.Error(t, err)
}

func TestCall_Success(t *testing.T) {
	got, err := Call(context.Background(), time.Second, "answer", func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestCall_Failure(t *testing.T) {
	sentinel := errors.New("boom")
	_, err := Call(context.Background(), time.Second, "explode", func(ctx context.Context) (int, error) {
		return 0, sentinel
	})

	var ce *CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, CallFailed, ce.Kind)
	assert.Equal(t, "explode", ce.Op)
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, IsTimeout(err))
}

func TestCall_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	_, err := Call(context.Background(), 10*time.Millisecond, "slow", func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	})
	assert.True(t, IsTimeout(err))
}

func TestCall_TimeoutReleasesWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := Call(context.Background(), 10*time.Millisecond, "slow", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	assert.True(t, IsTimeout(err))
}

func TestAwait_ResultAtDeadlineWins(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	for i := 0; i < 100; i++ {
		done := make(chan callResult[string], 1)
		done <- callResult[string]{val: "stored"}

		got, err := await(ctx, "append", done)
		require.NoError(t, err)
		assert.Equal(t, "stored", got)
	}
}

func TestAwait_FailureAtDeadlineKeepsCause(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	sentinel := errors.New("duplicate key")
	done := make(chan callResult[int], 1)
	done <- callResult[int]{err: sentinel}

	_, err := await(ctx, "append", done)
	assert.ErrorIs(t, err, sentinel)
}

func TestCall_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Call(ctx, time.Second, "canceled", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	var ce *CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, CallCanceled, ce.Kind)
}
