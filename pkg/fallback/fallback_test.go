package fallback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTransport = errors.New("connection refused")
	errApp       = errors.New("conflict")
)

func isTransport(err error) bool {
	return errors.Is(err, errTransport)
}

func TestDo_RemoteSuccess(t *testing.T) {
	localCalled := false

	got, source, err := Do(context.Background(),
		func(ctx context.Context) (string, error) { return "remote", nil },
		func() (string, error) {
			localCalled = true
			return "local", nil
		},
		isTransport,
	)

	require.NoError(t, err)
	assert.Equal(t, "remote", got)
	assert.Equal(t, SourceRemote, source)
	assert.False(t, localCalled, "local must not run when remote succeeds")
}

func TestDo_TransportErrorFallsBack(t *testing.T) {
	got, source, err := Do(context.Background(),
		func(ctx context.Context) (string, error) { return "", errTransport },
		func() (string, error) { return "local", nil },
		isTransport,
	)

	require.NoError(t, err)
	assert.Equal(t, "local", got)
	assert.Equal(t, SourceLocal, source)
}

func TestDo_AppErrorPropagates(t *testing.T) {
	localCalled := false

	_, _, err := Do(context.Background(),
		func(ctx context.Context) (string, error) { return "", errApp },
		func() (string, error) {
			localCalled = true
			return "local", nil
		},
		isTransport,
	)

	assert.ErrorIs(t, err, errApp)
	assert.False(t, localCalled, "app errors must not trigger the local fallback")
}

func TestDo_LocalErrorAfterFallback(t *testing.T) {
	errLocal := errors.New("store corrupted")

	_, _, err := Do(context.Background(),
		func(ctx context.Context) (int, error) { return 0, errTransport },
		func() (int, error) { return 0, errLocal },
		isTransport,
	)

	assert.ErrorIs(t, err, errLocal)
}

type recorderStub struct {
	remoteOps  []string
	outcomes   []string
	fallbacks  []string
	localOps   []string
}

func (r *recorderStub) ObserveRemote(operation, outcome string, duration time.Duration) {
	r.remoteOps = append(r.remoteOps, operation)
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recorderStub) IncFallback(operation string) {
	r.fallbacks = append(r.fallbacks, operation)
}

func (r *recorderStub) IncLocal(operation string) {
	r.localOps = append(r.localOps, operation)
}

func TestDoRecorded_RecordsFallback(t *testing.T) {
	rec := &recorderStub{}

	got, source, err := DoRecorded(context.Background(), "list_fields", rec,
		func(ctx context.Context) (string, error) { return "", errTransport },
		func() (string, error) { return "local", nil },
		isTransport,
	)

	require.NoError(t, err)
	assert.Equal(t, "local", got)
	assert.Equal(t, SourceLocal, source)
	assert.Equal(t, []string{"list_fields"}, rec.remoteOps)
	assert.Equal(t, []string{"list_fields"}, rec.fallbacks)
	assert.Equal(t, []string{"list_fields"}, rec.localOps)
}

func TestDoRecorded_NilRecorder(t *testing.T) {
	got, source, err := DoRecorded(context.Background(), "list_fields", nil,
		func(ctx context.Context) (string, error) { return "remote", nil },
		func() (string, error) { return "", errors.New("unused") },
		isTransport,
	)

	require.NoError(t, err)
	assert.Equal(t, "remote", got)
	assert.Equal(t, SourceRemote, source)
}
