package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, string, any) error {
	f.calls++
	return errors.New("nats down")
}
func (f *failingPublisher) Close() {}

func TestRecorder_BySubject(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()
	require.NoError(t, r.Publish(ctx, SubjectApplicationCreated, ApplicationCreated{ApplicationID: "a1"}))
	require.NoError(t, r.Publish(ctx, SubjectApplicationStatusChanged, ApplicationStatusChanged{ApplicationID: "a1", To: "SHORTLISTED"}))

	created := r.BySubject(SubjectApplicationCreated)
	require.Len(t, created, 1)
	assert.Equal(t, "a1", created[0].Payload.(ApplicationCreated).ApplicationID)
	assert.Len(t, r.Events(), 2)
}

func TestEmit_SwallowsErrors(t *testing.T) {
	p := &failingPublisher{}
	assert.NotPanics(t, func() {
		Emit(context.Background(), p, SubjectJobOrdersExpired, JobOrdersExpired{Count: 1})
		Emit(context.Background(), nil, SubjectJobOrdersExpired, nil)
	})
	assert.Equal(t, 1, p.calls)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), SubjectApplicationCreated, nil))
}

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "recruit", 100*time.Millisecond)
	assert.Error(t, err)
}
