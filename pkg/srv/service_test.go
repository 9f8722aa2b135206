package srv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	name  string
	order *[]string
	err   error
}

func (s *recordingService) Start(ctx context.Context) error { return nil }

func (s *recordingService) Shutdown(ctx context.Context) error {
	*s.order = append(*s.order, s.name)
	return s.err
}

func TestStopServices_ReverseOrder(t *testing.T) {
	var order []string
	services := []Service{
		&recordingService{name: "first", order: &order},
		&recordingService{name: "second", order: &order, err: errors.New("boom")},
		&recordingService{name: "third", order: &order},
	}

	StopServices(context.Background(), services)

	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestGo_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	Go(context.Background(), "panicker", func() {
		defer close(done)
		panic("unexpected")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not finish")
	}
}

func TestCleanup_RunsOnShutdown(t *testing.T) {
	called := false
	svc := NewCleanup(func() error {
		called = true
		return nil
	})

	require.NoError(t, svc.Start(context.Background()))
	require.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)
}
