package health

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_AllHealthy(t *testing.T) {
	h := NewChecker(logrus.New())
	h.Register("backend", func(ctx context.Context) error { return nil })
	h.Register("redis", func(ctx context.Context) error { return nil })

	report := h.CheckAll(context.Background())

	assert.Equal(t, StatusHealthy, report.Status)
	require.Len(t, report.Services, 2)
	assert.Equal(t, "backend", report.Services[0].Name)
	assert.Equal(t, "redis", report.Services[1].Name)
}

func TestChecker_OneFailureMakesOverallUnhealthy(t *testing.T) {
	h := NewChecker(logrus.New())
	h.Register("backend", func(ctx context.Context) error { return errors.New("connection refused") })
	h.Register("postgresql", func(ctx context.Context) error { return nil })

	report := h.CheckAll(context.Background())

	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Equal(t, StatusUnhealthy, report.Services[0].Status)
	assert.Equal(t, "connection refused", report.Services[0].Error)
	assert.Equal(t, StatusHealthy, report.Services[1].Status)
}

func TestChecker_NoChecksIsHealthy(t *testing.T) {
	report := NewChecker(logrus.New()).CheckAll(context.Background())

	assert.Equal(t, StatusHealthy, report.Status)
	assert.Empty(t, report.Services)
}

func TestChecker_RegisterReplaces(t *testing.T) {
	h := NewChecker(logrus.New())
	h.Register("backend", func(ctx context.Context) error { return errors.New("down") })
	h.Register("backend", func(ctx context.Context) error { return nil })

	report := h.CheckAll(context.Background())

	require.Len(t, report.Services, 1)
	assert.Equal(t, StatusHealthy, report.Status)
}
