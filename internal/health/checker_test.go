package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blood-disease-chatbot/internal/cache"
	"github.com/blood-disease-chatbot/internal/prediction"
	"github.com/blood-disease-chatbot/internal/session"
)

type MockCheck struct {
	mock.Mock
	name string
}

func (m *MockCheck) Name() string {
	return m.name
}

func (m *MockCheck) Check(ctx context.Context) ComponentHealth {
	args := m.Called(ctx)
	return args.Get(0).(ComponentHealth)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestNewCheckerDefaults(t *testing.T) {
	h := NewChecker(Config{}, quietLogger())

	assert.Equal(t, 30*time.Second, h.config.CheckInterval)
	assert.Equal(t, 5*time.Second, h.config.Timeout)
	assert.Equal(t, "1.0.0", h.config.Version)
	assert.Equal(t, StateUnknown, h.Status().Overall)
}

func TestRunAggregatesStates(t *testing.T) {
	tests := []struct {
		name     string
		states   []State
		expected State
	}{
		{"all healthy", []State{StateHealthy, StateHealthy}, StateHealthy},
		{"one warning", []State{StateHealthy, StateWarning}, StateWarning},
		{"unhealthy wins", []State{StateWarning, StateUnhealthy}, StateUnhealthy},
		{"no checks", nil, StateHealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewChecker(Config{}, quietLogger())
			var mocks []*MockCheck
			for i, s := range tt.states {
				m := &MockCheck{name: string(rune('a' + i))}
				m.On("Check", mock.Anything).Return(ComponentHealth{Status: s})
				h.Register(m)
				mocks = append(mocks, m)
			}

			status := h.Run(context.Background())
			assert.Equal(t, tt.expected, status.Overall)
			assert.Len(t, status.Components, len(tt.states))
			assert.Equal(t, int64(1), status.CheckCount)
			for _, m := range mocks {
				m.AssertExpectations(t)
			}
		})
	}
}

func TestSlowCheckIsWarning(t *testing.T) {
	h := NewChecker(Config{MaxLatency: time.Millisecond}, quietLogger())
	h.Register(Func("slow", func(ctx context.Context) (map[string]interface{}, error) {
		time.Sleep(10 * time.Millisecond)
		return nil, nil
	}))

	status := h.Run(context.Background())
	assert.Equal(t, StateWarning, status.Overall)
	assert.Equal(t, "slow response", status.Components["slow"].Message)
}

func TestFuncCheckError(t *testing.T) {
	c := Func("broken", func(ctx context.Context) (map[string]interface{}, error) {
		return nil, errors.New("connection refused")
	})

	result := c.Check(context.Background())
	assert.Equal(t, StateUnhealthy, result.Status)
	assert.Equal(t, "connection refused", result.Error)
}

func TestComponentChecks(t *testing.T) {
	sessions, err := session.NewMemoryStore(10, time.Hour)
	require.NoError(t, err)
	answers, err := cache.New(cache.Config{})
	require.NoError(t, err)

	h := NewChecker(Config{}, quietLogger())
	h.Register(SessionCheck(sessions))
	h.Register(PredictionCheck(prediction.NewSeededMemoryStore(time.Now())))
	h.Register(CacheCheck(answers))

	status := h.Run(context.Background())
	assert.Equal(t, StateHealthy, status.Overall)
	assert.Equal(t, 0, status.Components["sessions"].Metadata["active_sessions"])
	assert.Equal(t, true, status.Components["predictions"].Metadata["has_history"])
	assert.Contains(t, status.Components, "answer_cache")
}

func TestHTTPHandler(t *testing.T) {
	h := NewChecker(Config{DetailedResponse: true}, quietLogger())
	h.Register(Func("down", func(ctx context.Context) (map[string]interface{}, error) {
		return nil, errors.New("gone")
	}))

	rec := httptest.NewRecorder()
	h.HTTPHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StateUnhealthy, body.Overall)
	assert.Equal(t, "gone", body.Components["down"].Error)
}

func TestStartStop(t *testing.T) {
	h := NewChecker(Config{CheckInterval: 5 * time.Millisecond}, quietLogger())
	h.Register(Func("ok", func(ctx context.Context) (map[string]interface{}, error) { return nil, nil }))

	h.Start()
	require.Eventually(t, func() bool { return h.Status().CheckCount >= 2 }, time.Second, 5*time.Millisecond)
	h.Stop()
	h.Stop()
}
