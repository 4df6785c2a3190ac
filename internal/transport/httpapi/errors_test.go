package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestErrorWriter_Statuses(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		status    int
		key       string
		logLevel  string
		noMessage bool
	}{
		{"client gone", fmt.Errorf("list products: %w", context.Canceled), StatusClientClosedRequest, KeyRequestCanceled, "level=DEBUG", true},
		{"deadline", fmt.Errorf("list products: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, KeyRequestTimeout, "level=WARN", true},
		{"store down", errors.New("store down"), http.StatusInternalServerError, KeyUnexpected, "level=ERROR", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			ew := errorWriter{logger: bufferLogger(&logs), dev: true}

			rec := httptest.NewRecorder()
			ew.write(rec, httptest.NewRequest(http.MethodGet, "/catalog/products", nil), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var env Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.False(t, env.IsSuccess)
			assert.Equal(t, []string{tc.key}, env.Errors)
			if tc.noMessage {
				assert.Empty(t, env.Message)
			}
			assert.Contains(t, logs.String(), tc.logLevel)
		})
	}
}

func TestErrorWriter_CanceledIsNotLoggedAsFailure(t *testing.T) {
	var logs bytes.Buffer
	ew := errorWriter{logger: bufferLogger(&logs)}

	ew.write(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalog/products", nil), context.Canceled)

	assert.NotContains(t, logs.String(), "level=ERROR")
}
