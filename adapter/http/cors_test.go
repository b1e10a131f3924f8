package http

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCORS(t *testing.T) {
	var calls int32
	stub := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusAccepted)
	})
	wrapped := WithCORS(stub)

	testCases := []struct {
		description    string
		method         string
		origin         string
		requestHeaders string
		expectedStatus int
		expectedCalls  int32
		expectedAllow  string
		expectedVary   string
		expectMethods  bool
	}{
		{
			description:    "preflight answered with no content",
			method:         http.MethodOptions,
			expectedStatus: http.StatusNoContent,
			expectedVary:   "Access-Control-Request-Headers",
			expectMethods:  true,
		},
		{
			description:    "preflight reflects requested headers",
			method:         http.MethodOptions,
			origin:         "http://localhost:5173",
			requestHeaders: "Content-Type, X-Trace",
			expectedStatus: http.StatusNoContent,
			expectedAllow:  "Content-Type, X-Trace",
			expectedVary:   "Access-Control-Request-Headers",
			expectMethods:  true,
		},
		{
			description:    "regular request passes through with wildcard origin",
			method:         http.MethodPost,
			origin:         "http://localhost:5173",
			expectedStatus: http.StatusAccepted,
			expectedCalls:  1,
		},
	}

	for _, tc := range testCases {
		atomic.StoreInt32(&calls, 0)
		t.Run(tc.description, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/translate", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.requestHeaders != "" {
				req.Header.Set("Access-Control-Request-Headers", tc.requestHeaders)
			}
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			res := rec.Result()
			assert.EqualValues(t, tc.expectedStatus, res.StatusCode)
			assert.EqualValues(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
			assert.Empty(t, res.Header.Get("Access-Control-Allow-Credentials"))
			assert.EqualValues(t, tc.expectedAllow, res.Header.Get("Access-Control-Allow-Headers"))
			assert.EqualValues(t, tc.expectedVary, res.Header.Get("Vary"))
			if tc.expectMethods {
				assert.EqualValues(t, "GET,HEAD,PUT,PATCH,POST,DELETE", res.Header.Get("Access-Control-Allow-Methods"))
			} else {
				assert.Empty(t, res.Header.Get("Access-Control-Allow-Methods"))
			}
			assert.EqualValues(t, tc.expectedCalls, atomic.LoadInt32(&calls))
		})
	}
	assert.Nil(t, WithCORS(nil))
}

func TestCORS_FixedHeaders(t *testing.T) {
	policy := CORS{Origin: "https://app.xlate.dev", Methods: []string{http.MethodPost}, Headers: []string{"Content-Type"}}
	handler := policy.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/translate", nil)
	req.Header.Set("Access-Control-Request-Headers", "X-Other")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.EqualValues(t, http.StatusNoContent, rec.Code)
	assert.EqualValues(t, "https://app.xlate.dev", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.EqualValues(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.EqualValues(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, rec.Header().Get("Vary"))
}
