package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrahamMcBain/urit/internal/middleware"
	"github.com/GrahamMcBain/urit/internal/testutil"
)

func chain(h http.Handler, panicHandler middleware.PanicHandler) http.Handler {
	logger := testutil.NopLogger()
	return middleware.Logging(logger)(middleware.Recovery(logger, panicHandler)(h))
}

func teapot(w http.ResponseWriter, _ *http.Request, _ any) {
	w.WriteHeader(http.StatusTeapot)
}

func TestLoggingAssignsRequestID(t *testing.T) {
	var seen string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestID(r.Context())
	}), teapot)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rr.Header().Get(middleware.RequestIDHeader))
}

func TestLoggingKeepsValidIncomingRequestID(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), teapot)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, id, rr.Header().Get(middleware.RequestIDHeader))

	// Anything that is not a uuid is replaced
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "../../etc/passwd")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.NotEqual(t, "../../etc/passwd", rr.Header().Get(middleware.RequestIDHeader))
}

func TestRecoveryWritesPanicResponse(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), teapot)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRecoverySkipsStartedResponse(t *testing.T) {
	called := false
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("boom")
	}), func(http.ResponseWriter, *http.Request, any) { called = true })

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestRecoveryReraisesAbort(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}), teapot)

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
