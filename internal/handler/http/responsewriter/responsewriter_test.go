package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_DefaultsToOK(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 0, w.BytesWritten())
}

func TestWriteHeader_RecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, w.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteHeader_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, w.StatusCode())
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWrite_ImpliesOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte(`{"articles":[]}`))
	require.NoError(t, err)

	assert.Equal(t, 15, n)
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWrite_AccumulatesBytes(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	_, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, 11, w.BytesWritten())
}

func TestWrite_AfterExplicitStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusBadRequest)
	_, err := w.Write([]byte(`{"error":"invalid limit"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.StatusCode())
	assert.Equal(t, `{"error":"invalid limit"}`, rec.Body.String())
}

func TestUnwrap_ReturnsUnderlyingWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	assert.Same(t, http.ResponseWriter(rec), w.Unwrap())
}

func TestWrap_UsableAsHandlerWriter(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("queued"))
	})

	rec := httptest.NewRecorder()
	w := Wrap(rec)
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/articles/sync", nil))

	assert.Equal(t, http.StatusAccepted, w.StatusCode())
	assert.Equal(t, 6, w.BytesWritten())
}
