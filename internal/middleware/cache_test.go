package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureWriterTruncatesBufferNotClient(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	n, err := cw.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	// The client sees the full body; only the capture is bounded.
	assert.Equal(t, "0123456789", rec.Body.String())
	assert.Equal(t, "0123", cw.buf.String())
	assert.Equal(t, int64(10), cw.size)
}

func TestCacheableSkipsTruncatedResponses(t *testing.T) {
	// A response that outgrew the capture limit must not be stored:
	// replaying the truncated buffer would hand out a cut-off body.
	assert.False(t, cacheable(http.StatusOK, 10, 4))
	assert.True(t, cacheable(http.StatusOK, 4, 4))
	assert.True(t, cacheable(http.StatusOK, 10, 0)) // no limit configured
	assert.False(t, cacheable(http.StatusInternalServerError, 2, 4))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, string(body))
}
