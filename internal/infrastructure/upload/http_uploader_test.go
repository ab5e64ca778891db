package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTPUploader_Success(t *testing.T) {
	var (
		gotName string
		gotBody string
		gotID   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotName = hdr.Filename
		gotBody = string(data)
		gotID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "image", 5*time.Second)
	res, err := u.Upload(context.Background(), "shot.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Equal(t, "jpeg-bytes", gotBody)
	require.Equal(t, res.ID, gotID)
	require.True(t, strings.HasPrefix(gotName, "shot-"))
	require.True(t, strings.HasSuffix(gotName, ".jpg"))
}

func TestHTTPUploader_FailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "", time.Second)
	require.Equal(t, DefaultField, u.Field)

	res, err := u.Upload(context.Background(), "", []byte("x"))
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Contains(t, res.Message, "500")
}

func TestHTTPUploader_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPUploader(url, "", time.Second).Upload(context.Background(), "a.jpg", []byte("x"))
	require.Error(t, err)
}

func TestHTTPUploader_Validation(t *testing.T) {
	_, err := NewHTTPUploader("", "", time.Second).Upload(context.Background(), "a.jpg", []byte("x"))
	require.Error(t, err)

	_, err = NewHTTPUploader("http://example.invalid", "", time.Second).Upload(context.Background(), "a.jpg", nil)
	require.Error(t, err)
}

func TestUniqueName(t *testing.T) {
	require.Equal(t, "capture-42.jpg", uniqueName("", "42"))
	require.Equal(t, "photo-42.png", uniqueName("dir/photo.png", "42"))
}
