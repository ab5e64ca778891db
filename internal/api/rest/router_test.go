package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	app "focus-cam/internal/application"
	"focus-cam/internal/container"
	"focus-cam/internal/domain/entity"
	"focus-cam/internal/infrastructure/bridge"
	"focus-cam/internal/infrastructure/camera"
	"focus-cam/internal/infrastructure/storage"
	"focus-cam/internal/infrastructure/upload"
	"focus-cam/internal/infrastructure/vision"
)

func checkerboard() *image.RGBA {
	w, h := vision.DefaultFrameWidth, vision.DefaultFrameHeight
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

type fixture struct {
	c      *container.Container
	router http.Handler
	remote *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(remote.Close)

	c := container.New(container.Deps{
		Users:     storage.NewMemoryUserRepository(),
		History:   storage.NewMemoryCaptureRepository(),
		Source:    camera.NewStillSource(checkerboard()),
		Estimator: vision.NewEstimator(vision.DefaultFrameWidth, vision.DefaultFrameHeight, vision.DefaultThresholds()),
		Codec:     vision.JPEGCodec{Quality: 80},
		Uploader:  upload.NewHTTPUploader(remote.URL, "file", 0),
		Outbox:    bridge.NewOutbox(8),
		Redirect:  bridge.NewRedirector("https://host.example/next"),
	})
	return &fixture{c: c, router: NewRouter(c), remote: remote}
}

func (f *fixture) do(t *testing.T, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK\n", rec.Body.String())
}

func TestCaptureFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/capture", nil, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, f.c.CaptureService.Start(ctx))
	_, err := f.c.CaptureService.Tick(ctx)
	require.NoError(t, err)

	rec = f.do(t, http.MethodGet, "/status", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var st app.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	require.True(t, st.Ready)

	rec = f.do(t, http.MethodPost, "/capture", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/upload", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res entity.UploadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.True(t, res.Success)

	rec = f.do(t, http.MethodPost, "/upload", nil, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/captures?limit=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var recs []entity.CaptureRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
	require.Len(t, recs, 1)

	rec = f.do(t, http.MethodGet, "/captures?limit=x", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssess(t *testing.T) {
	f := newFixture(t)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, checkerboard()))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "frame.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := f.do(t, http.MethodPost, "/assess", body.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code)
	var got assessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Ready)
	require.Equal(t, vision.DefaultFrameWidth, got.Width)

	rec = f.do(t, http.MethodPost, "/assess", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBridgeMessages(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/bridge/messages", []byte(`{"type":"ping","id":"p1"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	var reply entity.BridgeMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	require.Equal(t, entity.MsgPong, reply.Type)
	require.Equal(t, "p1", reply.ReplyTo)

	rec = f.do(t, http.MethodPost, "/bridge/messages", []byte(`{"type":"redirect","id":"r1","payload":{"params":{"a":"b"}}}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "host.example/next?a=b"))

	rec = f.do(t, http.MethodPost, "/bridge/messages", []byte(`{"id":"1"}`), "application/json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/bridge/messages", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []entity.BridgeMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 2)

	rec = f.do(t, http.MethodGet, "/bridge/messages", nil, "")
	require.JSONEq(t, `[]`, rec.Body.String())
}
