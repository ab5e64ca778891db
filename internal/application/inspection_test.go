package app

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/infrastructure/storage"
	"focus-cam/internal/infrastructure/vision"
)

// PNG без потерь, чтобы шахматка осталась резкой после декодирования.
func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newInspection(uploader *fakeUploader) (*InspectionService, *storage.MemoryUserRepository, *storage.MemoryCaptureRepository) {
	users := storage.NewMemoryUserRepository()
	history := storage.NewMemoryCaptureRepository()
	svc := NewInspectionService(NewUserService(users), newEstimator(), vision.JPEGCodec{}, uploader, history)
	return svc, users, history
}

func TestInspectionService_Assess(t *testing.T) {
	svc, _, _ := newInspection(&fakeUploader{status: 200})

	a, err := svc.Assess(context.Background(), pngBytes(t, sharpFrame()))
	require.NoError(t, err)
	require.True(t, a.Readiness.Ready())

	_, err = svc.Assess(context.Background(), []byte("garbage"))
	require.Error(t, err)
}

func TestInspectionService_AcceptPhoto_Ready(t *testing.T) {
	up := &fakeUploader{status: 200}
	svc, users, history := newInspection(up)
	ctx := context.Background()

	out, err := svc.AcceptPhoto(ctx, 1, 10, pngBytes(t, sharpFrame()))
	require.NoError(t, err)
	require.True(t, out.Uploaded())
	require.Equal(t, 1, up.Calls())

	user, err := users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
	require.Equal(t, 1, user.Uploads)

	recs, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestInspectionService_AcceptPhoto_NotReady(t *testing.T) {
	up := &fakeUploader{status: 200}
	svc, users, _ := newInspection(up)
	ctx := context.Background()

	out, err := svc.AcceptPhoto(ctx, 2, 20, pngBytes(t, flatFrame(240)))
	require.NoError(t, err)
	require.False(t, out.Uploaded())
	require.Nil(t, out.Upload)
	require.False(t, out.Assessment.Readiness.BrightnessOK)
	require.Zero(t, up.Calls())

	user, err := users.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Zero(t, user.Uploads)
	require.NotNil(t, user.LastAssessment)
}

func TestInspectionService_AcceptPhoto_BadImage(t *testing.T) {
	svc, users, _ := newInspection(&fakeUploader{status: 200})
	ctx := context.Background()

	_, err := svc.AcceptPhoto(ctx, 3, 30, []byte("nope"))
	require.Error(t, err)

	user, err := users.Get(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}
