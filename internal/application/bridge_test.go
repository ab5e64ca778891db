package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/infrastructure/bridge"
)

func newBridge(t *testing.T, status int) (*BridgeService, *captureFixture) {
	t.Helper()
	f := newCaptureFixture(sharpFrame(), status)
	return NewBridgeService(f.svc, bridge.NewOutbox(8), bridge.NewRedirector("https://host.example/done")), f
}

func TestBridgeService_Ping(t *testing.T) {
	b, _ := newBridge(t, 200)

	reply := b.Handle(context.Background(), entity.BridgeMessage{Type: entity.MsgPing, ID: "1"})
	require.Equal(t, entity.MsgPong, reply.Type)
	require.Equal(t, "1", reply.ReplyTo)

	pending := b.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, entity.MsgPong, pending[0].Type)
}

func TestBridgeService_StatusAndCapture(t *testing.T) {
	b, f := newBridge(t, 200)
	ctx := context.Background()

	reply := b.Handle(ctx, entity.BridgeMessage{Type: entity.MsgCapture, ID: "c1"})
	require.Equal(t, entity.MsgError, reply.Type)

	require.NoError(t, f.svc.Start(ctx))
	_, err := f.svc.Tick(ctx)
	require.NoError(t, err)

	reply = b.Handle(ctx, entity.BridgeMessage{Type: entity.MsgStatus, ID: "s1"})
	require.Equal(t, entity.MsgResult, reply.Type)
	var st Status
	require.NoError(t, json.Unmarshal(reply.Payload, &st))
	require.True(t, st.Ready)

	reply = b.Handle(ctx, entity.BridgeMessage{Type: entity.MsgCapture, ID: "c2"})
	require.Equal(t, entity.MsgResult, reply.Type)
	var up uploadReply
	require.NoError(t, json.Unmarshal(reply.Payload, &up))
	require.True(t, up.Success)
	require.Equal(t, 200, up.StatusCode)
}

func TestBridgeService_Redirect(t *testing.T) {
	b, _ := newBridge(t, 200)

	reply := b.Handle(context.Background(), entity.BridgeMessage{
		Type:    entity.MsgRedirect,
		ID:      "r1",
		Payload: json.RawMessage(`{"params":{"result":"ok"}}`),
	})
	require.Equal(t, entity.MsgNavigate, reply.Type)
	require.JSONEq(t, `{"url":"https://host.example/done?result=ok"}`, string(reply.Payload))

	noBase := NewBridgeService(nil, bridge.NewOutbox(1), nil)
	reply = noBase.Handle(context.Background(), entity.BridgeMessage{Type: entity.MsgRedirect})
	require.Equal(t, entity.MsgError, reply.Type)
}

func TestBridgeService_UnknownType(t *testing.T) {
	b, _ := newBridge(t, 200)

	reply := b.Handle(context.Background(), entity.BridgeMessage{Type: "teleport", ID: "x"})
	require.Equal(t, entity.MsgError, reply.Type)
	require.Equal(t, "x", reply.ReplyTo)
	require.Contains(t, string(reply.Payload), "teleport")
}

func TestBridgeService_Notify(t *testing.T) {
	b, _ := newBridge(t, 200)
	require.NoError(t, b.Notify(entity.MsgStatus, map[string]bool{"ready": true}))

	pending := b.Pending()
	require.Len(t, pending, 1)
	require.Empty(t, pending[0].ReplyTo)
}

func TestBridgeService_StatusChangesReachOutbox(t *testing.T) {
	b, f := newBridge(t, 200)
	f.svc.OnStatusChange(b.NotifyStatus)
	ctx := context.Background()

	require.NoError(t, f.svc.Start(ctx))
	_, err := f.svc.Tick(ctx)
	require.NoError(t, err)

	// тот же кадр: флаги не изменились, сообщения нет
	_, err = f.svc.Tick(ctx)
	require.NoError(t, err)

	pending := b.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, entity.MsgStatus, pending[0].Type)
	var st Status
	require.NoError(t, json.Unmarshal(pending[0].Payload, &st))
	require.True(t, st.Ready)

	_, err = f.svc.CaptureAndUpload(ctx)
	require.NoError(t, err)

	pending = b.Pending()
	require.Len(t, pending, 1)
	require.NoError(t, json.Unmarshal(pending[0].Payload, &st))
	require.False(t, st.HasCapture)
	require.Equal(t, "upload succeeded", st.LastMessage)
}
