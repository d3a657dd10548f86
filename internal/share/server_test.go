package share

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

func newTestServer(t *testing.T) (*Server, *state.Store, *httptest.Server) {
	t.Helper()
	store := state.NewStore(zap.NewNop())
	el := store.NewElement(state.TypeRectangle, 10, 10)
	store.AddElement(el)
	w, h := 120.0, 80.0
	store.UpdateElement(el.ID, state.ElementPatch{Width: &w, Height: &h})

	srv := NewServer(store, ":0", zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, store, ts
}

func TestHealth(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestBoardSnapshotJSON(t *testing.T) {
	_, store, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/board")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap state.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Len(t, snap.Elements, 1)
	assert.Equal(t, store.Elements()[0].ID, snap.Elements[0].ID)
	assert.Equal(t, state.TypeRectangle, snap.Elements[0].Type)
	assert.Equal(t, 120.0, snap.Elements[0].Width)
}

func TestBoardPDFDownload(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/board.pdf")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	head := make([]byte, 4)
	_, err = io.ReadFull(resp.Body, head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head))
}

func TestBoardPNGSize(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/board.png?width=320&height=200")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	cfg, err := png.DecodeConfig(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestBoardPNGBadSizeFallsBack(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/board.png?width=huge&height=-4")
	require.NoError(t, err)
	defer resp.Body.Close()

	cfg, err := png.DecodeConfig(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, defaultPNGWidth, cfg.Width)
	assert.Equal(t, defaultPNGHeight, cfg.Height)
}

func TestLiveSendsInitialBoard(t *testing.T) {
	_, store, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg boardMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "board", msg.Type)
	require.Len(t, msg.Board.Elements, 1)
	assert.Equal(t, store.Elements()[0].ID, msg.Board.Elements[0].ID)
}

func TestLiveReceivesBroadcasts(t *testing.T) {
	srv, store, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return srv.Viewers() == 1 }, time.Second, 10*time.Millisecond)

	store.AddElement(store.NewElement(state.TypeEllipse, 200, 200))
	srv.Publish()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg boardMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "board", msg.Type)
	assert.Len(t, msg.Board.Elements, 2)
}

func TestURLFillsHostAndPort(t *testing.T) {
	assert.Equal(t, "http://192.168.1.20:8787", URL("192.168.1.20:8787"))
	assert.True(t, strings.HasPrefix(URL(":9000"), "http://"))
	assert.True(t, strings.HasSuffix(URL(":9000"), ":9000"))
}

func TestPortParsesListenAddr(t *testing.T) {
	assert.Equal(t, 9000, Port(":9000"))
	assert.Equal(t, 8787, Port("not-an-addr"))
	assert.Equal(t, 8787, Port(":zero"))
}
