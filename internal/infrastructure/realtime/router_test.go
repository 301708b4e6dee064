package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConnPair spins up a real websocket so the Connection write loop has a
// live peer, and returns the server-side Connection plus the client socket.
func newConnPair(t *testing.T) (*Connection, *websocket.Conn) {
	t.Helper()

	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{}
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connCh <- ws
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { client.Close() })

	serverWS := <-connCh
	return NewConnection("user-1", serverWS), client
}

func readText(t *testing.T, ws *websocket.Conn) string {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := ws.ReadMessage()
	require.NoError(t, err)
	return string(payload)
}

func TestBroadcastReachesAllRoomMembersInOrder(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	connA, clientA := newConnPair(t)
	connB, clientB := newConnPair(t)
	router.Attach(connA)
	router.Attach(connB)
	router.Join("chat-1", connA)
	router.Join("chat-1", connB)

	assert.Equal(t, 2, router.Broadcast("chat-1", []byte("first")))
	assert.Equal(t, 2, router.Broadcast("chat-1", []byte("second")))

	for _, client := range []*websocket.Conn{clientA, clientB} {
		assert.Equal(t, "first", readText(t, client))
		assert.Equal(t, "second", readText(t, client))
	}
}

func TestBroadcastScopedToRoom(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	connA, clientA := newConnPair(t)
	connB, clientB := newConnPair(t)
	router.Attach(connA)
	router.Attach(connB)
	router.Join("chat-1", connA)
	router.Join("chat-2", connB)

	assert.Equal(t, 1, router.Broadcast("chat-1", []byte("hello")))
	assert.Equal(t, "hello", readText(t, clientA))

	// The other room never sees it.
	require.NoError(t, clientB.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := clientB.ReadMessage()
	assert.Error(t, err)
}

func TestLeaveStopsDelivery(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	conn, _ := newConnPair(t)
	router.Attach(conn)
	router.Join("chat-1", conn)

	assert.Equal(t, 1, router.Broadcast("chat-1", []byte("hello")))

	router.Leave("chat-1", conn)
	assert.Equal(t, 0, router.Broadcast("chat-1", []byte("gone")))
}

func TestDetachClearsAllMemberships(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	conn, _ := newConnPair(t)
	router.Attach(conn)
	router.Join("chat-1", conn)
	router.Join("chat-2", conn)

	router.Detach(conn)

	assert.Equal(t, 0, router.Broadcast("chat-1", []byte("x")))
	assert.Equal(t, 0, router.Broadcast("chat-2", []byte("x")))
}

func TestJoinRequiresAttachedSession(t *testing.T) {
	router := NewRouter()
	defer router.Close()

	conn, _ := newConnPair(t)
	// Never attached: join must be a no-op.
	router.Join("chat-1", conn)

	assert.Equal(t, 0, router.Broadcast("chat-1", []byte("x")))
}
