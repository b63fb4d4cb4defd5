package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"snake-sim/auth"
	"snake-sim/constants"
	"snake-sim/sim"
)

func dialTestServer(t *testing.T) (*wsReader, func()) {
	t.Helper()
	manager := sim.NewManager()
	srv := httptest.NewServer(NewWebSocketHandler(manager))

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?name=tester"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}
	return &wsReader{conn: conn}, func() {
		conn.Close()
		srv.Close()
	}
}

// wsReader unpacks frames; the write pump batches queued messages into one
// frame separated by newlines.
type wsReader struct {
	conn    *websocket.Conn
	pending [][]byte
}

func (r *wsReader) next(t *testing.T) map[string]any {
	t.Helper()
	if len(r.pending) == 0 {
		r.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := r.conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		r.pending = bytes.Split(data, []byte{'\n'})
	}
	data := r.pending[0]
	r.pending = r.pending[1:]

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return msg
}

// nextOfType skips interleaved broadcasts (tick updates) until the wanted
// message type arrives.
func (r *wsReader) nextOfType(t *testing.T, msgType string) map[string]any {
	t.Helper()
	for i := 0; i < 20; i++ {
		msg := r.next(t)
		if msg["type"] == msgType {
			return msg
		}
	}
	t.Fatalf("no %q message after 20 reads", msgType)
	return nil
}

func (r *wsReader) writeJSON(t *testing.T, msg map[string]any) {
	t.Helper()
	if err := r.conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestServeHTTP_ConnectIssuesValidToken(t *testing.T) {
	r, cleanup := dialTestServer(t)
	defer cleanup()

	msg := r.next(t)
	if msg["type"] != constants.MSG_CONNECTED {
		t.Fatalf("first message type = %v, want connected", msg["type"])
	}

	viewer, ok := msg["viewer"].(map[string]any)
	if !ok {
		t.Fatalf("connected message missing viewer object: %v", msg)
	}
	viewerID, _ := viewer["id"].(string)
	if viewerID == "" {
		t.Fatalf("connected message missing viewer id")
	}
	token, _ := msg["token"].(string)
	if token == "" {
		t.Fatalf("connected message missing control token")
	}
	if err := auth.VerifyControl(token, viewerID); err != nil {
		t.Errorf("issued token does not verify for its viewer: %v", err)
	}
}

func TestServeHTTP_ControlFlow(t *testing.T) {
	r, cleanup := dialTestServer(t)
	defer cleanup()

	connected := r.nextOfType(t, constants.MSG_CONNECTED)
	token, _ := connected["token"].(string)

	// Steering without a token is rejected.
	r.writeJSON(t, map[string]any{
		"type":      constants.MSG_SET_DIRECTION,
		"direction": "up",
	})
	errMsg := r.nextOfType(t, constants.MSG_ERROR)
	if errMsg["code"] != "UNAUTHORIZED" {
		t.Errorf("error code = %v, want UNAUTHORIZED", errMsg["code"])
	}

	// Before any start, get_state reports a not-started board.
	r.writeJSON(t, map[string]any{
		"type": constants.MSG_GET_STATE,
	})
	update := r.nextOfType(t, constants.MSG_GAME_UPDATE)
	data, _ := update["data"].(map[string]any)
	if data["status"] != "not_started" {
		t.Fatalf("status = %v, want not_started", data["status"])
	}

	// A tokened start reaches the engine and the run is announced.
	r.writeJSON(t, map[string]any{
		"type":          constants.MSG_START_GAME,
		"token":         token,
		"snake_count":   2,
		"human_control": true,
	})
	started := r.nextOfType(t, constants.MSG_GAME_START)
	data, _ = started["data"].(map[string]any)
	if data["status"] != "running" {
		t.Errorf("status = %v, want running", data["status"])
	}
	snakes, _ := data["snakes"].([]any)
	if len(snakes) != 2 {
		t.Errorf("snake count = %d, want 2", len(snakes))
	}
	if data["human_snake_id"] != float64(0) {
		t.Errorf("human snake id = %v, want 0", data["human_snake_id"])
	}
}
