package sim

import (
	"encoding/json"
	"log"

	"snake-sim/auth"
	"snake-sim/constants"
	"snake-sim/models"
)

// AddViewer registers a viewer and, if a run exists, hands it the current
// snapshot so a late joiner doesn't wait a tick to see the board.
func (m *Manager) AddViewer(viewer *models.Viewer) {
	if added := m.Viewers.Add(viewer); !added {
		log.Printf("Viewer %s (%s) already registered", viewer.ID, viewer.Name)
		return
	}

	log.Printf("Viewer %s (%s) connected, total viewers: %d", viewer.ID, viewer.Name, m.Viewers.Len())

	snap := m.Snapshot()
	if snap.Status != NotStarted.String() {
		sendMessage(viewer, constants.MSG_GAME_UPDATE, map[string]any{"data": snap})
	}
}

func (m *Manager) RemoveViewer(viewerID string) {
	m.Viewers.Remove(viewerID)
	log.Printf("Viewer %s disconnected, total viewers: %d", viewerID, m.Viewers.Len())
}

// HandleViewerMessage processes one decoded message from a viewer. Commands
// that steer the simulation require a control token issued to the sender.
func (m *Manager) HandleViewerMessage(viewer *models.Viewer, msgType string, msg map[string]any) {
	switch msgType {
	case constants.MSG_START_GAME:
		if !m.authorize(viewer, msg) {
			return
		}
		snakeCount := 1
		if n, ok := msg["snake_count"].(float64); ok {
			snakeCount = int(n)
		}
		humanControl, _ := msg["human_control"].(bool)
		m.Apply(StartCommand{SnakeCount: snakeCount, HumanControl: humanControl})
	case constants.MSG_SET_DIRECTION:
		if !m.authorize(viewer, msg) {
			return
		}
		dirStr, ok := msg["direction"].(string)
		if !ok {
			return
		}
		d, ok := constants.ParseDirection(dirStr)
		if !ok {
			return
		}
		m.Apply(SetDirectionCommand{Direction: d})
	case constants.MSG_SET_HUMAN_CONTROL:
		if !m.authorize(viewer, msg) {
			return
		}
		enabled, ok := msg["enabled"].(bool)
		if !ok {
			return
		}
		m.Apply(SetHumanControlCommand{Enabled: enabled})
	case constants.MSG_GET_STATE:
		sendMessage(viewer, constants.MSG_GAME_UPDATE, map[string]any{"data": m.Snapshot()})
	}
}

func (m *Manager) authorize(viewer *models.Viewer, msg map[string]any) bool {
	token, _ := msg["token"].(string)
	if err := auth.VerifyControl(token, viewer.ID); err != nil {
		log.Printf("Rejected control message from viewer %s: %v", viewer.ID, err)
		sendMessage(viewer, constants.MSG_ERROR, map[string]any{
			"message": "Invalid or missing control token.",
			"code":    "UNAUTHORIZED",
		})
		return false
	}
	return true
}

// Broadcast sends a message to every connected viewer, dropping it for
// viewers whose send buffer is full.
func (m *Manager) Broadcast(msgType string, data map[string]any) {
	for _, viewer := range m.Viewers.Snapshot() {
		sendMessage(viewer, msgType, data)
	}
}

func sendMessage(viewer *models.Viewer, msgType string, data map[string]any) {
	message := map[string]any{
		"type": msgType,
	}
	for k, v := range data {
		message[k] = v
	}

	jsonData, _ := json.Marshal(message)

	select {
	case viewer.Send <- jsonData:
	default:
	}
}
