package sim

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"snake-sim/constants"
	"snake-sim/models"
	"snake-sim/viewers"
)

// Manager owns the engine, the tick timer and the viewer registry. It is
// the single writer of engine state: commands and ticks all run under its
// lock, so at most one tick stream exists at a time.
type Manager struct {
	Viewers *viewers.Service

	mu     sync.Mutex
	engine *Engine
	runID  string
	ticker *time.Ticker
	done   chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		Viewers: viewers.NewService(),
		engine:  NewEngine(),
	}
}

// StartRun resets the simulation and begins ticking. Any prior ticker is
// stopped first so two tick streams never overlap.
func (m *Manager) StartRun(snakeCount int, humanControl bool) {
	m.mu.Lock()
	m.stopTickerLocked()
	m.engine.Start(snakeCount, humanControl)
	m.runID = uuid.New().String()
	snap := m.snapshotLocked()
	m.ticker = time.NewTicker(constants.TICK_RATE)
	m.done = make(chan struct{})
	go m.run(m.ticker, m.done)
	m.mu.Unlock()

	log.Printf("Run %s started: %d snakes, human control %v", snap.RunID, len(snap.Snakes), humanControl)
	m.Broadcast(constants.MSG_GAME_START, map[string]any{"data": snap})
}

// SetDirection forwards a human direction intent to the engine.
func (m *Manager) SetDirection(d constants.Direction) {
	m.mu.Lock()
	m.engine.SetDirection(d)
	m.mu.Unlock()
}

// SetHumanControl toggles human control without resetting the run.
func (m *Manager) SetHumanControl(enabled bool) {
	m.mu.Lock()
	m.engine.SetHumanControl(enabled)
	m.mu.Unlock()
}

func (m *Manager) Snapshot() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() models.Snapshot {
	snap := m.engine.Snapshot()
	snap.RunID = m.runID
	return snap
}

func (m *Manager) stopTickerLocked() {
	if m.ticker == nil {
		return
	}
	m.ticker.Stop()
	close(m.done)
	m.ticker = nil
	m.done = nil
}

func (m *Manager) run(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			m.step()
		}
	}
}

func (m *Manager) step() {
	m.mu.Lock()
	status := m.engine.Tick()
	snap := m.snapshotLocked()
	if status == Ended {
		m.stopTickerLocked()
	}
	m.mu.Unlock()

	m.Broadcast(constants.MSG_GAME_UPDATE, map[string]any{"data": snap})
	if status == Ended {
		log.Printf("Run %s ended after %d ticks", snap.RunID, snap.Tick)
		m.Broadcast(constants.MSG_GAME_OVER, map[string]any{"data": snap})
	}
}
