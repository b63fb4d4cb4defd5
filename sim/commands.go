package sim

import "snake-sim/constants"

// Commands are the only way collaborators mutate the simulation; the
// gateway decodes wire messages into these and the Manager applies them.

type StartCommand struct {
	SnakeCount   int
	HumanControl bool
}

type SetDirectionCommand struct {
	Direction constants.Direction
}

type SetHumanControlCommand struct {
	Enabled bool
}

// Apply executes a command against the running simulation. Unknown
// commands are ignored.
func (m *Manager) Apply(cmd any) {
	switch c := cmd.(type) {
	case StartCommand:
		m.StartRun(c.SnakeCount, c.HumanControl)
	case SetDirectionCommand:
		m.SetDirection(c.Direction)
	case SetHumanControlCommand:
		m.SetHumanControl(c.Enabled)
	}
}
