package game

import "snake-arcade/game/types"

type CommandKind int

const (
	TurnCommand CommandKind = iota
	RestartCommand
	QuitCommand
)

func (k CommandKind) String() string {
	switch k {
	case TurnCommand:
		return "turn"
	case RestartCommand:
		return "restart"
	case QuitCommand:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is an input signal from a frontend.
type Command struct {
	Kind      CommandKind
	Direction types.Direction // TurnCommand only
}

func Turn(dir types.Direction) Command {
	return Command{Kind: TurnCommand, Direction: dir}
}

var (
	Restart = Command{Kind: RestartCommand}
	Quit    = Command{Kind: QuitCommand}
)

// Handle applies cmd if the current state accepts it: turns while Running,
// restart and quit while GameOver. It reports whether cmd took effect.
func (g *Game) Handle(cmd Command) bool {
	switch cmd.Kind {
	case TurnCommand:
		return g.Turn(cmd.Direction)
	case RestartCommand:
		return g.restart()
	case QuitCommand:
		if g.State() != types.GameOver {
			return false
		}
		g.Quit()
		return true
	default:
		return false
	}
}
