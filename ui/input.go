package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

var keyBindings = []struct {
	key int32
	cmd game.Command
}{
	{rl.KeyUp, game.Turn(types.Up)},
	{rl.KeyW, game.Turn(types.Up)},
	{rl.KeyRight, game.Turn(types.Right)},
	{rl.KeyD, game.Turn(types.Right)},
	{rl.KeyDown, game.Turn(types.Down)},
	{rl.KeyS, game.Turn(types.Down)},
	{rl.KeyLeft, game.Turn(types.Left)},
	{rl.KeyA, game.Turn(types.Left)},
	{rl.KeyR, game.Restart},
	{rl.KeyQ, game.Quit},
}

// PollCommands returns the commands for keys pressed since the last frame,
// in binding order. The game decides which of them apply in its state.
func PollCommands() []game.Command {
	var cmds []game.Command
	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.key) {
			cmds = append(cmds, b.cmd)
		}
	}
	return cmds
}
