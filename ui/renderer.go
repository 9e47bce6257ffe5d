package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-arcade/game"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

const (
	borderPadding = 10
	fadeStep      = 0.05 // opacity lost per body segment
	minOpacity    = 0.15
)

var (
	snakeColor = rl.Color{R: 46, G: 204, B: 113, A: 255}
	foodColor  = rl.Red
	headColor  = rl.Yellow
)

type Renderer struct {
	grid            types.Grid
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	gameWidth       int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.updateDimensions()
	return r
}

func (r *Renderer) updateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 4
	r.gameWidth = r.screenWidth - r.statsPanel
}

func min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func (r *Renderer) layout(columns, rows int) {
	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.screenHeight - borderPadding*2

	r.grid = types.Grid{Width: columns, Height: rows}
	r.cellSize = min(availableWidth/int32(columns), availableHeight/int32(rows))
	r.totalGridWidth = r.cellSize * int32(columns)
	r.totalGridHeight = r.cellSize * int32(rows)
	r.offsetX = borderPadding
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2
}

// Draw renders one frame of the snapshot plus the stats panel.
func (r *Renderer) Draw(s game.Snapshot, summary manager.Summary) {
	r.updateDimensions()
	r.layout(s.Columns, s.Rows)

	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/30, r.statsPanel/10)
	lineHeight := fontSize + fontSize/2

	rl.DrawRectangleLines(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.Gray)

	r.drawCell(s.Food, foodColor)
	r.drawSnake(s.Body, s.Direction)

	rl.DrawText(fmt.Sprintf("Score: %d", s.Score), r.offsetX+5, r.offsetY+5, fontSize, rl.White)
	if s.Over() {
		r.drawGameOver(s, fontSize)
	}
	r.drawStatsPanel(s, summary, fontSize, lineHeight)
}

func (r *Renderer) cellOrigin(c types.Cell) (int32, int32) {
	return r.offsetX + int32(c.X)*r.cellSize, r.offsetY + int32(c.Y)*r.cellSize
}

func (r *Renderer) drawCell(c types.Cell, color rl.Color) {
	x, y := r.cellOrigin(c)
	rl.DrawRectangle(x, y, r.cellSize, r.cellSize, color)
}

// drawSnake fades the body towards the tail and marks the head with a
// triangle pointing where the snake faces.
func (r *Renderer) drawSnake(body []types.Cell, facing types.Direction) {
	for i := len(body) - 1; i >= 0; i-- {
		opacity := 1 - fadeStep*float32(i)
		if opacity < minOpacity {
			opacity = minOpacity
		}
		if r.grid.InBounds(body[i]) {
			r.drawCell(body[i], rl.Fade(snakeColor, opacity))
		}
	}

	// the head of a wall crash lies outside the board
	if len(body) == 0 || !r.grid.InBounds(body[0]) {
		return
	}
	headX, headY := r.cellOrigin(body[0])
	cell := float32(r.cellSize)
	half := cell / 2
	x, y := float32(headX), float32(headY)

	var a, b, c rl.Vector2
	switch facing {
	case types.Right:
		a, b, c = rl.Vector2{X: x + cell, Y: y + half}, rl.Vector2{X: x + half, Y: y}, rl.Vector2{X: x + half, Y: y + cell}
	case types.Left:
		a, b, c = rl.Vector2{X: x, Y: y + half}, rl.Vector2{X: x + half, Y: y + cell}, rl.Vector2{X: x + half, Y: y}
	case types.Down:
		a, b, c = rl.Vector2{X: x + half, Y: y + cell}, rl.Vector2{X: x + cell, Y: y + half}, rl.Vector2{X: x, Y: y + half}
	case types.Up:
		a, b, c = rl.Vector2{X: x + half, Y: y}, rl.Vector2{X: x, Y: y + half}, rl.Vector2{X: x + cell, Y: y + half}
	default:
		return
	}
	// raylib wants counter-clockwise vertices
	rl.DrawTriangle(a, b, c, headColor)
}

func (r *Renderer) drawGameOver(s game.Snapshot, fontSize int32) {
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, rl.Fade(rl.Black, 0.6))

	lines := []struct {
		text  string
		size  int32
		color rl.Color
	}{
		{"Game Over!", fontSize * 2, rl.Red},
		{fmt.Sprintf("%s collision, score %d", s.Collision, s.Score), fontSize, rl.White},
		{"Press 'R' to Restart", fontSize, rl.White},
		{"Press 'Q' to Quit", fontSize, rl.White},
	}
	y := r.offsetY + r.totalGridHeight/2 - fontSize*3
	for _, line := range lines {
		width := rl.MeasureText(line.text, line.size)
		rl.DrawText(line.text, r.offsetX+(r.totalGridWidth-width)/2, y, line.size, line.color)
		y += line.size + fontSize/2
	}
}

func (r *Renderer) drawStatsPanel(s game.Snapshot, summary manager.Summary, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	high := summary.HighScore
	if s.Score > high {
		high = s.Score
	}
	rows := []string{
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("High: %d", high),
		fmt.Sprintf("Length: %d", len(s.Body)),
		fmt.Sprintf("Time: %s", formatElapsed(s.Elapsed)),
		"",
		fmt.Sprintf("Games: %d", summary.GamesPlayed),
		fmt.Sprintf("Avg: %.1f", summary.AverageScore),
		fmt.Sprintf("Median: %.1f", summary.MedianScore),
	}
	for _, row := range rows {
		if row != "" {
			rl.DrawText(row, statsX, statsY, fontSize, rl.White)
		}
		statsY += lineHeight
	}
}

func formatElapsed(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
