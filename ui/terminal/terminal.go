// Package terminal renders the game in a terminal with tcell. Every grid cell
// is two columns wide so the board keeps its proportions.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-arcade/game"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	snakeStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	textStyle   = tcell.StyleDefault
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var headRunes = map[types.Direction]rune{
	types.Up:    '^',
	types.Right: '>',
	types.Down:  'v',
	types.Left:  '<',
}

type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Origin returns the terminal position of the top-left corner of grid cell c.
func Origin(c types.Cell) (int, int) {
	return 1 + 2*c.X, 1 + c.Y
}

func (r *Renderer) Draw(s game.Snapshot, summary manager.Summary) {
	r.screen.Clear()
	r.drawBorder(s.Columns, s.Rows)

	grid := types.Grid{Width: s.Columns, Height: s.Rows}
	r.drawCell(s.Food, '(', ')', foodStyle)
	for i := len(s.Body) - 1; i >= 1; i-- {
		if grid.InBounds(s.Body[i]) {
			r.drawCell(s.Body[i], '█', '█', snakeStyle)
		}
	}
	if len(s.Body) > 0 && grid.InBounds(s.Body[0]) {
		head := headRunes[s.Direction]
		r.drawCell(s.Body[0], head, head, headStyle)
	}

	high := summary.HighScore
	if s.Score > high {
		high = s.Score
	}
	status := fmt.Sprintf("Score: %d  High: %d  Length: %d  Time: %s",
		s.Score, high, len(s.Body), formatElapsed(s.Elapsed))
	r.drawText(0, s.Rows+2, status, textStyle)

	if s.Over() {
		lines := []string{
			"Game Over!",
			fmt.Sprintf("%s collision", s.Collision),
			"Press 'R' to Restart",
			"Press 'Q' to Quit",
		}
		y := s.Rows/2 - 1
		for i, line := range lines {
			style := textStyle
			if i == 0 {
				style = alertStyle
			}
			r.drawText(1+(2*s.Columns-len(line))/2, y+i, line, style)
		}
	}
	r.screen.Show()
}

func (r *Renderer) drawBorder(columns, rows int) {
	right, bottom := 2*columns+1, rows+1
	for x := 1; x < right; x++ {
		r.screen.SetContent(x, 0, tcell.RuneHLine, nil, borderStyle)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		r.screen.SetContent(0, y, tcell.RuneVLine, nil, borderStyle)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, borderStyle)
	}
	r.screen.SetContent(0, 0, tcell.RuneULCorner, nil, borderStyle)
	r.screen.SetContent(right, 0, tcell.RuneURCorner, nil, borderStyle)
	r.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, borderStyle)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, borderStyle)
}

func (r *Renderer) drawCell(c types.Cell, left, right rune, style tcell.Style) {
	x, y := Origin(c)
	r.screen.SetContent(x, y, left, nil, style)
	r.screen.SetContent(x+1, y, right, nil, style)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// CommandForKey maps arrows, WASD, R and Q onto game commands.
func CommandForKey(ev *tcell.EventKey) (game.Command, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.Turn(types.Up), true
	case tcell.KeyRight:
		return game.Turn(types.Right), true
	case tcell.KeyDown:
		return game.Turn(types.Down), true
	case tcell.KeyLeft:
		return game.Turn(types.Left), true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return game.Turn(types.Up), true
		case 'd', 'D':
			return game.Turn(types.Right), true
		case 's', 'S':
			return game.Turn(types.Down), true
		case 'a', 'A':
			return game.Turn(types.Left), true
		case 'r', 'R':
			return game.Restart, true
		case 'q', 'Q':
			return game.Quit, true
		}
	}
	return game.Command{}, false
}

// Controller is the part of game.Game the terminal app drives.
type Controller interface {
	Snapshot() game.Snapshot
	Handle(cmd game.Command) bool
	Quit()
	Done() <-chan struct{}
}

// SummaryFunc supplies the stats shown next to the board. May be nil.
type SummaryFunc func() manager.Summary

type App struct {
	screen   tcell.Screen
	renderer *Renderer
	ctl      Controller
	summary  SummaryFunc
	frame    time.Duration
}

func NewApp(screen tcell.Screen, ctl Controller, summary SummaryFunc, frame time.Duration) *App {
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen),
		ctl:      ctl,
		summary:  summary,
		frame:    frame,
	}
}

// Run redraws every frame and feeds key presses to the game until the game
// quits or ctx is done. Ctrl-C and Escape quit in any state.
func (a *App) Run(ctx context.Context) {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.ctl.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	for {
		a.draw()
		select {
		case <-ctx.Done():
			return
		case <-a.ctl.Done():
			return
		case <-ticker.C:
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
					a.ctl.Quit()
					continue
				}
				if cmd, ok := CommandForKey(ev); ok {
					a.ctl.Handle(cmd)
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		}
	}
}

func (a *App) draw() {
	var summary manager.Summary
	if a.summary != nil {
		summary = a.summary()
	}
	a.renderer.Draw(a.ctl.Snapshot(), summary)
}
