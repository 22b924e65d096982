package tui

import (
	"fmt"

	"github.com/vovakirdan/llama-leap/internal/core"
)

// HUD text drawn by the host over the game.
const (
	TapPrompt     = "Tap to Jump!"
	GameOverTitle = "GAME OVER"
	PlayAgain     = "Play Again"
	ReadMessage   = "Read Message"
)

// affordances is what the HUD needs from a game besides its DisplayState.
type affordances interface {
	CanRead() bool
	CloseLabel() string
}

// drawHUD paints the mode-dependent prompts and the score readout.
// The score is drawn last so it stays on the top row in every mode.
func drawHUD(s *core.Screen, ds core.DisplayState, g affordances, keys KeyMap) {
	switch ds.Mode {
	case core.ModeReady:
		s.DrawTextCentered(s.Height()/2+2, TapPrompt, core.ColorText)
	case core.ModeGameOver:
		drawGameOverPanel(s, ds, g, keys)
	}
	drawScore(s, ds.Score)
}

// scoreClearance is the first row a panel may occupy below the score.
const scoreClearance = 2

func drawScore(s *core.Screen, score int) {
	text := fmt.Sprintf(" %d ", score)
	x := (s.Width() - len(text)) / 2
	for i, r := range text {
		s.SetCell(x+i, 0, core.Cell{Rune: r, Fg: core.ColorText, Bg: core.ColorBanner})
	}
}

// GameOverLines returns the rows of the game-over panel.
func GameOverLines(ds core.DisplayState, g affordances, keys KeyMap) []string {
	lines := []string{
		GameOverTitle,
		fmt.Sprintf("Score: %d", ds.Score),
		"",
		fmt.Sprintf("[%s] %s", keys.Restart.Help().Key, PlayAgain),
	}
	if g.CanRead() {
		lines = append(lines, fmt.Sprintf("[%s] %s", keys.Read.Help().Key, ReadMessage))
	}
	lines = append(lines, fmt.Sprintf("[%s] %s", keys.Close.Help().Key, g.CloseLabel()))
	return lines
}

func drawGameOverPanel(s *core.Screen, ds core.DisplayState, g affordances, keys KeyMap) {
	lines := GameOverLines(ds, g, keys)

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2

	// Keep the panel clear of the score row.
	panel := core.NewRect((s.Width()-w)/2, max(scoreClearance, (s.Height()-h)/2), w, h)
	s.DrawRect(panel, ' ', core.ColorText, core.ColorBanner)
	s.DrawBox(panel, core.ColorText)
	for i, l := range lines {
		x := panel.X + (w-len([]rune(l)))/2
		s.DrawText(x, panel.Y+1+i, l, core.ColorText)
	}
}
