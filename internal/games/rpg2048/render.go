package rpg2048

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/rpg2048/internal/core"
	"github.com/vovakirdan/rpg2048/internal/games/rpg2048/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 4
	hpBarWidth = 20

	minScreenW = 44
	minScreenH = 18
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		return
	}

	st := g.session.State()

	// Calculate board position (centered)
	boardW := engine.Size*cellWidth + 1  // +1 for right border
	boardH := engine.Size*cellHeight + 1 // +1 for bottom border
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, st, boardX, boardW)
	g.renderBoard(dst, st, boardX, boardY)
	g.renderStatus(dst, st, boardX, boardY+boardH, boardW)
	g.renderOverlays(dst, st, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	x := (g.screenW - len(msg)) / 2
	y := g.screenH / 2
	dst.DrawText(x, y, msg)

	hint := fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH)
	dst.DrawText((g.screenW-len(hint))/2, y+1, hint)
}

// renderHUD draws the enemy, its goal and the run counters.
func (g *Game) renderHUD(dst *core.Screen, st engine.State, boardX, boardW int) {
	e := st.Enemy
	left := boardX - 6
	if left < 0 {
		left = 0
	}
	right := boardX + boardW + 6

	dst.DrawTextColored(left, 0, e.Name, core.ColorBrightWhite)
	if e.Boss {
		dst.DrawTextColored(left+len(e.Name)+1, 0, "BOSS", core.ColorBrightRed)
	}
	counters := fmt.Sprintf("Defeated %d  Best %d", st.Defeated, st.HighScore)
	dst.DrawText(right-len(counters), 0, counters)

	if e.ShowsHPBar() {
		dst.DrawText(left, 1, "HP")
		dst.DrawTextColored(left+3, 1, hpBar(e.HP, e.MaxHP, hpBarWidth), hpColor(e.HP, e.MaxHP))
		dst.DrawText(left+4+hpBarWidth, 1, fmt.Sprintf("%d/%d", max(e.HP, 0), e.MaxHP))
	} else if done, total := e.Progress(); total > 0 {
		dst.DrawText(left, 1, fmt.Sprintf("Targets %d/%d", done, total))
	} else {
		dst.DrawText(left, 1, "Instant win")
	}

	dst.DrawTextColored(left, 2, e.ConditionText(), core.ColorYellow)

	x := left
	for _, b := range badges(e.Mechanics) {
		dst.DrawTextColored(x, 3, b.label, b.color)
		x += len(b.label) + 1
	}
}

type badge struct {
	label string
	color core.Color
}

func badges(m engine.Mechanics) []badge {
	var out []badge
	if m.Block {
		out = append(out, badge{"BLOCK", core.ColorGray})
	}
	if m.Burn {
		out = append(out, badge{"BURN", core.ColorOrange})
	}
	if m.Freeze {
		out = append(out, badge{"FREEZE", core.ColorBrightCyan})
	}
	if m.Ghost {
		out = append(out, badge{"GHOST", core.ColorMagenta})
	}
	if m.Shuffle {
		out = append(out, badge{"SHUFFLE", core.ColorPink})
	}
	if m.Delete {
		out = append(out, badge{"DELETE", core.ColorBrightRed})
	}
	return out
}

func hpBar(hp, maxHP, width int) string {
	if maxHP <= 0 {
		return strings.Repeat("-", width)
	}
	filled := core.Clamp(hp*width/maxHP, 0, width)
	if hp > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}

func hpColor(hp, maxHP int) core.Color {
	switch {
	case maxHP <= 0 || hp*4 <= maxHP:
		return core.ColorBrightRed
	case hp*2 <= maxHP:
		return core.ColorYellow
	default:
		return core.ColorBrightGreen
	}
}

// renderBoard draws the 4x4 grid with tiles, walls, ghosts and targets.
func (g *Game) renderBoard(dst *core.Screen, st engine.State, boardX, boardY int) {
	const n = engine.Size
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	for r := range n {
		for c := range n {
			p := engine.Pos{R: r, C: c}
			text, color := cellLabel(st, p)
			if fx := effectColor(g.fx.At(p)); fx != core.ColorDefault {
				color = fx
			}
			if text == "" {
				continue
			}

			cellX := boardX + c*cellWidth + 1
			cellY := boardY + r*cellHeight + 1
			padLeft := max((cellWidth-1-len(text))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, text, color)
		}
	}
}

// cellLabel returns the text and base color of a board cell.
func cellLabel(st engine.State, p engine.Pos) (string, core.Color) {
	v := st.Grid.At(p)
	switch {
	case engine.IsTile(v):
		return strconv.Itoa(v), tileColor(v)
	case engine.IsTarget(v):
		tv, _ := engine.TargetValue(v)
		return "@" + strconv.Itoa(tv), core.ColorBrightCyan
	case v == engine.Blocked:
		return "####", core.ColorGray
	case v == engine.Frozen:
		if f, ok := engine.FrozenAt(st.Frozen, p); ok {
			return fmt.Sprintf("%d*%d", f.Value, f.Hits), core.ColorBrightBlue
		}
		return "*", core.ColorBrightBlue
	case v == engine.Ghost:
		if gh, ok := engine.GhostAt(st.Ghosts, p); ok {
			return "~" + strconv.Itoa(gh.Value) + "~", core.ColorGray
		}
		return "~", core.ColorGray
	}
	return "", core.ColorDefault
}

func tileColor(v int) core.Color {
	switch {
	case v <= 4:
		return core.ColorWhite
	case v <= 16:
		return core.ColorYellow
	case v <= 64:
		return core.ColorOrange
	case v <= 256:
		return core.ColorRed
	case v <= 1024:
		return core.ColorMagenta
	default:
		return core.ColorGold
	}
}

func effectColor(k EffectKind) core.Color {
	switch k {
	case EffectSpawn:
		return core.ColorBrightGreen
	case EffectMerge:
		return core.ColorBrightYellow
	case EffectDelete:
		return core.ColorBrightRed
	case EffectBlock:
		return core.ColorBrightWhite
	case EffectBurn:
		return core.ColorRed
	case EffectFreeze, EffectFrozenHit:
		return core.ColorBrightCyan
	case EffectGhost:
		return core.ColorBrightMagenta
	case EffectShuffle:
		return core.ColorPink
	default:
		return core.ColorDefault
	}
}

// renderStatus draws the last move's result, the banner and the controls.
func (g *Game) renderStatus(dst *core.Screen, st engine.State, boardX, y, boardW int) {
	switch {
	case st.Resisted:
		dst.DrawTextColored(boardX, y+1, "RESISTED!", core.ColorBrightMagenta)
	case st.LastDamage > 0:
		dst.DrawTextColored(boardX, y+1, fmt.Sprintf("Hit for %d", st.LastDamage), core.ColorBrightGreen)
	}

	var tags []string
	if g.mode == ModeBot {
		tags = append(tags, "BOT")
	}
	if g.debug {
		tags = append(tags, "DEBUG")
	}
	if len(tags) > 0 {
		tag := "[" + strings.Join(tags, "|") + "]"
		dst.DrawTextColored(boardX+boardW-len(tag), y+1, tag, core.ColorGray)
	}

	if msg := g.fx.Banner(); msg != "" {
		dst.DrawTextColored((g.screenW-len(msg))/2, y+2, msg, core.ColorBrightYellow)
	}

	controls := g.Controls()
	if len(controls) <= g.screenW && y+3 < g.screenH {
		dst.DrawTextColored((g.screenW-len(controls))/2, y+3, controls, core.ColorGray)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, st engine.State, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case st.Over:
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", st.Message,
			fmt.Sprintf("Enemies defeated: %d", st.Defeated), "Press R to restart")
	case st.Paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case st.Won:
		g.drawOverlay(dst, centerX, centerY, "YOU WIN!",
			fmt.Sprintf("Enemies defeated: %d", st.Defeated), "Press R to restart")
	case st.Notice != "":
		g.drawOverlay(dst, centerX, centerY, st.Notice, fmt.Sprintf("Defeated: %d", st.Defeated))
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.Rect{X: centerX - boxW/2, Y: centerY - boxH/2, W: boxW, H: boxH}

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	if g.mode == ModeBot {
		return "P: Pause | R: Restart | Q: Quit"
	}
	hint := "Arrows/WASD: Move | P: Pause | R: Restart | Q: Quit"
	if g.debug {
		hint += " | F1-F7: Debug"
	}
	return hint
}
