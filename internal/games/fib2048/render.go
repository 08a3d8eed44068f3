package fib2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/fib2048/internal/core"
)

const (
	cellWidth  = 7 // Includes the left border
	cellHeight = 2 // Includes the top border
	hudHeight  = 3
)

// Render draws the game into dst. HUD, board and footer are centered as one block.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := Size*cellWidth + 1
	boardH := Size*cellHeight + 1
	blockH := hudHeight + boardH + 2

	block := dst.Bounds().Centered(boardW, blockH)
	boardX := core.Clamp(block.X, 0, max(0, dst.Width()-boardW))
	top := core.Clamp(block.Y, 0, max(0, dst.Height()-blockH))
	boardY := top + hudHeight

	g.renderHUD(dst, boardX, top, boardW)
	g.renderBoard(dst, boardX, boardY)

	footerY := boardY + boardH + 1
	if g.fault != nil {
		dst.DrawTextColor(boardX, footerY, "Board error: "+g.fault.Error(), core.ColorBrightRed)
		return
	}
	if g.last.Changed && g.last.Spawned == nil {
		dst.DrawTextColor(boardX, footerY, "Board full - no tile spawned", core.ColorGray)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	need := fmt.Sprintf("Need %dx%d", g.cfg.Display.MinWidth, g.cfg.Display.MinHeight)

	box := dst.Bounds().Centered(max(len(msg), len(need))+4, 4)
	if box.X >= 0 && box.Y >= 0 {
		dst.DrawBox(box)
	}
	y := max(0, box.Y+1)
	dst.DrawTextCentered(y, msg)
	dst.DrawTextCentered(y+1, need)
}

func (g *Game) renderHUD(dst *core.Screen, boardX, top, boardW int) {
	title := "F I B  2 0 4 8"
	dst.DrawText(boardX+(boardW-len(title))/2, top, title)

	if g.board == nil {
		return
	}

	dst.DrawText(boardX, top+1, fmt.Sprintf("Moves: %d", g.moves))
	info := fmt.Sprintf("Max: %d", g.board.MaxTile())
	dst.DrawText(max(boardX, boardX+boardW-len(info)), top+1, info)
}

// renderBoard draws the grid lines and the tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range Size + 1 {
		for x := range Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.Set(px, py, gridJoint(x, y))
			if x < Size {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < Size {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}

	if g.board == nil {
		return
	}

	for _, t := range g.board.Tiles() {
		s := strconv.Itoa(t.Value)
		pad := max(0, (cellWidth-1-len(s))/2)
		cellX := boardX + t.X*cellWidth + 1
		cellY := boardY + t.Y*cellHeight + 1
		dst.DrawTextColor(cellX+pad, cellY, s, g.tileColor(t.Value))
	}
}

// gridJoint picks the box-drawing rune for grid intersection (x, y).
func gridJoint(x, y int) rune {
	top, bottom := y == 0, y == Size
	left, right := x == 0, x == Size
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	default:
		return '┼'
	}
}

// tileColor maps a value to the palette by its Fibonacci index.
func (g *Game) tileColor(v int) core.Color {
	idx, err := g.board.oracle.Index(v)
	if err != nil {
		return core.ColorDefault
	}
	return core.TileColors[(idx-2)%len(core.TileColors)]
}
