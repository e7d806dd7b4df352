package ui

import (
	"fmt"

	"snake-hamiltonian/game"
	"snake-hamiltonian/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10
	headerHeight  = 30
)

var (
	bodyColor   = rl.Green
	headColor   = rl.Lime
	tailColor   = rl.DarkGreen
	goalColor   = rl.Red
	gridColor   = rl.DarkGray
	skipColor   = rl.Yellow
	winColor    = rl.Green
	loserColor  = rl.Red
	textColor   = rl.White
	bannerColor = rl.Color{R: 0, G: 0, B: 0, A: 200}
)

type Renderer struct {
	cellSize     int32
	screenWidth  int32
	screenHeight int32
	offsetX      int32
	offsetY      int32
	DrawGrid     bool
}

func NewRenderer(drawGrid bool) *Renderer {
	r := &Renderer{DrawGrid: drawGrid}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
}

func (r *Renderer) layout(grid types.Grid) {
	availableWidth := r.screenWidth - borderPadding*2
	availableHeight := r.screenHeight - borderPadding*2 - headerHeight

	cellW := availableWidth / int32(grid.Width)
	cellH := availableHeight / int32(grid.Height)
	r.cellSize = max(min(cellW, cellH), 1)

	totalWidth := r.cellSize * int32(grid.Width)
	totalHeight := r.cellSize * int32(grid.Height)
	r.offsetX = (r.screenWidth - totalWidth) / 2
	r.offsetY = headerHeight + (r.screenHeight-headerHeight-totalHeight)/2
}

// Draw renders one frame of the outcome.
func (r *Renderer) Draw(grid types.Grid, out game.Outcome, speed int) {
	r.UpdateDimensions()
	r.layout(grid)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if r.DrawGrid {
		for x := 0; x < grid.Width; x++ {
			for y := 0; y < grid.Height; y++ {
				rl.DrawRectangleLines(
					r.offsetX+int32(x)*r.cellSize,
					r.offsetY+int32(y)*r.cellSize,
					r.cellSize, r.cellSize, gridColor)
			}
		}
	}

	for i, p := range out.Body {
		if !grid.Contains(p) {
			continue
		}
		color := bodyColor
		switch {
		case i == 0:
			color = headColor
			if out.Skipped {
				color = skipColor
			}
		case i == len(out.Body)-1:
			color = tailColor
		}
		r.cell(p, color)
	}
	if len(out.Body) > 1 && grid.Contains(out.Head) {
		r.headIndicator(out.Head, types.DirectionBetween(out.Body[1], out.Head))
	}

	if out.HasGoal {
		r.cell(out.Goal, goalColor)
	}

	rl.DrawText(fmt.Sprintf("Score: %d", out.Score), borderPadding, 5, 20, textColor)
	status := fmt.Sprintf("Tick %d  Speed %d", out.Tick, speed)
	rl.DrawText(status, r.screenWidth-rl.MeasureText(status, 20)-borderPadding, 5, 20, textColor)

	if out.Over {
		r.endBanner(out)
	}
	rl.EndDrawing()
}

func (r *Renderer) cell(p types.Point, color rl.Color) {
	rl.DrawRectangle(
		r.offsetX+int32(p.X)*r.cellSize,
		r.offsetY+int32(p.Y)*r.cellSize,
		r.cellSize, r.cellSize, color)
}

func (r *Renderer) headIndicator(head types.Point, dir types.Direction) {
	headX := float32(r.offsetX + int32(head.X)*r.cellSize)
	headY := float32(r.offsetY + int32(head.Y)*r.cellSize)
	size := float32(r.cellSize)
	half := size / 2

	switch dir {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: headX + size, Y: headY + half},
			rl.Vector2{X: headX + half, Y: headY},
			rl.Vector2{X: headX + half, Y: headY + size},
			rl.Black)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: headX, Y: headY + half},
			rl.Vector2{X: headX + half, Y: headY + size},
			rl.Vector2{X: headX + half, Y: headY},
			rl.Black)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: headX + half, Y: headY + size},
			rl.Vector2{X: headX + size, Y: headY + half},
			rl.Vector2{X: headX, Y: headY + half},
			rl.Black)
	case types.Up:
		rl.DrawTriangle(
			rl.Vector2{X: headX + half, Y: headY},
			rl.Vector2{X: headX, Y: headY + half},
			rl.Vector2{X: headX + size, Y: headY + half},
			rl.Black)
	}
}

func (r *Renderer) endBanner(out game.Outcome) {
	message, color := "GAME HAS ENDED", loserColor
	if out.Reason == game.EndWin {
		message, color = "YOU WON!", winColor
	}
	const fontSize = 45
	rl.DrawRectangle(0, r.screenHeight/4-10, r.screenWidth, fontSize+50, bannerColor)
	width := rl.MeasureText(message, fontSize)
	rl.DrawText(message, (r.screenWidth-width)/2, r.screenHeight/4, fontSize, color)

	detail := fmt.Sprintf("Score %d - %s", out.Score, out.Reason)
	dw := rl.MeasureText(detail, 20)
	rl.DrawText(detail, (r.screenWidth-dw)/2, r.screenHeight/4+fontSize+5, 20, color)
}
