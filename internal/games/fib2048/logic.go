package fib2048

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/fib2048/internal/fib"
)

// Size is the board dimension.
const Size = 4

// BaseValue is the value of every spawned tile.
const BaseValue = 1

// Seed tile bounds for Initialize.
const (
	MinSeedTiles = 1
	MaxSeedTiles = 4
)

// ErrBoardFull is returned by SpawnTile when no cell is empty.
var ErrBoardFull = errors.New("fib2048: board is full")

// Grid holds tile values indexed as grid[y][x]; 0 marks an empty cell.
type Grid [Size][Size]int

// Tile is a single numbered piece on the board.
type Tile struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Value int `json:"value"`
}

// Cell is a board coordinate.
type Cell struct {
	X, Y int
}

// Board owns the tile grid, the spawn RNG and the Fibonacci oracle.
type Board struct {
	grid   Grid
	rng    *rand.Rand
	oracle *fib.Oracle
}

// MoveResult describes what a Move did.
type MoveResult struct {
	Changed bool  // Some tile moved or merged
	Merges  int   // Number of merges performed
	Spawned *Tile // Tile placed after the move, nil if none
}

// NewBoard creates an empty board drawing randomness from rng.
func NewBoard(rng *rand.Rand) *Board {
	return &Board{
		rng:    rng,
		oracle: fib.NewOracle(),
	}
}

// NewBoardFromGrid creates a board holding the given layout.
func NewBoardFromGrid(rng *rand.Rand, grid Grid) (*Board, error) {
	b := NewBoard(rng)
	if err := b.validate(grid); err != nil {
		return nil, err
	}
	b.grid = grid
	return b, nil
}

// Initialize clears the board and spawns count base tiles.
func (b *Board) Initialize(count int) error {
	if count < MinSeedTiles || count > MaxSeedTiles {
		return fmt.Errorf("%w: seed tile count %d out of range [%d, %d]",
			fib.ErrInvalidArgument, count, MinSeedTiles, MaxSeedTiles)
	}

	b.grid = Grid{}
	for range count {
		if _, err := b.SpawnTile(); err != nil {
			return err
		}
	}
	return nil
}

// SetTiles replaces the board contents with the given tiles.
func (b *Board) SetTiles(tiles []Tile) error {
	var grid Grid
	for _, t := range tiles {
		if !inBounds(t.X, t.Y) {
			return fmt.Errorf("fib2048: tile (%d,%d) out of bounds", t.X, t.Y)
		}
		if t.Value <= 0 {
			return fmt.Errorf("fib2048: tile (%d,%d) has non-positive value %d", t.X, t.Y, t.Value)
		}
		if grid[t.Y][t.X] != 0 {
			return fmt.Errorf("fib2048: cell (%d,%d) occupied twice", t.X, t.Y)
		}
		grid[t.Y][t.X] = t.Value
	}

	if err := b.validate(grid); err != nil {
		return err
	}
	b.grid = grid
	return nil
}

// validate checks that every non-empty cell holds a positive Fibonacci number.
func (b *Board) validate(grid Grid) error {
	for y := range Size {
		for x := range Size {
			v := grid[y][x]
			if v == 0 {
				continue
			}
			if _, err := b.oracle.Index(v); err != nil {
				return fmt.Errorf("fib2048: tile (%d,%d): %w", x, y, err)
			}
		}
	}
	return nil
}

// Grid returns a copy of the current layout.
func (b *Board) Grid() Grid {
	return b.grid
}

// Tiles returns a snapshot of all tiles in row-major order.
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, 0, Size*Size)
	for y := range Size {
		for x := range Size {
			if v := b.grid[y][x]; v != 0 {
				tiles = append(tiles, Tile{X: x, Y: y, Value: v})
			}
		}
	}
	return tiles
}

// TileCount returns the number of occupied cells.
func (b *Board) TileCount() int {
	n := 0
	for y := range Size {
		for x := range Size {
			if b.grid[y][x] != 0 {
				n++
			}
		}
	}
	return n
}

// Sum returns the total of all tile values.
func (b *Board) Sum() int {
	sum := 0
	for y := range Size {
		for x := range Size {
			sum += b.grid[y][x]
		}
	}
	return sum
}

// MaxTile returns the largest tile value on the board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for y := range Size {
		for x := range Size {
			maxVal = max(maxVal, b.grid[y][x])
		}
	}
	return maxVal
}

// CanMerge reports whether two tile values may combine.
// Two base tiles always merge; otherwise their indices must differ by exactly one.
func (b *Board) CanMerge(a, c int) (bool, error) {
	if a == BaseValue && c == BaseValue {
		return true, nil
	}

	ia, err := b.oracle.Index(a)
	if err != nil {
		return false, err
	}
	ic, err := b.oracle.Index(c)
	if err != nil {
		return false, err
	}

	d := ia - ic
	return d == 1 || d == -1, nil
}

// EmptyCells returns unoccupied coordinates, scanning rows top to bottom
// and each row left to right.
func (b *Board) EmptyCells() []Cell {
	var cells []Cell
	for y := range Size {
		for x := range Size {
			if b.grid[y][x] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// SpawnTile places a base tile on a uniformly chosen empty cell.
func (b *Board) SpawnTile() (Tile, error) {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return Tile{}, ErrBoardFull
	}

	c := cells[b.rng.Intn(len(cells))]
	b.grid[c.Y][c.X] = BaseValue
	return Tile{X: c.X, Y: c.Y, Value: BaseValue}, nil
}

// Move slides and merges every line toward dir, then spawns a tile if
// anything changed. The new layout is built separately and swapped in
// only when all lines succeed.
func (b *Board) Move(dir Direction) (MoveResult, error) {
	var res MoveResult
	if !dir.Valid() {
		return res, fmt.Errorf("%w: direction %d", fib.ErrInvalidArgument, int(dir))
	}

	var next Grid
	for i := range Size {
		cells := lineCells(dir, i)

		var line [Size]int
		for k, c := range cells {
			line[k] = b.grid[c.Y][c.X]
		}

		out, merges, err := b.slideLine(line)
		if err != nil {
			return MoveResult{}, err
		}
		res.Merges += merges

		for k, c := range cells {
			next[c.Y][c.X] = out[k]
		}
	}

	res.Changed = next != b.grid
	if !res.Changed {
		return res, nil
	}
	b.grid = next

	t, err := b.SpawnTile()
	switch {
	case errors.Is(err, ErrBoardFull):
		// The move stands; only the spawn is skipped.
	case err != nil:
		return res, err
	default:
		res.Spawned = &t
	}
	return res, nil
}

// slideLine compacts a line toward index 0, merging each tile at most once.
func (b *Board) slideLine(line [Size]int) (out [Size]int, merges int, err error) {
	var merged [Size]bool
	w := 0

	for _, v := range line {
		if v == 0 {
			continue
		}

		if w > 0 && !merged[w-1] {
			ok, err := b.CanMerge(out[w-1], v)
			if err != nil {
				return out, 0, err
			}
			if ok {
				out[w-1] += v
				merged[w-1] = true
				merges++
				continue
			}
		}

		out[w] = v
		w++
	}

	return out, merges, nil
}

// lineCells lists the cells of line i ordered from the leading edge of dir.
func lineCells(dir Direction, i int) [Size]Cell {
	step := dir.Vec()
	var cells [Size]Cell
	for k := range Size {
		if step.DX != 0 {
			cells[k] = Cell{X: edgeOffset(step.DX, k), Y: i}
		} else {
			cells[k] = Cell{X: i, Y: edgeOffset(step.DY, k)}
		}
	}
	return cells
}

// edgeOffset returns the coordinate k steps back from the edge a unit step points at.
func edgeOffset(step, k int) int {
	if step < 0 {
		return k
	}
	return Size - 1 - k
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// String renders the grid as rows of right-aligned values, '.' for empty.
func (b *Board) String() string {
	width := len(strconv.Itoa(b.MaxTile()))
	var sb strings.Builder
	for y := range Size {
		for x := range Size {
			if x > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if v := b.grid[y][x]; v != 0 {
				cell = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", max(0, width-len(cell))))
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
