package fib2048

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/fib2048/internal/fib"
)

func newTestBoard(t *testing.T, seed int64, tiles ...Tile) *Board {
	t.Helper()
	b := NewBoard(rand.New(rand.NewSource(seed)))
	if err := b.SetTiles(tiles); err != nil {
		t.Fatalf("SetTiles() failed: %v", err)
	}
	return b
}

func gridBoard(t *testing.T, g Grid) *Board {
	t.Helper()
	b, err := NewBoardFromGrid(rand.New(rand.NewSource(1)), g)
	if err != nil {
		t.Fatalf("NewBoardFromGrid() failed: %v", err)
	}
	return b
}

// withoutSpawn returns the grid with the spawned tile removed.
func withoutSpawn(b *Board, res MoveResult) Grid {
	g := b.Grid()
	if res.Spawned != nil {
		g[res.Spawned.Y][res.Spawned.X] = 0
	}
	return g
}

func TestCanMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want bool
	}{
		{"two base tiles", 1, 1, true},
		{"2 and 3 adjacent", 2, 3, true},
		{"3 and 2 adjacent", 3, 2, true},
		{"2 and 5 gap of two", 2, 5, false},
		{"1 and 2 adjacent", 1, 2, true},
		{"1 and 3 not adjacent", 1, 3, false},
		{"equal 2s", 2, 2, false},
		{"equal 8s", 8, 8, false},
		{"5 and 8", 5, 8, true},
		{"89 and 144", 89, 144, true},
	}

	b := NewBoard(rand.New(rand.NewSource(1)))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := b.CanMerge(tc.a, tc.b)
			if err != nil {
				t.Fatalf("CanMerge(%d, %d) failed: %v", tc.a, tc.b, err)
			}
			if got != tc.want {
				t.Errorf("CanMerge(%d, %d) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCanMergeCorruptValue(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(1)))

	if _, err := b.CanMerge(4, 5); !errors.Is(err, fib.ErrNotFibonacci) {
		t.Errorf("CanMerge(4, 5) error = %v, want ErrNotFibonacci", err)
	}
	if _, err := b.CanMerge(5, 6); !errors.Is(err, fib.ErrNotFibonacci) {
		t.Errorf("CanMerge(5, 6) error = %v, want ErrNotFibonacci", err)
	}
}

func TestSlideLine(t *testing.T) {
	tests := []struct {
		name     string
		input    [Size]int
		expected [Size]int
		merges   int
	}{
		{"base pair", [Size]int{1, 1, 0, 0}, [Size]int{2, 0, 0, 0}, 1},
		{"adjacent indices", [Size]int{2, 3, 0, 0}, [Size]int{5, 0, 0, 0}, 1},
		{"larger first", [Size]int{3, 2, 0, 0}, [Size]int{5, 0, 0, 0}, 1},
		{"slide across gaps", [Size]int{2, 0, 0, 3}, [Size]int{5, 0, 0, 0}, 1},
		{"equal values stay apart", [Size]int{2, 0, 2, 0}, [Size]int{2, 2, 0, 0}, 0},
		{"index gap of two", [Size]int{2, 5, 0, 0}, [Size]int{2, 5, 0, 0}, 0},
		{"four base tiles", [Size]int{1, 1, 1, 1}, [Size]int{2, 2, 0, 0}, 2},
		{"merged tile does not merge again", [Size]int{1, 1, 1, 0}, [Size]int{2, 1, 0, 0}, 1},
		{"leading pair wins", [Size]int{2, 1, 1, 0}, [Size]int{3, 1, 0, 0}, 1},
		{"chain is not collapsed", [Size]int{1, 2, 3, 0}, [Size]int{3, 3, 0, 0}, 1},
		{"no change needed", [Size]int{5, 1, 0, 0}, [Size]int{5, 1, 0, 0}, 0},
		{"empty line", [Size]int{0, 0, 0, 0}, [Size]int{0, 0, 0, 0}, 0},
		{"single tile", [Size]int{0, 0, 13, 0}, [Size]int{13, 0, 0, 0}, 0},
	}

	b := NewBoard(rand.New(rand.NewSource(1)))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, merges, err := b.slideLine(tc.input)
			if err != nil {
				t.Fatalf("slideLine(%v) failed: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("slideLine(%v) = %v, want %v", tc.input, got, tc.expected)
			}
			if merges != tc.merges {
				t.Errorf("slideLine(%v) merges = %d, want %d", tc.input, merges, tc.merges)
			}
		})
	}
}

var directionBoard = Grid{
	{1, 1, 0, 0},
	{2, 0, 3, 0},
	{0, 0, 0, 0},
	{0, 5, 0, 8},
}

func TestMoveEachDirection(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected Grid
	}{
		{DirLeft, Grid{
			{2, 0, 0, 0},
			{5, 0, 0, 0},
			{0, 0, 0, 0},
			{13, 0, 0, 0},
		}},
		{DirRight, Grid{
			{0, 0, 0, 2},
			{0, 0, 0, 5},
			{0, 0, 0, 0},
			{0, 0, 0, 13},
		}},
		{DirUp, Grid{
			{3, 1, 3, 8},
			{0, 5, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}},
		{DirDown, Grid{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 1, 0, 0},
			{3, 5, 3, 8},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			b := gridBoard(t, directionBoard)
			res, err := b.Move(tc.dir)
			if err != nil {
				t.Fatalf("Move(%s) failed: %v", tc.dir, err)
			}
			if !res.Changed {
				t.Errorf("Move(%s) should report a change", tc.dir)
			}
			if res.Spawned == nil {
				t.Fatalf("Move(%s) should spawn a tile", tc.dir)
			}
			if got := withoutSpawn(b, res); got != tc.expected {
				t.Errorf("Move(%s): got\n%v\nwant\n%v", tc.dir, got, tc.expected)
			}
		})
	}
}

func TestMoveMergeBaseTiles(t *testing.T) {
	b := newTestBoard(t, 7, Tile{0, 0, 1}, Tile{1, 0, 1})

	res, err := b.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move() failed: %v", err)
	}

	if res.Merges != 1 {
		t.Errorf("Merges = %d, want 1", res.Merges)
	}
	if got := b.Grid()[0][0]; got != 2 {
		t.Errorf("tile at (0,0) = %d, want 2", got)
	}
	if res.Spawned == nil {
		t.Fatal("expected a spawned tile")
	}
	if res.Spawned.Value != BaseValue {
		t.Errorf("spawned value = %d, want %d", res.Spawned.Value, BaseValue)
	}
	if res.Spawned.X == 0 && res.Spawned.Y == 0 {
		t.Error("spawn must land on an empty cell")
	}
	if b.TileCount() != 2 {
		t.Errorf("TileCount() = %d, want 2", b.TileCount())
	}
}

func TestMoveMergeAdjacentIndices(t *testing.T) {
	b := newTestBoard(t, 7, Tile{0, 0, 2}, Tile{1, 0, 3})

	res, err := b.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move() failed: %v", err)
	}

	g := withoutSpawn(b, res)
	if g != (Grid{{5, 0, 0, 0}}) {
		t.Errorf("got\n%v\nwant single 5 at (0,0)", g)
	}
	if res.Spawned == nil {
		t.Error("expected a spawned tile")
	}
}

func TestMoveEqualIndicesCompactWithoutMerging(t *testing.T) {
	b := newTestBoard(t, 7, Tile{0, 0, 2}, Tile{2, 0, 2})

	res, err := b.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move() failed: %v", err)
	}

	if res.Merges != 0 {
		t.Errorf("Merges = %d, want 0", res.Merges)
	}
	g := withoutSpawn(b, res)
	if g != (Grid{{2, 2, 0, 0}}) {
		t.Errorf("got\n%v\nwant 2 2 in the first row", g)
	}
	if res.Spawned == nil {
		t.Error("tiles moved, a spawn should follow")
	}
}

func TestMoveAtLeadingEdgeIsNoop(t *testing.T) {
	for _, dir := range []Direction{DirLeft, DirUp} {
		b := newTestBoard(t, 3, Tile{0, 0, 8})
		before := b.Grid()

		res, err := b.Move(dir)
		if err != nil {
			t.Fatalf("Move(%s) failed: %v", dir, err)
		}
		if res.Changed || res.Spawned != nil {
			t.Errorf("Move(%s) on a tile at the edge should be a no-op, got %+v", dir, res)
		}
		if b.Grid() != before {
			t.Errorf("Move(%s) changed the board", dir)
		}
	}
}

func TestMoveStuckFullBoard(t *testing.T) {
	// 2 and 8 are three indices apart and no two equal values touch
	stuck := Grid{
		{2, 8, 2, 8},
		{8, 2, 8, 2},
		{2, 8, 2, 8},
		{8, 2, 8, 2},
	}

	for _, dir := range Directions() {
		b := gridBoard(t, stuck)
		res, err := b.Move(dir)
		if err != nil {
			t.Fatalf("Move(%s) failed: %v", dir, err)
		}
		if res.Changed || res.Spawned != nil || res.Merges != 0 {
			t.Errorf("Move(%s) on a stuck board = %+v, want no-op", dir, res)
		}
		if b.Grid() != stuck {
			t.Errorf("Move(%s) changed a stuck board", dir)
		}
	}
}

func TestMoveInvalidDirection(t *testing.T) {
	b := newTestBoard(t, 1, Tile{3, 3, 1})

	if _, err := b.Move(Direction(9)); !errors.Is(err, fib.ErrInvalidArgument) {
		t.Errorf("Move(9) error = %v, want ErrInvalidArgument", err)
	}
}

func TestMoveCorruptBoardLeavesGridUntouched(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(1)))
	b.grid = Grid{{4, 2, 0, 0}}
	before := b.Grid()

	_, err := b.Move(DirLeft)
	if !errors.Is(err, fib.ErrNotFibonacci) {
		t.Fatalf("Move() error = %v, want ErrNotFibonacci", err)
	}
	if b.Grid() != before {
		t.Error("a failed move must not modify the board")
	}
}

func TestConservationAndInvariants(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(2024)))
	if err := b.Initialize(2); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	dirs := Directions()
	rng := rand.New(rand.NewSource(99))
	for i := range 500 {
		before := b.Sum()
		res, err := b.Move(dirs[rng.Intn(len(dirs))])
		if err != nil {
			t.Fatalf("move %d failed: %v", i, err)
		}

		want := before
		if res.Spawned != nil {
			want += BaseValue
		}
		if got := b.Sum(); got != want {
			t.Fatalf("move %d: sum = %d, want %d", i, got, want)
		}
		if !res.Changed && res.Spawned != nil {
			t.Fatalf("move %d: spawn without change", i)
		}

		if b.TileCount() > Size*Size {
			t.Fatalf("move %d: %d tiles exceed capacity", i, b.TileCount())
		}
		for _, tile := range b.Tiles() {
			if !b.oracle.IsFibonacci(tile.Value) {
				t.Fatalf("move %d: tile %+v is not a Fibonacci number", i, tile)
			}
		}
	}
}

func TestEmptyCellsOrder(t *testing.T) {
	b := newTestBoard(t, 1, Tile{0, 0, 1}, Tile{2, 0, 1}, Tile{1, 1, 1})

	cells := b.EmptyCells()
	if len(cells) != 13 {
		t.Fatalf("EmptyCells count = %d, want 13", len(cells))
	}

	want := []Cell{{1, 0}, {3, 0}, {0, 1}, {2, 1}}
	for i, c := range want {
		if cells[i] != c {
			t.Errorf("EmptyCells()[%d] = %v, want %v", i, cells[i], c)
		}
	}
}

func TestSpawnTileFull(t *testing.T) {
	var full Grid
	for y := range Size {
		for x := range Size {
			full[y][x] = 2
		}
	}
	b := gridBoard(t, full)

	if _, err := b.SpawnTile(); !errors.Is(err, ErrBoardFull) {
		t.Errorf("SpawnTile() error = %v, want ErrBoardFull", err)
	}
}

func TestSpawnTileFillsBoard(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(5)))

	for i := range Size * Size {
		tile, err := b.SpawnTile()
		if err != nil {
			t.Fatalf("spawn %d failed: %v", i, err)
		}
		if tile.Value != BaseValue {
			t.Errorf("spawned value = %d, want %d", tile.Value, BaseValue)
		}
	}
	if len(b.EmptyCells()) != 0 {
		t.Error("board should be full after 16 spawns")
	}
}

func TestInitialize(t *testing.T) {
	for count := MinSeedTiles; count <= MaxSeedTiles; count++ {
		b := NewBoard(rand.New(rand.NewSource(int64(count))))
		if err := b.Initialize(count); err != nil {
			t.Fatalf("Initialize(%d) failed: %v", count, err)
		}
		if b.TileCount() != count {
			t.Errorf("Initialize(%d) placed %d tiles", count, b.TileCount())
		}
		if b.Sum() != count*BaseValue {
			t.Errorf("Initialize(%d) tiles should all be base value", count)
		}
	}

	b := NewBoard(rand.New(rand.NewSource(1)))
	for _, count := range []int{0, 5, -1} {
		if err := b.Initialize(count); !errors.Is(err, fib.ErrInvalidArgument) {
			t.Errorf("Initialize(%d) error = %v, want ErrInvalidArgument", count, err)
		}
	}
}

func TestInitializeDeterministic(t *testing.T) {
	a := NewBoard(rand.New(rand.NewSource(12345)))
	b := NewBoard(rand.New(rand.NewSource(12345)))

	if err := a.Initialize(4); err != nil {
		t.Fatal(err)
	}
	if err := b.Initialize(4); err != nil {
		t.Fatal(err)
	}
	if a.Grid() != b.Grid() {
		t.Errorf("Same seed should produce same board:\n%v\nvs\n%v", a, b)
	}
}

func TestSetTilesValidation(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(1)))

	tests := []struct {
		name  string
		tiles []Tile
	}{
		{"out of bounds", []Tile{{4, 0, 1}}},
		{"negative coordinate", []Tile{{0, -1, 1}}},
		{"shared cell", []Tile{{1, 1, 1}, {1, 1, 2}}},
		{"not fibonacci", []Tile{{0, 0, 4}}},
		{"zero value", []Tile{{0, 0, 0}, {0, 0, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := b.SetTiles(tc.tiles); err == nil {
				t.Errorf("SetTiles(%v) should fail", tc.tiles)
			}
		})
	}
}

func TestTilesSnapshot(t *testing.T) {
	b := newTestBoard(t, 1, Tile{3, 2, 5}, Tile{0, 0, 1})

	tiles := b.Tiles()
	want := []Tile{{0, 0, 1}, {3, 2, 5}}
	if len(tiles) != len(want) {
		t.Fatalf("Tiles() = %v, want %v", tiles, want)
	}
	for i := range want {
		if tiles[i] != want[i] {
			t.Errorf("Tiles()[%d] = %v, want %v", i, tiles[i], want[i])
		}
	}

	// Mutating the snapshot does not reach the board
	tiles[0].Value = 89
	if b.Grid()[0][0] != 1 {
		t.Error("Tiles() must return a copy")
	}
}

func TestBoardString(t *testing.T) {
	b := newTestBoard(t, 1, Tile{0, 0, 13}, Tile{3, 3, 1})

	want := "13  .  .  .\n" +
		" .  .  .  .\n" +
		" .  .  .  .\n" +
		" .  .  .  1\n"
	if got := b.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", DirUp},
		{"DOWN", DirDown},
		{" left ", DirLeft},
		{"r", DirRight},
		{"U", DirUp},
	}
	for _, tc := range tests {
		got, err := ParseDirection(tc.in)
		if err != nil {
			t.Errorf("ParseDirection(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDirection(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := ParseDirection("sideways"); !errors.Is(err, fib.ErrInvalidArgument) {
		t.Errorf("ParseDirection(sideways) error = %v, want ErrInvalidArgument", err)
	}
}

func TestDirectionVectors(t *testing.T) {
	for _, d := range Directions() {
		v := d.Vec()
		if abs(v.DX)+abs(v.DY) != 1 {
			t.Errorf("%s vector %+v is not a unit step", d, v)
		}
	}
	if (Direction(7).Vec() != Vec{}) {
		t.Error("invalid direction should have a zero vector")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
