package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazmorra/internal/combat"
	"github.com/samdwyer/mazmorra/internal/entity"
	"github.com/samdwyer/mazmorra/internal/gamedata"
	"github.com/samdwyer/mazmorra/internal/telemetry"
)

const (
	// DefaultSize is the side length of a standard dungeon.
	DefaultSize = 50
	// MinSize is the smallest accepted side length: a start cell, the exit
	// and room for one enemy and one item.
	MinSize = 2

	// wallChance is the percentage of cells rolled as wall.
	wallChance = 20
	// placementAttempts bounds rejection sampling before falling back to a scan.
	placementAttempts = 100
)

var (
	// ErrSizeTooSmall is returned for a side length below MinSize.
	ErrSizeTooSmall = fmt.Errorf("dungeon size must be at least %d", MinSize)
	// ErrInvalidStart is returned when the player starts off the grid or on the exit.
	ErrInvalidStart = errors.New("player start must be inside the grid and not on the exit")
	// ErrNoFreeCell is returned when no floor cell is left for an enemy or item.
	ErrNoFreeCell = errors.New("no free floor cell left for placement")
	// ErrSessionOver is returned for commands issued after the session ended.
	ErrSessionOver = errors.New("session is over")
)

// Dungeon represents the game map: an N×N terrain grid plus parallel
// occupancy grids holding at most one enemy or one item per cell.
// Display markers for enemies, items and the player are derived from those
// grids at render time, so a marker exists exactly when its occupant does.
type Dungeon struct {
	Size int

	tiles   [][]Tile
	enemies [][]*entity.Enemy
	items   [][]entity.Item
	player  *entity.Player

	exitX, exitY int

	catalog  *gamedata.Catalog
	resolver *combat.Resolver
	rng      *rand.Rand
	logger   *slog.Logger
}

// Option customizes a Dungeon.
type Option func(*Dungeon)

// WithLogger sets the logger used for generation and interaction messages.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dungeon) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithCatalog sets the content tables used by Generate.
func WithCatalog(catalog *gamedata.Catalog) Option {
	return func(d *Dungeon) {
		if catalog != nil {
			d.catalog = catalog
		}
	}
}

// NewDungeon creates an all-floor dungeon with the exit in the bottom-right
// corner and the player at its current position. Call Generate to roll walls
// and populate it. A nil rng is seeded from the clock.
func NewDungeon(size int, player *entity.Player, rng *rand.Rand, opts ...Option) (*Dungeon, error) {
	if size < MinSize {
		return nil, fmt.Errorf("%w: got %d", ErrSizeTooSmall, size)
	}
	if player == nil {
		return nil, errors.New("dungeon requires a player")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	d := &Dungeon{
		Size:   size,
		player: player,
		exitX:  size - 1,
		exitY:  size - 1,
		rng:    rng,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if !d.InBounds(player.X, player.Y) || d.IsExit(player.X, player.Y) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrInvalidStart, player.X, player.Y, size, size)
	}

	if d.catalog == nil {
		catalog, err := gamedata.LoadCatalog()
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		d.catalog = catalog
	}
	d.resolver = combat.NewResolver(d.logger)

	d.reset(TileFloor)
	return d, nil
}

// reset fills the terrain with fill, clears occupants and restores the
// exit and the player's cell.
func (d *Dungeon) reset(fill Tile) {
	d.tiles = make([][]Tile, d.Size)
	d.enemies = make([][]*entity.Enemy, d.Size)
	d.items = make([][]entity.Item, d.Size)
	for y := range d.tiles {
		d.tiles[y] = make([]Tile, d.Size)
		d.enemies[y] = make([]*entity.Enemy, d.Size)
		d.items[y] = make([]entity.Item, d.Size)
		for x := range d.tiles[y] {
			d.tiles[y][x] = fill
		}
	}
	d.tiles[d.exitY][d.exitX] = TileExit
	d.tiles[d.player.Y][d.player.X] = TileFloor
}

// Generate rolls the wall mask and places Size/2 enemies and Size/2 items.
// Each cell independently becomes a wall with a 20% chance; the exit and the
// player's starting cell are then forced clear. When the roll leaves too few
// floor cells for the occupants, random walls are reopened.
func (d *Dungeon) Generate(ctx context.Context) error {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	d.reset(TileFloor)
	walls := 0
	for y := 0; y < d.Size; y++ {
		for x := 0; x < d.Size; x++ {
			if d.rng.Intn(100) < wallChance {
				d.tiles[y][x] = TileWall
				walls++
			}
		}
	}
	if d.tiles[d.exitY][d.exitX] == TileWall {
		walls--
	}
	d.tiles[d.exitY][d.exitX] = TileExit
	if d.tiles[d.player.Y][d.player.X] == TileWall {
		walls--
	}
	d.tiles[d.player.Y][d.player.X] = TileFloor
	walls -= d.openFloor(2 * (d.Size / 2))

	for i := 0; i < d.Size/2; i++ {
		if err := d.placeEnemy(); err != nil {
			span.RecordError(err)
			return err
		}
		if err := d.placeItem(); err != nil {
			span.RecordError(err)
			return err
		}
	}

	span.SetAttributes(
		attribute.Int("dungeon.size", d.Size),
		attribute.Int("dungeon.walls", walls),
		attribute.Int("dungeon.enemies", d.EnemyCount()),
		attribute.Int("dungeon.items", d.ItemCount()),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	d.logger.Info("dungeon generated",
		"size", d.Size,
		"walls", walls,
		"enemies", d.EnemyCount(),
		"items", d.ItemCount(),
	)
	return nil
}

// openFloor turns random walls back into floor until at least need cells
// can hold an occupant, and returns how many walls it removed. It is a no-op
// unless the roll left the grid too crowded, which only happens on very
// small grids.
func (d *Dungeon) openFloor(need int) int {
	var walls [][2]int
	free := 0
	for y := 0; y < d.Size; y++ {
		for x := 0; x < d.Size; x++ {
			switch {
			case d.tiles[y][x] == TileWall:
				walls = append(walls, [2]int{x, y})
			case d.isFree(x, y):
				free++
			}
		}
	}

	opened := 0
	for free < need && len(walls) > 0 {
		i := d.rng.Intn(len(walls))
		cell := walls[i]
		walls[i] = walls[len(walls)-1]
		walls = walls[:len(walls)-1]
		d.tiles[cell[1]][cell[0]] = TileFloor
		free++
		opened++
	}
	return opened
}

// placeEnemy puts a fresh copy of the default enemy on a free cell.
func (d *Dungeon) placeEnemy() error {
	x, y, err := d.randomFreeCell()
	if err != nil {
		return fmt.Errorf("place enemy: %w", err)
	}
	d.enemies[y][x] = entity.NewEnemyFromDef(d.catalog.DefaultEnemy())
	return nil
}

// placeItem puts a potion or a weapon, 50/50, on a free cell.
func (d *Dungeon) placeItem() error {
	x, y, err := d.randomFreeCell()
	if err != nil {
		return fmt.Errorf("place item: %w", err)
	}
	if d.rng.Intn(2) == 0 {
		def := d.catalog.RandomPotion(d.rng)
		d.items[y][x] = entity.NewPotion(def.Name, def.Restore)
	} else {
		def := d.catalog.RandomWeapon(d.rng)
		d.items[y][x] = entity.NewWeapon(def.Name, def.AttackBonus)
	}
	return nil
}

// randomFreeCell samples uniformly until it hits a free cell. After
// placementAttempts misses it scans the grid and picks uniformly among the
// free cells that remain.
func (d *Dungeon) randomFreeCell() (int, int, error) {
	for i := 0; i < placementAttempts; i++ {
		x := d.rng.Intn(d.Size)
		y := d.rng.Intn(d.Size)
		if d.isFree(x, y) {
			return x, y, nil
		}
	}

	var free [][2]int
	for y := 0; y < d.Size; y++ {
		for x := 0; x < d.Size; x++ {
			if d.isFree(x, y) {
				free = append(free, [2]int{x, y})
			}
		}
	}
	if len(free) == 0 {
		return -1, -1, ErrNoFreeCell
	}
	cell := free[d.rng.Intn(len(free))]
	return cell[0], cell[1], nil
}

// isFree reports whether a cell is floor with no occupant and no player.
func (d *Dungeon) isFree(x, y int) bool {
	if d.tiles[y][x] != TileFloor {
		return false
	}
	if d.enemies[y][x] != nil || d.items[y][x] != nil {
		return false
	}
	return x != d.player.X || y != d.player.Y
}

// InBounds reports whether (x, y) lies inside the grid.
func (d *Dungeon) InBounds(x, y int) bool {
	return x >= 0 && x < d.Size && y >= 0 && y < d.Size
}

// IsPassable returns true if the given position can be walked on.
func (d *Dungeon) IsPassable(x, y int) bool {
	if !d.InBounds(x, y) {
		return false
	}
	return d.tiles[y][x].IsPassable()
}

// IsExit reports whether (x, y) is the exit cell.
func (d *Dungeon) IsExit(x, y int) bool {
	return x == d.exitX && y == d.exitY
}

// Exit returns the exit coordinates.
func (d *Dungeon) Exit() (int, int) {
	return d.exitX, d.exitY
}

// GetTile returns the terrain at the given position. Off-grid cells read as wall.
func (d *Dungeon) GetTile(x, y int) Tile {
	if !d.InBounds(x, y) {
		return TileWall
	}
	return d.tiles[y][x]
}

// EnemyAt returns the enemy occupying (x, y), or nil.
func (d *Dungeon) EnemyAt(x, y int) *entity.Enemy {
	if !d.InBounds(x, y) {
		return nil
	}
	return d.enemies[y][x]
}

// ItemAt returns the item lying on (x, y), or nil.
func (d *Dungeon) ItemAt(x, y int) entity.Item {
	if !d.InBounds(x, y) {
		return nil
	}
	return d.items[y][x]
}

// EnemyCount returns the number of enemies still on the grid.
func (d *Dungeon) EnemyCount() int {
	n := 0
	for _, row := range d.enemies {
		for _, e := range row {
			if e != nil {
				n++
			}
		}
	}
	return n
}

// ItemCount returns the number of unclaimed items on the grid.
func (d *Dungeon) ItemCount() int {
	n := 0
	for _, row := range d.items {
		for _, it := range row {
			if it != nil {
				n++
			}
		}
	}
	return n
}

// Player returns the player exploring this dungeon.
func (d *Dungeon) Player() *entity.Player {
	return d.player
}

// Catalog returns the content tables this dungeon was built from.
func (d *Dungeon) Catalog() *gamedata.Catalog {
	return d.catalog
}

// SetTile overwrites the terrain of an in-bounds cell. The exit cell cannot
// be changed and the player's cell cannot become a wall.
func (d *Dungeon) SetTile(x, y int, t Tile) error {
	if !d.InBounds(x, y) {
		return fmt.Errorf("set tile (%d,%d): out of bounds", x, y)
	}
	if d.IsExit(x, y) || t == TileExit {
		return fmt.Errorf("set tile (%d,%d): exit is fixed", x, y)
	}
	if t == TileWall && (d.enemies[y][x] != nil || d.items[y][x] != nil || (x == d.player.X && y == d.player.Y)) {
		return fmt.Errorf("set tile (%d,%d): cell is occupied", x, y)
	}
	d.tiles[y][x] = t
	return nil
}

// PlaceEnemy puts e on a free floor cell.
func (d *Dungeon) PlaceEnemy(x, y int, e *entity.Enemy) error {
	if !d.InBounds(x, y) || !d.isFree(x, y) {
		return fmt.Errorf("place enemy at (%d,%d): %w", x, y, ErrNoFreeCell)
	}
	d.enemies[y][x] = e
	return nil
}

// PlaceItem puts item on a free floor cell.
func (d *Dungeon) PlaceItem(x, y int, item entity.Item) error {
	if !d.InBounds(x, y) || !d.isFree(x, y) {
		return fmt.Errorf("place item at (%d,%d): %w", x, y, ErrNoFreeCell)
	}
	d.items[y][x] = item
	return nil
}
