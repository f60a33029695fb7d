package world

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazmorra/internal/combat"
	"github.com/samdwyer/mazmorra/internal/telemetry"
)

// Move attempts to move the player one cell in the direction named by token.
//
// Rejected moves (unknown token, grid edge, wall) change nothing. Stepping
// onto a live enemy starts combat before the player moves; if the player
// dies the move is aborted. Items on the target cell go into the inventory.
func (d *Dungeon) Move(ctx context.Context, token string) MoveResult {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.move")
	defer span.End()

	result := d.move(ctx, token)

	kinds := make([]string, 0, len(result.Events))
	for _, ev := range result.Events {
		kinds = append(kinds, ev.Kind.String())
	}
	span.SetAttributes(
		attribute.String("token", token),
		attribute.Bool("moved", result.Moved),
		attribute.StringSlice("events", kinds),
		attribute.Int("player.x", d.player.X),
		attribute.Int("player.y", d.player.Y),
		attribute.Int("player.health", d.player.Health),
	)
	return result
}

func (d *Dungeon) move(ctx context.Context, token string) MoveResult {
	var result MoveResult

	if d.IsOver() {
		result.add(Event{Kind: EventSessionOver, X: d.player.X, Y: d.player.Y})
		return result
	}

	dir, err := ParseDirection(token)
	if err != nil {
		result.add(Event{Kind: EventInvalidDirection})
		return result
	}
	result.Direction = dir

	dx, dy := dir.Delta()
	nx, ny := d.player.X+dx, d.player.Y+dy

	if !d.InBounds(nx, ny) {
		result.add(Event{Kind: EventOutOfBounds, X: nx, Y: ny})
		return result
	}
	if d.tiles[ny][nx] == TileWall {
		result.add(Event{Kind: EventWall, X: nx, Y: ny})
		return result
	}

	if enemy := d.enemies[ny][nx]; enemy != nil {
		if enemy.IsAlive() {
			result.add(Event{Kind: EventEncounter, X: nx, Y: ny, Enemy: enemy.Name})
			fight, err := d.resolver.Resolve(ctx, d.player, enemy)
			if err != nil {
				d.logger.Warn("combat could not start", "enemy", enemy.Name, "x", nx, "y", ny, "error", err)
				return result
			}
			if fight.Outcome == combat.StatePlayerLost {
				result.add(Event{Kind: EventPlayerDefeated, X: nx, Y: ny, Enemy: enemy.Name, Combat: &fight})
				d.logger.Info("player defeated", "enemy", enemy.Name, "x", nx, "y", ny, "rounds", len(fight.Rounds))
				return result
			}
			result.add(Event{Kind: EventEnemyDefeated, X: nx, Y: ny, Enemy: enemy.Name, Combat: &fight})
			d.logger.Info("enemy defeated", "enemy", enemy.Name, "x", nx, "y", ny, "rounds", len(fight.Rounds), "health", d.player.Health)
		}
		d.enemies[ny][nx] = nil
	}

	if item := d.items[ny][nx]; item != nil {
		d.player.AddItem(item)
		d.items[ny][nx] = nil
		result.add(Event{Kind: EventItemPicked, X: nx, Y: ny, Item: item})
		d.logger.Info("item picked", "item", item.Name(), "kind", item.Kind().String(), "x", nx, "y", ny)
	}

	if d.IsExit(nx, ny) {
		result.add(Event{Kind: EventExitFound, X: nx, Y: ny})
	}

	d.player.Move(dx, dy)
	result.Moved = true
	result.add(Event{Kind: EventMoved, X: nx, Y: ny})
	return result
}

// UseItem consumes an inventory item chosen by its displayed 1-based
// position. Choice 0 cancels. Any other out-of-range choice fails with
// entity.ErrInvalidIndex and changes nothing.
func (d *Dungeon) UseItem(ctx context.Context, choice int) (UseResult, error) {
	if choice == 0 {
		return UseResult{Cancelled: true}, nil
	}
	if d.IsOver() {
		return UseResult{}, ErrSessionOver
	}

	tracer := telemetry.Tracer("inventory")
	_, span := tracer.Start(ctx, "inventory.use")
	defer span.End()
	span.SetAttributes(attribute.Int("choice", choice))

	effect, err := d.player.UseItem(choice - 1)
	if err != nil {
		span.RecordError(err)
		return UseResult{}, err
	}

	span.SetAttributes(
		attribute.String("item", effect.Item),
		attribute.String("kind", effect.Kind.String()),
		attribute.Int("amount", effect.Amount),
	)
	d.logger.Info("item used", "item", effect.Item, "kind", effect.Kind.String(), "amount", effect.Amount)
	return UseResult{Effect: effect}, nil
}

// IsOver reports whether the session has ended: the player stands on the
// exit or has no health left.
func (d *Dungeon) IsOver() bool {
	return d.Status() != StatusInProgress
}

// Status returns the session's terminal state. Death takes precedence.
func (d *Dungeon) Status() Status {
	switch {
	case !d.player.IsAlive():
		return StatusLost
	case d.IsExit(d.player.X, d.player.Y):
		return StatusWon
	default:
		return StatusInProgress
	}
}
