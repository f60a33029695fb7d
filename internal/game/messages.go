package game

import (
	"fmt"

	"github.com/samdwyer/mazmorra/internal/combat"
	"github.com/samdwyer/mazmorra/internal/entity"
	"github.com/samdwyer/mazmorra/internal/world"
)

// Player-facing text.
const (
	Title = "=== Aventura en la Mazmorra ==="

	MsgInvalidDirection = "Dirección inválida."
	MsgOutOfBounds      = "No puedes moverte fuera del mapa."
	MsgWall             = "Hay una pared en esa dirección."
	MsgExitFound        = "¡Has encontrado la salida!"
	MsgSessionOver      = "La partida ha terminado."
	MsgStalemate        = "Ninguno de los dos puede hacer daño. Te retiras del combate."

	MsgEmptyInventory = "Tu inventario está vacío."
	MsgInventoryTitle = "Objetos en tu inventario:"
	MsgInvalidIndex   = "Índice inválido. Intenta de nuevo."
	MsgNotANumber     = "Entrada inválida. Por favor, ingresa un número."

	MsgWon  = "¡Felicidades! Has completado la mazmorra."
	MsgLost = "Has muerto en la mazmorra. Fin del juego."

	MsgInvalidOption = "Opción inválida. Intenta de nuevo."
	MsgGoodbye       = "¡Gracias por jugar!"
	MsgInputClosed   = "Entrada interrumpida. Cerrando el juego..."

	PromptMenu      = "Selecciona una opción: "
	PromptMove      = "¿A dónde quieres moverte? (n/s/e/o) o 'i' para inventario: "
	PromptInventory = "Selecciona el número del objeto para usarlo o '0' para volver: "
	PromptContinue  = "Pulsa cualquier tecla para continuar."
)

// MenuLines returns the main menu.
func MenuLines() []string {
	return []string{
		Title,
		"1. Iniciar nuevo juego",
		"2. Ver instrucciones",
		"3. Salir",
	}
}

// InstructionLines returns the how-to-play screen.
func InstructionLines() []string {
	return []string{
		"=== Instrucciones ===",
		"Mueve a tu personaje usando los comandos:",
		"'n' - Norte",
		"'s' - Sur",
		"'e' - Este",
		"'o' - Oeste",
		"Encuentra la salida 'S' en el mapa para ganar.",
		"Evita los enemigos 'E' o lucha contra ellos.",
		"Recoge objetos 'O' para ayudarte en tu aventura.",
		"Usa 'i' para acceder a tu inventario y usar objetos.",
		"=====================",
	}
}

// StatusLine formats the player's stats for the HUD.
func StatusLine(p *entity.Player) string {
	return fmt.Sprintf("Salud: %d | Ataque: %d", p.Health, p.Attack)
}

// InventoryLines lists the inventory with 1-based positions, or the empty
// notice.
func InventoryLines(p *entity.Player) []string {
	listing := p.InventoryListing()
	if len(listing) == 0 {
		return []string{MsgEmptyInventory}
	}
	return append([]string{MsgInventoryTitle}, listing...)
}

// ResultMessage returns the closing line for a finished session, or "" while
// it is still running.
func ResultMessage(status world.Status) string {
	switch status {
	case world.StatusWon:
		return MsgWon
	case world.StatusLost:
		return MsgLost
	default:
		return ""
	}
}

// DescribeMove turns the events of one move into log lines, in order.
func DescribeMove(result world.MoveResult) []string {
	var lines []string
	for _, ev := range result.Events {
		switch ev.Kind {
		case world.EventInvalidDirection:
			lines = append(lines, MsgInvalidDirection)
		case world.EventOutOfBounds:
			lines = append(lines, MsgOutOfBounds)
		case world.EventWall:
			lines = append(lines, MsgWall)
		case world.EventEncounter:
			lines = append(lines, fmt.Sprintf("¡Te has encontrado con un %s!", ev.Enemy))
			if !result.Has(world.EventEnemyDefeated) && !result.Has(world.EventPlayerDefeated) {
				lines = append(lines, MsgStalemate)
			}
		case world.EventEnemyDefeated:
			lines = append(lines, DescribeCombat(ev.Combat)...)
			lines = append(lines, fmt.Sprintf("Has derrotado a %s.", ev.Enemy))
		case world.EventPlayerDefeated:
			lines = append(lines, DescribeCombat(ev.Combat)...)
			lines = append(lines, fmt.Sprintf("Has sido derrotado por %s.", ev.Enemy))
		case world.EventItemPicked:
			lines = append(lines, fmt.Sprintf("Has agregado %s a tu inventario.", ev.Item.Name()))
		case world.EventExitFound:
			lines = append(lines, MsgExitFound)
		case world.EventSessionOver:
			lines = append(lines, MsgSessionOver)
		}
	}
	return lines
}

// DescribeCombat narrates every round of a fight.
func DescribeCombat(res *combat.Result) []string {
	if res == nil {
		return nil
	}
	lines := make([]string, 0, len(res.Rounds)*2)
	for _, r := range res.Rounds {
		lines = append(lines, fmt.Sprintf("Has atacado a %s y le has causado %d puntos de daño. Salud restante: %d",
			res.Defender, r.AttackerDamage, r.DefenderHP))
		if r.Retaliated {
			lines = append(lines, fmt.Sprintf("%s te ha atacado y causado %d puntos de daño. Salud actual: %d",
				res.Defender, r.DefenderDamage, r.AttackerHP))
		}
	}
	return lines
}

// DescribeUse reports a consumed item.
func DescribeUse(effect entity.Effect) string {
	switch effect.Kind {
	case entity.KindWeapon:
		return fmt.Sprintf("Has equipado %s y tu ataque aumenta en %d puntos.", effect.Item, effect.Amount)
	case entity.KindPotion:
		return fmt.Sprintf("Has usado una %s y has restaurado %d puntos de salud. Salud actual: %d",
			effect.Item, effect.Amount, effect.Health)
	default:
		return fmt.Sprintf("Has usado %s.", effect.Item)
	}
}
