package components

import (
	"fmt"
	"strings"
)

// ItemCategory decides which equipment slot an item goes to.
type ItemCategory uint8

const (
	ItemWeapon ItemCategory = iota
	ItemGadget
	ItemResource
)

// Tool is the capability an equipped weapon provides.
type Tool uint8

const (
	ToolNone Tool = iota
	ToolSlashing
	ToolChopping
	ToolMining
)

// String returns the tool name as used in config files.
func (t Tool) String() string {
	switch t {
	case ToolSlashing:
		return "slashing"
	case ToolChopping:
		return "chopping"
	case ToolMining:
		return "mining"
	default:
		return "none"
	}
}

// Heavy reports whether the tool uses the slow overhead swing.
func (t Tool) Heavy() bool {
	return t == ToolChopping || t == ToolMining
}

// ParseTool converts a config name into a Tool.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slashing", "knife":
		return ToolSlashing, nil
	case "chopping", "axe":
		return ToolChopping, nil
	case "mining", "pickaxe":
		return ToolMining, nil
	case "", "none":
		return ToolNone, nil
	}
	return ToolNone, fmt.Errorf("unknown tool %q", s)
}

// Item is an inventory entry.
type Item struct {
	ID         string
	Name       string
	Category   ItemCategory
	Tool       Tool
	Damage     float64
	Count      int
	Consumable bool
	Fruit      FruitType
}

// Equipped is the weapon capability resolved at equip time.
type Equipped struct {
	Tool   Tool
	Damage float64
}

// Equipped resolves the item's weapon capability.
func (it Item) Equipped() Equipped {
	if it.Category != ItemWeapon {
		return Equipped{}
	}
	return Equipped{Tool: it.Tool, Damage: it.Damage}
}

// FruitItem builds the consumable item produced by harvesting a plant.
func FruitItem(fruit FruitType, count int) Item {
	name := string(fruit)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return Item{
		ID:         "fruit_" + string(fruit),
		Name:       name + " Berry",
		Category:   ItemGadget,
		Count:      count,
		Consumable: true,
		Fruit:      fruit,
	}
}

// Inventory is an ordered, capacity-limited list of unique items.
type Inventory struct {
	items    []Item
	capacity int
}

// NewInventory creates an inventory holding the given items.
func NewInventory(capacity int, items ...Item) *Inventory {
	inv := &Inventory{capacity: capacity}
	for _, it := range items {
		inv.Add(it)
	}
	return inv
}

// Add stacks onto an existing entry with the same ID or appends a new one.
// Returns false when a new entry would exceed capacity.
func (inv *Inventory) Add(it Item) bool {
	n := max(it.Count, 1)
	for i := range inv.items {
		if inv.items[i].ID == it.ID {
			inv.items[i].Count = max(inv.items[i].Count, 1) + n
			return true
		}
	}
	if len(inv.items) >= inv.capacity {
		return false
	}
	it.Count = n
	inv.items = append(inv.items, it)
	return true
}

// Get returns the entry with the given ID.
func (inv *Inventory) Get(id string) (Item, bool) {
	for _, it := range inv.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Consume removes one unit of id. An entry reaching zero is dropped.
// Returns the remaining count and whether the item existed.
func (inv *Inventory) Consume(id string) (int, bool) {
	for i := range inv.items {
		if inv.items[i].ID != id {
			continue
		}
		inv.items[i].Count--
		left := inv.items[i].Count
		if left <= 0 {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return 0, true
		}
		return left, true
	}
	return 0, false
}

// Items returns a copy of the entries in order.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of distinct entries.
func (inv *Inventory) Len() int { return len(inv.items) }

// Capacity returns the maximum number of distinct entries.
func (inv *Inventory) Capacity() int { return inv.capacity }

// Full reports whether no new entry can be added.
func (inv *Inventory) Full() bool { return len(inv.items) >= inv.capacity }
