package components

// FruitType identifies the berry a plant bears.
type FruitType string

const (
	FruitNone   FruitType = ""
	FruitRed    FruitType = "red"
	FruitBlue   FruitType = "blue"
	FruitYellow FruitType = "yellow"
)

// FruitTypes lists the fruit types in generation roll order.
var FruitTypes = [...]FruitType{FruitRed, FruitBlue, FruitYellow}

// TreeState is the mutable state of a tree.
// Once IsFalling is set, Health stays 0 and the tree only animates out.
type TreeState struct {
	Health        float64
	MaxHealth     float64
	IsFalling     bool
	FallProgress  float64    // 0..1
	FallDirection [2]float64 // XZ lean applied while falling
	Opacity       float64    // 1..0 after the fall completes
	IsRemoved     bool
}

// Standing reports whether the tree still blocks movement and accepts hits.
func (s TreeState) Standing() bool {
	return !s.IsRemoved && !s.IsFalling && s.Health > 0
}

// RockState is the mutable state of a rock.
type RockState struct {
	Health    float64
	MaxHealth float64
	IsRemoved bool
	ShakeTime float64 // seconds-ish, decays per frame
	Cracks    float64 // 0..1 visual damage
}

// PlantState is the mutable state of a plant.
type PlantState struct {
	HasFruit   bool
	FruitType  FruitType
	FruitCount int
	Health     int
	IsRemoved  bool
}
