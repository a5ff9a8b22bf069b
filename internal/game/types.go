package game

// --- Enums ---

// Class selects which stats a card attacks with and which stats of the
// defender it attacks against.
type Class int

const (
	ClassPhysical Class = iota
	ClassMagical
	ClassFlexible
	ClassAssault
)

func (c Class) String() string {
	switch c {
	case ClassPhysical:
		return "Physical"
	case ClassMagical:
		return "Magical"
	case ClassFlexible:
		return "Flexible"
	case ClassAssault:
		return "Assault"
	default:
		return "Unknown"
	}
}

// Letter returns the uppercase class letter used in card codes.
func (c Class) Letter() byte {
	switch c {
	case ClassPhysical:
		return 'P'
	case ClassMagical:
		return 'M'
	case ClassFlexible:
		return 'X'
	case ClassAssault:
		return 'A'
	default:
		return '?'
	}
}

// Color identifies which player currently controls a card.
// Blue is player 0, Red is player 1.
type Color int

const (
	Blue Color = iota
	Red
)

func (c Color) String() string {
	if c == Blue {
		return "Blue"
	}
	return "Red"
}

// Opponent returns the other color.
func (c Color) Opponent() Color {
	return 1 - c
}

type BattleResult int

const (
	BattleAttacker BattleResult = iota
	BattleDefender
	BattleDraw
)

func (r BattleResult) String() string {
	switch r {
	case BattleAttacker:
		return "Attacker wins"
	case BattleDefender:
		return "Defender wins"
	case BattleDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// ArrowRelation describes what a placed card may do to one neighbor.
type ArrowRelation int

const (
	RelationIgnore ArrowRelation = iota
	RelationTake
	RelationBattle
)

func (r ArrowRelation) String() string {
	switch r {
	case RelationTake:
		return "Take"
	case RelationBattle:
		return "Battle"
	default:
		return "Ignore"
	}
}

// Source is the randomness every roll in the engine is drawn from.
// *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform integer in [0, n). n must be > 0.
	Intn(n int) int
}
