package game

// HandSize is the number of cards each player is dealt.
const HandSize = 5

// levelWeights biases generated stats toward low levels.
var levelWeights = [16]int{15, 15, 15, 8, 8, 8, 5, 5, 5, 3, 3, 3, 2, 2, 2, 1}

var levelWeightSum = func() int {
	sum := 0
	for _, w := range levelWeights {
		sum += w
	}
	return sum
}()

// WeightedLevel draws a stat level, favoring low levels.
func WeightedLevel(src Source) uint8 {
	n := src.Intn(levelWeightSum)
	for i, w := range levelWeights {
		if n < w {
			return uint8(i)
		}
		n -= w
	}
	return MaxStat
}

// RandomClass draws a class: 40% physical, 41% magical, 15% flexible,
// 4% assault.
func RandomClass(src Source) Class {
	switch n := src.Intn(100); {
	case n <= 39:
		return ClassPhysical
	case n <= 80:
		return ClassMagical
	case n <= 95:
		return ClassFlexible
	default:
		return ClassAssault
	}
}

// RandomArrows draws an arrow mask. Each direction has an even chance until
// the first arrow is set, then a 1-in-4 chance.
func RandomArrows(src Source) Arrows {
	var a Arrows
	for bit := range 8 {
		chance := 4
		if a == 0 {
			chance = 2
		}
		if src.Intn(chance) == 0 {
			a |= 1 << bit
		}
	}
	return a
}

// RandomCard draws a card for demo play.
func RandomCard(src Source) Card {
	power := WeightedLevel(src)
	class := RandomClass(src)
	physDef := WeightedLevel(src)
	magDef := WeightedLevel(src)
	return Card{
		Power:           power,
		Class:           class,
		PhysicalDefense: physDef,
		MagicalDefense:  magDef,
		Arrows:          RandomArrows(src),
	}
}

// RandomHand deals n random cards.
func RandomHand(src Source, n int) []Card {
	hand := make([]Card, n)
	for i := range hand {
		hand[i] = RandomCard(src)
	}
	return hand
}
