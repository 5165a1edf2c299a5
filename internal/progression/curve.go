package progression

import "math"

// Curve holds the tunable coefficients for the mastery cost/XP formulas.
// All functions are pure and total over int inputs. Costs scale
// quadratically, enchanting-style.
type Curve struct {
	// Absorb: cost to absorb a book of level L
	AbsorbBaseCost  float64
	AbsorbQuadratic float64

	// Apply: cost to apply an enchantment at target level L
	ApplyBaseCost  float64
	ApplyQuadratic float64

	// Mastery XP threshold to advance from level N to N+1
	MasteryXPBase      float64
	MasteryXPLinear    float64
	MasteryXPQuadratic float64

	// Portion of apply cost converted to mastery XP
	XPGainMultiplier float64

	// Letter decoding: cost of the next unlock given N already unlocked
	DecodeBaseCost float64
	DecodeScaling  float64
}

// DefaultCurve returns the shipped balance coefficients.
func DefaultCurve() Curve {
	return Curve{
		AbsorbBaseCost:     3.0,
		AbsorbQuadratic:    1.5,
		ApplyBaseCost:      2.0,
		ApplyQuadratic:     1.2,
		MasteryXPBase:      10.0,
		MasteryXPLinear:    3.0,
		MasteryXPQuadratic: 1.5,
		XPGainMultiplier:   5.0,
		DecodeBaseCost:     1.0,
		DecodeScaling:      0.5,
	}
}

// AbsorbCost returns the level cost to absorb a book of the given level.
// Non-positive book levels cost nothing; otherwise the cost is at least 1.
func (c Curve) AbsorbCost(bookLevel int) int {
	if bookLevel <= 0 {
		return 0
	}
	l := float64(bookLevel)
	return ceilAtLeastOne(c.AbsorbBaseCost*l + c.AbsorbQuadratic*l*l)
}

// ApplyCost returns the level cost to apply an enchantment at targetLevel.
func (c Curve) ApplyCost(targetLevel int) int {
	if targetLevel <= 0 {
		return 0
	}
	l := float64(targetLevel)
	return ceilAtLeastOne(c.ApplyBaseCost*l + c.ApplyQuadratic*l*l)
}

// XPThreshold returns the mastery XP required to advance from
// currentMasteryLevel to the next level. Always strictly positive.
func (c Curve) XPThreshold(currentMasteryLevel int) int {
	if currentMasteryLevel < 0 {
		currentMasteryLevel = 0
	}
	l := float64(currentMasteryLevel)
	return ceilAtLeastOne(c.MasteryXPBase + c.MasteryXPLinear*l + c.MasteryXPQuadratic*l*l)
}

// XPGainFromApplyCost converts levels spent on an apply into mastery XP.
func (c Curve) XPGainFromApplyCost(cost int) int {
	if cost <= 0 {
		return 0
	}
	return ceilAtLeastOne(float64(cost) * c.XPGainMultiplier)
}

// DecodeCost returns the level cost to unlock the next letter given how
// many letters are already unlocked for the enchantment.
func (c Curve) DecodeCost(lettersAlreadyUnlocked int) int {
	if lettersAlreadyUnlocked < 0 {
		lettersAlreadyUnlocked = 0
	}
	return ceilAtLeastOne(c.DecodeBaseCost + c.DecodeScaling*float64(lettersAlreadyUnlocked))
}

// ResolveLevelUps applies xpToAdd to the given level/xp pair and settles all
// earned level-ups. Terminates because XPThreshold is strictly positive.
// The returned xp is always below the threshold for the returned level.
func (c Curve) ResolveLevelUps(level, xp, xpToAdd int) (newLevel, remainingXP int) {
	newLevel = level
	remainingXP = xp + xpToAdd

	needed := c.XPThreshold(newLevel)
	for remainingXP >= needed {
		remainingXP -= needed
		newLevel++
		needed = c.XPThreshold(newLevel)
	}
	return newLevel, remainingXP
}

// TotalAbsorbCost sums the absorb costs for every level in (fromLevel,
// toLevel]. An empty range yields 0. Used for cost previews.
func (c Curve) TotalAbsorbCost(fromLevel, toLevel int) int {
	total := 0
	for i := fromLevel + 1; i <= toLevel; i++ {
		total += c.AbsorbCost(i)
	}
	return total
}

func ceilAtLeastOne(v float64) int {
	n := int(math.Ceil(v))
	if n < 1 {
		return 1
	}
	return n
}
