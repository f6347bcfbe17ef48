package domain

// LimitState distinguishes a limit that was never overridden from one that
// was explicitly cleared. On the wire the difference is an absent key
// versus a null value; the three states keep it explicit in memory.
type LimitState int

const (
	// LimitUnset defers to the game's default limit.
	LimitUnset LimitState = iota
	// LimitUnlimited overrides the game default with "no limit".
	LimitUnlimited
	// LimitBounded overrides the game default with a positive value.
	LimitBounded
)

// String returns the wire representation of the limit state.
func (s LimitState) String() string {
	switch s {
	case LimitUnlimited:
		return "unlimited"
	case LimitBounded:
		return "bounded"
	default:
		return "unset"
	}
}

// Limit is a session-level override of a game default threshold.
type Limit struct {
	State LimitState
	Value int
}

// Bounded returns a limit overriding the game default with value.
// Non-positive values collapse to an unlimited override so an empty or
// zero input never enforces a threshold.
func Bounded(value int) Limit {
	if value <= 0 {
		return Unlimited()
	}
	return Limit{State: LimitBounded, Value: value}
}

// Unlimited returns an explicit no-limit override.
func Unlimited() Limit {
	return Limit{State: LimitUnlimited}
}

// Config holds a session's optional limit overrides.
type Config struct {
	Target Limit
	Rounds Limit
}

// ConfigPatch carries partial config updates. Nil fields leave the existing
// override untouched; this is how raising or clearing a limit after a
// game-over signal works.
type ConfigPatch struct {
	Target *Limit
	Rounds *Limit
}

// Merge applies the patch's present fields onto the config.
func (c Config) Merge(patch ConfigPatch) Config {
	if patch.Target != nil {
		c.Target = *patch.Target
	}
	if patch.Rounds != nil {
		c.Rounds = *patch.Rounds
	}
	return c
}

// Effective resolves a limit override against a game default. The boolean
// reports whether a positive threshold is enforced: an unset override
// defers to the default (zero default means unlimited), an unlimited
// override always disables the threshold.
func (l Limit) Effective(gameDefault int) (int, bool) {
	switch l.State {
	case LimitBounded:
		return l.Value, l.Value > 0
	case LimitUnlimited:
		return 0, false
	default:
		return gameDefault, gameDefault > 0
	}
}
