package dice

import (
	"math/rand"
	"sync"
	"time"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
)

// randomRoller implements Roller over a seeded source. rand.Rand is not safe
// for concurrent use so every draw holds the lock.
type randomRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewRandomRoller creates a new random dice roller. A zero seed uses the
// current time.
func NewRandomRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &randomRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, rcerr.InvalidArgumentf("invalid dice count %d", count)
	}
	if sides < 1 {
		return nil, rcerr.InvalidArgumentf("invalid dice size %d", sides)
	}

	rolls := make([]int, count)
	rawTotal := 0

	r.mu.Lock()
	for i := 0; i < count; i++ {
		rolls[i] = r.random.Intn(sides) + 1
		rawTotal += rolls[i]
	}
	r.mu.Unlock()

	return &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}
