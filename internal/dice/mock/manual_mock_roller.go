package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/realm-content/internal/dice"
)

// ManualMockRoller replays predetermined draws. Each Roll consumes count
// draws or none, and every die size asked for is recorded so tests can check
// the total a selector rolled over.
type ManualMockRoller struct {
	mu    sync.Mutex
	rolls []int
	next  int
	sides []int
}

// NewManualMockRoller creates a roller with no draws queued
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{}
}

// SetNextRoll queues one more draw
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queue and forgets earlier calls
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append([]int(nil), rolls...)
	m.next = 0
	m.sides = nil
}

// Remaining reports how many queued draws have not been used
func (m *ManualMockRoller) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.next
}

// Sides returns the die size of every Roll call so far, in order
func (m *ManualMockRoller) Sides() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.sides...)
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if count < 1 {
		return nil, fmt.Errorf("invalid dice count %d", count)
	}
	if left := len(m.rolls) - m.next; left < count {
		return nil, fmt.Errorf("need %d predetermined rolls, %d left (used %d of %d)", count, left, m.next, len(m.rolls))
	}

	draws := m.rolls[m.next : m.next+count]
	rawTotal := 0
	for _, roll := range draws {
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rawTotal += roll
	}
	m.next += count
	m.sides = append(m.sides, sides)

	return &dice.RollResult{
		Total:    rawTotal + bonus,
		Rolls:    append([]int(nil), draws...),
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}
