// Package quest implements the side-quest dice resolution used by trip
// adventures: a d20 roll against a quest's check value, with a +2 bonus when
// the player's personality matches the quest's attribute.
package quest

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/ngabriel/sproutquest/internal/survey"
)

// Outcome is the path a quest resolution takes.
type Outcome string

const (
	OutcomeEasy Outcome = "easy"
	OutcomeHard Outcome = "hard"
)

// Point values per outcome. Failing the check routes the player onto the
// harder narrative AND awards more points; the inverted reward is the game's
// core incentive and must not be "fixed".
const (
	EasyPoints = 1
	HardPoints = 2
)

const (
	dieSides       = 20
	attributeBonus = 2
)

// DefaultQuestCount is the number of side quests in a trip.
const DefaultQuestCount = 6

// DefaultPassingThreshold is the minimum point total for a successful trip.
const DefaultPassingThreshold = 5

// SideQuest is one externally-generated paired challenge.
type SideQuest struct {
	EasyDescription string          `json:"easy_description"`
	HardDescription string          `json:"hard_description"`
	CheckValue      int             `json:"check_value"`
	Attribute       survey.Category `json:"attribute"`
}

// Validation errors for externally-sourced quests. A malformed quest must be
// rejected before it enters the roll state machine.
var (
	ErrMissingDescription = errors.New("quest is missing a description")
	ErrInvalidCheckValue  = errors.New("quest check value must be between 1 and 20")
	ErrInvalidAttribute   = errors.New("quest attribute is not a known personality category")
)

// Validate checks the shape of an externally-sourced quest.
func Validate(q SideQuest) error {
	if strings.TrimSpace(q.EasyDescription) == "" || strings.TrimSpace(q.HardDescription) == "" {
		return ErrMissingDescription
	}
	if q.CheckValue < 1 || q.CheckValue > dieSides {
		return fmt.Errorf("%w: got %d", ErrInvalidCheckValue, q.CheckValue)
	}
	if !q.Attribute.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidAttribute, q.Attribute)
	}
	return nil
}

// Resolution is the immutable result of rolling one quest.
type Resolution struct {
	Roll         int     `json:"roll"`
	BonusApplied bool    `json:"bonus_applied"`
	FinalRoll    int     `json:"final_roll"`
	Outcome      Outcome `json:"outcome"`
	PointValue   int     `json:"point_value"`
	Narrative    string  `json:"narrative"`
}

// Roller draws die rolls from a seeded source. Given the same seed, a Roller
// produces the same sequence of resolutions.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a deterministic Roller from the given seed.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// NewRollerFromEntropy creates a Roller seeded from crypto/rand.
func NewRollerFromEntropy() (*Roller, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read roller seed: %w", err)
	}
	return NewRoller(int64(binary.LittleEndian.Uint64(b[:]))), nil
}

// Roll resolves a quest with a fresh d20 draw. playerCategory may be empty
// (no personality on record), in which case no bonus applies. The bonus is a
// flat +2 when the player's category matches the quest attribute, compared
// case-insensitively. Each call consumes fresh randomness; Roll is
// re-callable but not idempotent.
func (r *Roller) Roll(q SideQuest, playerCategory survey.Category) Resolution {
	roll := r.rng.Intn(dieSides) + 1
	return ResolveRoll(q, playerCategory, roll)
}

// ResolveRoll applies the bonus and outcome rules to an already-drawn raw
// roll. Exposed separately from Roll so the rules can be exercised without a
// random source.
func ResolveRoll(q SideQuest, playerCategory survey.Category, roll int) Resolution {
	res := Resolution{Roll: roll, FinalRoll: roll}
	if playerCategory != "" && strings.EqualFold(string(playerCategory), string(q.Attribute)) {
		res.BonusApplied = true
		res.FinalRoll = roll + attributeBonus
	}

	if res.FinalRoll >= q.CheckValue {
		res.Outcome = OutcomeEasy
		res.PointValue = EasyPoints
		res.Narrative = q.EasyDescription
	} else {
		res.Outcome = OutcomeHard
		res.PointValue = HardPoints
		res.Narrative = q.HardDescription
	}
	return res
}

// Progress accumulates quest results across a trip. TotalQuests travels with
// the progress so finalization does not depend on an external loop counter.
type Progress struct {
	PointTotal     int `json:"point_total"`
	QuestsResolved int `json:"quests_resolved"`
	TotalQuests    int `json:"total_quests"`
}

// NewProgress creates an empty progress tracker for a trip with totalQuests
// quests.
func NewProgress(totalQuests int) Progress {
	return Progress{TotalQuests: totalQuests}
}

// Complete applies a resolution to the progress: the resolution's point value
// is added and the resolved count advances by one. Applying the same
// resolution twice adds its points twice; guarding against replay is the
// caller's job.
func Complete(p Progress, res Resolution) Progress {
	p.PointTotal += res.PointValue
	p.QuestsResolved++
	return p
}

// Skip advances the resolved count without awarding points. Skipping is
// valid both before and after a roll.
func Skip(p Progress) Progress {
	p.QuestsResolved++
	return p
}

// TripOutcome is the final verdict for a trip.
type TripOutcome struct {
	Success    bool `json:"success"`
	PointTotal int  `json:"point_total"`
}

// ErrTripIncomplete indicates Finalize was called before every quest was
// resolved or skipped.
var ErrTripIncomplete = errors.New("trip has unresolved quests")

// Finalize computes the trip verdict once all quests are resolved or
// skipped. passingThreshold <= 0 selects the default threshold.
func Finalize(p Progress, passingThreshold int) (TripOutcome, error) {
	if passingThreshold <= 0 {
		passingThreshold = DefaultPassingThreshold
	}
	if p.QuestsResolved < p.TotalQuests {
		return TripOutcome{}, fmt.Errorf("%w: %d of %d resolved", ErrTripIncomplete, p.QuestsResolved, p.TotalQuests)
	}
	return TripOutcome{
		Success:    p.PointTotal >= passingThreshold,
		PointTotal: p.PointTotal,
	}, nil
}
