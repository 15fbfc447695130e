// Package refpool holds the fixed pools of opaque reference identifiers
// shared by every generator. The pools are built once per run and read-only
// afterwards, so readings, commands, diagnostics and loops all point at the
// same plausible equipment, batches, steps, operators and equipment states.
package refpool

import (
	"encoding/hex"
	"errors"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// Pool sizes mirror a small plant: fewer equipment assets than devices,
// a handful of operators.
const (
	numEquipment       = 30
	numBatches         = 20
	numSteps           = 50
	numOperators       = 15
	numEquipmentStates = 50
)

// ErrEmptyPool is returned when a generator asks for a reference from a pool
// that holds no identifiers.
var ErrEmptyPool = errors.New("refpool: pick from empty pool")

// Pool is the shared set of reference identifiers for one run.
type Pool struct {
	Equipment       []string
	Batches         []string
	Steps           []string
	Operators       []string
	EquipmentStates []string
}

// New mints all reference pools from the given source. The source is the
// run's single seeded RNG, so identical seeds yield identical pools.
func New(rng *rand.Rand) *Pool {
	return &Pool{
		Equipment:       Allocate(rng, "EQ", 8, numEquipment),
		Batches:         Allocate(rng, "BATCH", 8, numBatches),
		Steps:           Allocate(rng, "STEP", 8, numSteps),
		Operators:       Allocate(rng, "OP", 6, numOperators),
		EquipmentStates: Allocate(rng, "STATE", 8, numEquipmentStates),
	}
}

// Allocate mints count unique identifiers of the form PREFIX-HEX, where HEX
// is the first hexLen characters of a UUID drawn from rng. Truncated hex can
// collide, so duplicates are redrawn within a pool.
func Allocate(rng *rand.Rand, prefix string, hexLen, count int) []string {
	ids := make([]string, 0, count)
	seen := make(map[string]bool, count)
	for len(ids) < count {
		id := NewID(rng, prefix, hexLen)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// NewID mints one identifier. UUIDs are drawn through NewRandomFromReader so
// identifier generation stays on the seeded stream.
func NewID(rng *rand.Rand, prefix string, hexLen int) string {
	u, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// rand.Rand.Read never fails.
		panic(err)
	}
	h := strings.ToUpper(hex.EncodeToString(u[:]))
	return prefix + "-" + h[:hexLen]
}

// Pick returns a uniformly chosen identifier, or ErrEmptyPool when the pool
// has none to give.
func Pick(rng *rand.Rand, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", ErrEmptyPool
	}
	return ids[rng.Intn(len(ids))], nil
}
