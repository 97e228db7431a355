package ventral

import "github.com/danielpatrickdp/reflex-sim/internal/dorsal"

// #region motor-pool
// MotorPool is a named, ordered set of motor-unit identifiers fired
// together for one reflex kind. Statically configured; read-only during
// simulation.
type MotorPool struct {
	Name  string
	Units []string
}
// #endregion motor-pool

// #region dispatch
// MotorDispatch records the efferent outcome of one directive.
type MotorDispatch struct {
	Action         dorsal.ReflexKind
	Pool           string
	UnitsFired     []string
	SuppressedPool string // antagonist held down by reciprocal inhibition
	TickTime       int64

	// PoolRegistered distinguishes "no pool wired for this kind" from
	// an actual empty dispatch in the audit record.
	PoolRegistered bool

	// RenshawBlocked marks a same-tick re-fire damped by recurrent
	// inhibition.
	RenshawBlocked bool
}
// #endregion dispatch

// #region config
// Config holds the motor pool registry and antagonist pairing.
type Config struct {
	Pools       map[dorsal.ReflexKind]MotorPool
	Antagonists map[string]string // pool name -> antagonist pool name
}

// DefaultConfig wires the classic spinal pairs: withdrawal drives the
// flexor pool against the extensor pool, crossed extension drives the
// contralateral extensor against the contralateral flexor, and light
// contact drives the extensor pool for sustained support.
func DefaultConfig() Config {
	return Config{
		Pools: map[dorsal.ReflexKind]MotorPool{
			dorsal.ReflexWithdraw: {
				Name:  "flexor_pool",
				Units: []string{"flexor_mn_0", "flexor_mn_1", "flexor_mn_2", "flexor_mn_3", "flexor_mn_4"},
			},
			dorsal.ReflexLightContact: {
				Name:  "extensor_pool",
				Units: []string{"extensor_mn_0", "extensor_mn_1", "extensor_mn_2", "extensor_mn_3", "extensor_mn_4"},
			},
			dorsal.ReflexCrossedExtend: {
				Name:  "contra_extensor_pool",
				Units: []string{"contra_extensor_mn_0", "contra_extensor_mn_1", "contra_extensor_mn_2"},
			},
		},
		Antagonists: map[string]string{
			"flexor_pool":          "extensor_pool",
			"extensor_pool":        "flexor_pool",
			"contra_extensor_pool": "contra_flexor_pool",
		},
	}
}
// #endregion config
