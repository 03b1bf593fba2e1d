package game

// Phase is the session's top-level state
type Phase int

const (
	PhaseRunning Phase = iota
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game-over"
	default:
		return "running"
	}
}

// MarshalText lets snapshots carry the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Session holds the scoring and difficulty state of one play-through.
// It has a single owner, the Game, and is reset as a whole on restart.
type Session struct {
	Score          int
	Wave           int
	EnemiesPerWave int
	EnemySpeed     float64
	Defeated       int
	Phase          Phase
}

// NewSession returns the wave 1 defaults
func NewSession(cfg WaveConfig) Session {
	return Session{
		Wave:           1,
		EnemiesPerWave: cfg.InitialEnemies,
		EnemySpeed:     cfg.InitialEnemySpeed,
		Phase:          PhaseRunning,
	}
}

// AdvanceWave raises the difficulty for the next wave
func (s *Session) AdvanceWave(cfg WaveConfig) {
	s.Wave++
	s.EnemySpeed += cfg.EnemySpeedIncrease
	s.EnemiesPerWave = min(s.EnemiesPerWave+cfg.EnemiesIncrement, cfg.MaxEnemies)
}

// WavesCompleted is the number of waves fully cleared
func (s *Session) WavesCompleted() int {
	return s.Wave - 1
}
