package world

// Snapshot is a flat copy of the level state for determinism tests and
// diagnostics. Uses primitive types only.
type Snapshot struct {
	Tick      uint64
	Status    int
	Outcome   int
	ElapsedMs int64

	TowerHealth int
	TowerState  string

	// Per player: X, Y, Health, Jumps, Attacking
	PlayerData []int

	// Per monster: X, Y, Health
	MonsterCount int
	MonsterData  []int
}

// Snapshot captures the current level state.
func (l *Level) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:         l.ticks,
		Status:       int(l.status),
		Outcome:      int(l.outcome),
		ElapsedMs:    l.elapsedMs,
		TowerHealth:  int(l.tower.health.Current),
		TowerState:   l.tower.sprite.State(),
		MonsterCount: len(l.monsters),
	}

	players := []*Player{l.player}
	if l.enemy != nil {
		players = append(players, l.enemy)
	}
	for _, p := range players {
		attacking := 0
		if p.attacking {
			attacking = 1
		}
		snap.PlayerData = append(snap.PlayerData,
			p.sprite.Rect.X, p.sprite.Rect.Y, int(p.health.Current), p.jumps, attacking)
	}

	for _, m := range l.monsters {
		snap.MonsterData = append(snap.MonsterData, m.sprite.Rect.X, m.sprite.Rect.Y, int(m.health.Current))
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Status)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Outcome)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ElapsedMs)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.TowerHealth) //#nosec G115 -- hash computation
	for _, c := range snap.TowerState {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.MonsterCount) //#nosec G115 -- hash computation

	for _, v := range snap.PlayerData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.MonsterData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
