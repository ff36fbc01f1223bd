package sim

// Mode is the top-level game state.
type Mode int

const (
	ModeMenu Mode = iota
	ModeCustomize
	ModePlaying
	ModePaused
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeCustomize:
		return "customize"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game_over"
	}
	return "unknown"
}

// modeHandler reacts to one trigger while the session is in a given mode.
type modeHandler func(s *Session, t Trigger, in *Input)

var modeHandlers = map[Mode]modeHandler{
	ModeMenu:      (*Session).handleMenu,
	ModeCustomize: (*Session).handleCustomize,
	ModePlaying:   (*Session).handlePlaying,
	ModePaused:    (*Session).handlePaused,
	ModeGameOver:  (*Session).handleGameOver,
}

// applyTriggers routes each trigger to the handler of the mode current at that point.
func (s *Session) applyTriggers(in *Input) {
	for _, t := range in.Triggers {
		if h := modeHandlers[s.Mode]; h != nil {
			h(s, t, in)
		}
	}
}

func (s *Session) setMode(m Mode) {
	if s.Mode == m {
		return
	}
	s.Mode = m
	s.Events.Emit(Event{Type: EventModeChanged, Data: int(m)})
}

func (s *Session) handleMenu(t Trigger, _ *Input) {
	switch t {
	case TriggerConfirm:
		s.Reset()
		s.setMode(ModePlaying)
	case TriggerCustomize:
		s.setMode(ModeCustomize)
	}
}

func (s *Session) handleCustomize(t Trigger, _ *Input) {
	n := len(CubeColors)
	switch t {
	case TriggerPrev:
		s.ColorIdx = (s.ColorIdx - 1 + n) % n
	case TriggerNext:
		s.ColorIdx = (s.ColorIdx + 1) % n
	case TriggerConfirm:
		s.PlayerColor = CubeColors[s.ColorIdx].Col
		s.setMode(ModeMenu)
	case TriggerBack:
		s.setMode(ModeMenu)
	}
}

func (s *Session) handlePlaying(t Trigger, in *Input) {
	switch t {
	case TriggerBack:
		s.setMode(ModePaused)
	case TriggerShoot:
		pr := s.Player.Shoot(in.TargetX, in.TargetY)
		s.Projectiles = append(s.Projectiles, pr)
		s.Events.Emit(Event{Type: EventShot, X: pr.X, Y: pr.Y})
	}
}

func (s *Session) handlePaused(t Trigger, _ *Input) {
	switch t {
	case TriggerBack:
		s.setMode(ModePlaying)
	case TriggerQuit:
		s.setMode(ModeMenu)
	}
}

func (s *Session) handleGameOver(t Trigger, _ *Input) {
	switch t {
	case TriggerRestart:
		s.Reset()
		s.setMode(ModePlaying)
	case TriggerBack:
		s.setMode(ModeMenu)
	}
}
