package highscore

import (
	"time"

	"cubesurvival/internal/logging"
	"cubesurvival/internal/sim"
)

// AttachRunRecorder records a RunRecord every time s reaches game over.
func AttachRunRecorder(s *sim.Session, rec RunRecorder) {
	s.Events.Subscribe(sim.EventGameOver, func(sim.Event) {
		run := RunFromSession(s, time.Now())
		if err := rec.RecordRun(run); err != nil {
			logging.LogWarn("record run: %v", err)
			return
		}
		logging.LogInfo("run over: score=%d kills=%d waves=%d", run.Score, run.Kills, run.Waves)
	})
}

// RunFromSession snapshots the finished run in s.
func RunFromSession(s *sim.Session, endedAt time.Time) RunRecord {
	return RunRecord{
		Score:   int(s.Score),
		Kills:   s.Kills,
		Waves:   s.WavesSurvived(),
		Frames:  s.Frame,
		Seed:    s.Seed(),
		EndedAt: endedAt.UTC(),
	}
}
