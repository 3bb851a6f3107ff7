// Package sim is the no-robot Speaker: it logs what Pepper would say.
package sim

import (
	"context"
	"log/slog"
	"sync"
)

type Speaker struct {
	log *slog.Logger

	mu   sync.Mutex
	said []string
}

func New(log *slog.Logger) *Speaker {
	if log == nil {
		log = slog.Default()
	}
	return &Speaker{log: log}
}

func (s *Speaker) Connect(ctx context.Context) error { return nil }

func (s *Speaker) Say(ctx context.Context, text string) error {
	s.mu.Lock()
	s.said = append(s.said, text)
	s.mu.Unlock()
	s.log.Info("[SIMULATION] Pepper would say", "text", text)
	return nil
}

func (s *Speaker) Connected() bool { return true }

// Said returns everything spoken so far; used in tests.
func (s *Speaker) Said() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.said))
	copy(out, s.said)
	return out
}
