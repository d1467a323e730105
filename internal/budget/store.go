package budget

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Store interface {
	AddSpend(ctx context.Context, repo string, pr int, usd float64, at time.Time) error
	GetPRSpend(ctx context.Context, repo string, pr int) (float64, error)
	GetDailySpend(ctx context.Context, day time.Time) (float64, error)
}

// Guard blocks review jobs once estimated oracle spend crosses the daily
// or per-PR limit. A zero limit disables that dimension.
type Guard struct {
	enabled    bool
	dailyLimit float64
	prLimit    float64
	store      Store
}

func NewGuard(enabled bool, dailyLimit, prLimit float64, store Store) *Guard {
	return &Guard{
		enabled:    enabled,
		dailyLimit: dailyLimit,
		prLimit:    prLimit,
		store:      store,
	}
}

func (g *Guard) Enabled() bool {
	return g != nil && g.enabled
}

func (g *Guard) Allow(ctx context.Context, repo string, pr int, projectedCostUSD float64, now time.Time) (bool, string, error) {
	if g == nil || !g.enabled || g.store == nil {
		return true, "", nil
	}

	prSpend, err := g.store.GetPRSpend(ctx, repo, pr)
	if err != nil {
		return false, "", err
	}
	if g.prLimit > 0 && prSpend+projectedCostUSD > g.prLimit {
		return false, fmt.Sprintf("PR budget exceeded (limit=%.4f USD)", g.prLimit), nil
	}

	daySpend, err := g.store.GetDailySpend(ctx, now)
	if err != nil {
		return false, "", err
	}
	if g.dailyLimit > 0 && daySpend+projectedCostUSD > g.dailyLimit {
		return false, fmt.Sprintf("Daily budget exceeded (limit=%.4f USD)", g.dailyLimit), nil
	}

	return true, "", nil
}

func (g *Guard) Record(ctx context.Context, repo string, pr int, usd float64, now time.Time) error {
	if g == nil || !g.enabled || g.store == nil || usd <= 0 {
		return nil
	}
	return g.store.AddSpend(ctx, repo, pr, usd, now)
}

// MemoryStore keeps spend in-process; resets on restart, which is fine for
// a soft guard.
type MemoryStore struct {
	mu    sync.Mutex
	byPR  map[string]float64
	byDay map[string]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byPR:  make(map[string]float64),
		byDay: make(map[string]float64),
	}
}

func prKey(repo string, pr int) string {
	return fmt.Sprintf("%s#%d", repo, pr)
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func (s *MemoryStore) AddSpend(ctx context.Context, repo string, pr int, usd float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byPR[prKey(repo, pr)] += usd
	s.byDay[dayKey(at)] += usd
	return nil
}

func (s *MemoryStore) GetPRSpend(ctx context.Context, repo string, pr int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byPR[prKey(repo, pr)], nil
}

func (s *MemoryStore) GetDailySpend(ctx context.Context, day time.Time) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byDay[dayKey(day)], nil
}
