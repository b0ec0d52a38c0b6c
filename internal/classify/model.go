package classify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"feedbackclassifier/internal/domain"
	"feedbackclassifier/internal/integrations/zeroshot"
)

// Model owns the zero-shot capability for the life of the process. It is
// loaded on first use and shared by reference between callers.
type Model struct {
	backend zeroshot.Backend

	loadOnce sync.Once
	loadErr  error

	// Serializes calls into the backend.
	mu sync.Mutex
}

func NewModel(backend zeroshot.Backend) *Model {
	return &Model{backend: backend}
}

func (m *Model) Name() string {
	return m.backend.Name()
}

// Ensure loads the backend exactly once. A failure is remembered and
// returned to every later caller.
func (m *Model) Ensure(ctx context.Context) error {
	m.loadOnce.Do(func() {
		start := time.Now()
		log.Printf("Loading zero-shot classification model (%s)... This may take a while the first time.", m.backend.Name())
		if err := m.backend.Load(ctx); err != nil {
			m.loadErr = fmt.Errorf("%w: %v", domain.ErrModelLoad, err)
			return
		}
		log.Printf("model loaded name=%s elapsed=%s", m.backend.Name(), time.Since(start).Round(time.Millisecond))
	})
	return m.loadErr
}

func (m *Model) classify(ctx context.Context, text string, labels []string) (domain.ClassificationResult, domain.Usage, error) {
	if err := m.Ensure(ctx); err != nil {
		return nil, domain.Usage{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend.Classify(ctx, text, labels)
}
