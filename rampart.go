// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package rampart

import (
	"context"
	"log/slog"

	"github.com/poiesic/rampart/adversary"
	"github.com/poiesic/rampart/ai"
	"github.com/poiesic/rampart/ai/openai"
	"github.com/poiesic/rampart/cluster"
	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/embedding"
	"github.com/poiesic/rampart/guardrail"
	"github.com/poiesic/rampart/search"
	"github.com/poiesic/rampart/secure"
	"github.com/poiesic/rampart/storage"
	"github.com/poiesic/rampart/storage/badger"
)

// Guard wires the full security pipeline behind a single handle: guardrail
// detector, adversarial monitor, secure call orchestrator, persistent
// security event store, and AI provider. Construct one per process and
// share it; every component is safe for concurrent use.
type Guard struct {
	backend      *badger.Backend
	events       storage.EventRepository
	provider     ai.AIProvider
	detector     *guardrail.Detector
	monitor      *adversary.Monitor
	orchestrator *secure.Orchestrator
	clusterer    *cluster.Clusterer
	logger       *slog.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*guardOptions)

type guardOptions struct {
	aiConfig    *ai.Config
	inMemory    bool
	provider    ai.AIProvider
	rules       []guardrail.Rule
	attackRules []adversary.AttackRule
}

// WithAIConfig sets the AI service configuration used to build the default
// OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) GuardOption {
	return func(o *guardOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects an AI provider, bypassing the default
// OpenAI-compatible one. Useful for tests and custom backends.
func WithProvider(provider ai.AIProvider) GuardOption {
	return func(o *guardOptions) {
		o.provider = provider
	}
}

// WithInMemoryStore keeps the security event store in memory instead of on
// disk. The filePath argument to NewGuard is ignored.
func WithInMemoryStore() GuardOption {
	return func(o *guardOptions) {
		o.inMemory = true
	}
}

// WithGuardrailRules replaces the default guardrail rule set.
func WithGuardrailRules(rules []guardrail.Rule) GuardOption {
	return func(o *guardOptions) {
		o.rules = rules
	}
}

// WithAttackRules replaces the default adversarial pattern rule set.
func WithAttackRules(rules []adversary.AttackRule) GuardOption {
	return func(o *guardOptions) {
		o.attackRules = rules
	}
}

func NewGuard(filePath string, opts ...GuardOption) (*Guard, error) {
	// Apply options
	options := &guardOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open event store backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	events, err := badger.NewEventRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			events.Close()
			backend.Close()
			return nil, err
		}
	}

	cleanup := func() {
		provider.Close()
		events.Close()
		backend.Close()
	}

	var detectorOpts []guardrail.Option
	if options.rules != nil {
		detectorOpts = append(detectorOpts, guardrail.WithRules(options.rules))
	}
	detector, err := guardrail.NewDetector(detectorOpts...)
	if err != nil {
		cleanup()
		return nil, err
	}

	monitorOpts := []adversary.Option{adversary.WithEventSink(events)}
	if options.attackRules != nil {
		monitorOpts = append(monitorOpts, adversary.WithAttackRules(options.attackRules))
	}
	monitor, err := adversary.NewMonitor(monitorOpts...)
	if err != nil {
		cleanup()
		return nil, err
	}

	orchestrator, err := secure.NewOrchestrator(detector, monitor, provider.ModelCaller(),
		secure.WithAuditSink(events))
	if err != nil {
		cleanup()
		return nil, err
	}

	clusterer, err := cluster.NewClusterer()
	if err != nil {
		cleanup()
		return nil, err
	}

	return &Guard{
		backend:      backend,
		events:       events,
		provider:     provider,
		detector:     detector,
		monitor:      monitor,
		orchestrator: orchestrator,
		clusterer:    clusterer,
		logger:       slog.Default(),
	}, nil
}

func (g *Guard) Close() error {
	// Close AI provider first
	if err := g.provider.Close(); err != nil {
		g.logger.Error("error closing AI provider", "err", err)
	}

	// Close event repository
	if err := g.events.Close(); err != nil {
		g.logger.Error("error closing event repository", "err", err)
		return err
	}

	// Close backend
	if err := g.backend.Close(); err != nil {
		g.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// SecureCall runs a prompt through the full pipeline: input guardrails,
// adversarial analysis, the model call, and output guardrails.
func (g *Guard) SecureCall(ctx context.Context, prompt string) (*core.SecureCallResult, error) {
	return g.orchestrator.Call(ctx, prompt)
}

func (g *Guard) Detector() *guardrail.Detector {
	return g.detector
}

func (g *Guard) Monitor() *adversary.Monitor {
	return g.monitor
}

func (g *Guard) Orchestrator() *secure.Orchestrator {
	return g.orchestrator
}

func (g *Guard) Clusterer() *cluster.Clusterer {
	return g.clusterer
}

func (g *Guard) EventRepository() storage.EventRepository {
	return g.events
}

func (g *Guard) Provider() ai.AIProvider {
	return g.provider
}

// NewRetriever builds a hybrid retriever over the given corpus.
func (g *Guard) NewRetriever(corpus search.CorpusSearcher, opts ...search.Option) (*search.Retriever, error) {
	return search.NewRetriever(corpus, opts...)
}

// NewMemoryCorpus builds an in-memory corpus backed by the guard's embedder.
func (g *Guard) NewMemoryCorpus() *search.MemoryCorpus {
	return search.NewMemoryCorpus(g.provider.Embedder())
}

// NewEmbeddingPipeline builds a batch embedding pipeline backed by the
// guard's embedder.
func (g *Guard) NewEmbeddingPipeline(opts ...embedding.Option) (*embedding.Pipeline, error) {
	return embedding.NewPipeline(g.provider.Embedder(), opts...)
}
