// Package service implements the conversational core: the turn driver, the
// admin configuration flow, session listing and analytics.
package service

import (
	"github.com/feedbackloop/interviewd/internal/adapter/llm"
	"github.com/feedbackloop/interviewd/internal/agent"
	"github.com/feedbackloop/interviewd/internal/config"
	"github.com/feedbackloop/interviewd/internal/repository"
)

// Service wires repositories, the agent runtime client and the live runner
// cache. It is the sole writer of scenario status and transcript history.
type Service struct {
	scenarios   *repository.Scenarios
	transcripts *repository.Transcripts
	llm         llm.Client
	cache       *agent.Cache
	config      *config.Config
}

// New creates the service.
func New(scenarios *repository.Scenarios, transcripts *repository.Transcripts, llmClient llm.Client, cfg *config.Config) *Service {
	return &Service{
		scenarios:   scenarios,
		transcripts: transcripts,
		llm:         llmClient,
		cache:       agent.NewCache(),
		config:      cfg,
	}
}

// RunnerCache exposes the live runner cache, mainly for tests.
func (s *Service) RunnerCache() *agent.Cache { return s.cache }
