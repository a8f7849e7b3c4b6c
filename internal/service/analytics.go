package service

import (
	"context"
	"fmt"

	"github.com/feedbackloop/interviewd/internal/agent"
	"github.com/feedbackloop/interviewd/internal/domain"
)

// Analytics answers an ad-hoc question over all persisted transcripts. The
// analyst instruction is rebuilt per question so the corpus is always
// current; no dialogue state is kept between questions.
func (s *Service) Analytics(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", domain.ErrEmptyTurn
	}
	transcripts, err := s.transcripts.ListAll(ctx)
	if err != nil {
		return "", err
	}
	instruction := agent.BuildAnalystInstruction(transcripts)
	answer, err := s.llm.Complete(ctx, instruction, []domain.Message{
		{Role: domain.RoleUser, Content: question},
	})
	if err != nil {
		return "", fmt.Errorf("agent runtime call failed: %w", err)
	}
	return answer, nil
}
