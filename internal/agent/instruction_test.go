package agent

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feedbackloop/interviewd/internal/domain"
)

func testScenario() *domain.Scenario {
	return &domain.Scenario{
		SessionID:     "ab12cd34",
		CandidateName: "Anna Nowak",
		Context:       "post-rejection feedback",
		Tone:          "empathetic",
		KeyQuestions:  []string{"Q1", "Q2"},
	}
}

func TestBuildInterviewInstructionBase(t *testing.T) {
	instr := BuildInterviewInstruction(testScenario(), nil)

	assert.Contains(t, instr, "Anna Nowak")
	assert.Contains(t, instr, "post-rejection feedback")
	assert.Contains(t, instr, "empathetic")
	assert.Contains(t, instr, "- Q1")
	assert.Contains(t, instr, "- Q2")
	assert.Contains(t, instr, CompletionSentinel)
	assert.NotContains(t, instr, "RESUMED CONVERSATION")
}

func TestBuildInterviewInstructionQuestionOrder(t *testing.T) {
	instr := BuildInterviewInstruction(testScenario(), nil)
	assert.Less(t, strings.Index(instr, "- Q1"), strings.Index(instr, "- Q2"))
}

func TestBuildInterviewInstructionPlaceholders(t *testing.T) {
	instr := BuildInterviewInstruction(&domain.Scenario{}, nil)

	assert.Contains(t, instr, "the candidate")
	assert.Contains(t, instr, "a recruitment feedback conversation")
	assert.Contains(t, instr, "neutral")
}

func TestBuildInterviewInstructionResumption(t *testing.T) {
	prior := []domain.Message{
		{Role: domain.RoleAssistant, Content: "Welcome, how was the process?"},
		{Role: domain.RoleUser, Content: "It was long."},
		{Role: domain.RoleAssistant, Content: "What felt longest?"},
	}
	instr := BuildInterviewInstruction(testScenario(), prior)

	assert.Contains(t, instr, "RESUMED CONVERSATION")
	assert.Contains(t, instr, "[CONVERSATION HISTORY]")
	assert.Contains(t, instr, "[END OF HISTORY]")

	// Every prior message appears as a role-labelled line, in original order.
	pos := -1
	for _, m := range prior {
		line := fmt.Sprintf("%s: %s", strings.ToUpper(m.Role), m.Content)
		idx := strings.Index(instr, line)
		assert.Greater(t, idx, pos, "message %q out of order or missing", m.Content)
		pos = idx
	}
}

func TestStripSentinel(t *testing.T) {
	clean, done := StripSentinel("Thank you for your time. [KONIEC]")
	assert.True(t, done)
	assert.Equal(t, "Thank you for your time.", clean)
	assert.NotContains(t, clean, CompletionSentinel)

	clean, done = StripSentinel("Still talking.")
	assert.False(t, done)
	assert.Equal(t, "Still talking.", clean)
}

func TestBuildAnalystInstructionInlinesCorpus(t *testing.T) {
	transcripts := []domain.Transcript{
		{SessionID: "s1", History: []domain.Message{{Role: domain.RoleUser, Content: "too slow"}}},
	}
	instr := BuildAnalystInstruction(transcripts)
	assert.Contains(t, instr, "s1")
	assert.Contains(t, instr, "too slow")
}
