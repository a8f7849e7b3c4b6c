// Package agent builds agent-runtime instructions and owns the live runner
// cache that binds a session id to a running conversational context.
package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/feedbackloop/interviewd/internal/domain"
)

// CompletionSentinel is the fixed marker the interview agent appends to its
// final message. Its presence is the only machine-readable completion
// signal; consumers strip it before storage and display.
const CompletionSentinel = "[KONIEC]"

// Placeholders for scenario fields left empty by the admin flow. Missing
// fields never fail instruction assembly.
const (
	defaultCandidate = "the candidate"
	defaultContext   = "a recruitment feedback conversation"
	defaultTone      = "neutral"
)

// BuildInterviewInstruction assembles the full natural-language instruction
// for an interview agent. When prior is non-empty a resumption block replays
// it so a freshly created runner can continue a session whose in-memory
// context did not survive a restart; the durable transcript is the only
// channel for restoring continuity.
func BuildInterviewInstruction(sc *domain.Scenario, prior []domain.Message) string {
	candidate := sc.CandidateName
	if candidate == "" {
		candidate = defaultCandidate
	}
	situation := sc.Context
	if situation == "" {
		situation = defaultContext
	}
	tone := sc.Tone
	if tone == "" {
		tone = defaultTone
	}

	var questions strings.Builder
	for _, q := range sc.KeyQuestions {
		fmt.Fprintf(&questions, "- %s\n", q)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are an HR assistant collecting feedback about a recruitment process.
You are having a TEXT CHAT with the candidate: %s.
Situational context: %s.
Your tone: %s.

Your goals for this conversation, in order:
%s
Rules:
1. Be empathetic and listen carefully.
2. Ask one question at a time.
3. Do not judge the candidate; only collect opinions.
4. This is a chat, not a phone call. Never write "I'm calling" or "I hear you"; write "I'm reaching out", "I'm writing".
5. Do not emit any technical or control tag other than the single completion marker below.
6. Once every question has been covered (or the candidate wants to stop), thank them and close the conversation.
7. IMPORTANT: when the conversation is over, append the tag %s at the very end of your final message.
`, candidate, situation, tone, questions.String(), CompletionSentinel)

	if len(prior) > 0 {
		b.WriteString(`
!!! IMPORTANT - RESUMED CONVERSATION !!!
This is the continuation of an interrupted session. The conversation so far
is replayed below. Continue smoothly from the last point.

Continuation rules:
1. Do NOT introduce yourself again; the candidate already knows you.
2. Do NOT greet again (at most briefly, and only if the candidate greeted first after a long pause).
3. Pick up from the last question or answer in the history.
4. If the candidate writes "hi" or another greeting mid-conversation, treat it as a check-in, not a reset; ask how you can help or return to the topic.

[CONVERSATION HISTORY]:
`)
		for _, m := range prior {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(m.Role), m.Content)
		}
		b.WriteString("[END OF HISTORY]\n")
	}

	return b.String()
}

// SetupInstruction is the fixed instruction for the manager agent that helps
// an operator draft an interview scenario. The fenced json block on
// acceptance is the documented structured-output contract.
const SetupInstruction = `You are an HR assistant (process manager). Your task is to prepare the scenario for a candidate-experience feedback conversation.

Your steps:
1. Analyze the files or chat notes the operator provides (CV, recruitment notes).
2. Ask about the key gaps, for example:
   - Why was the candidate rejected or hired?
   - Were there any difficult moments in the process?
   - What tone should the conversation take (formal, casual, very gentle)?
3. Once you have complete information, present a scenario summary and ask for approval.
4. If the operator raises concerns, revise the scenario.
5. When the operator approves, your final message MUST contain ONLY a fenced json code block with the configuration.

JSON format:
` + "```json\n" + `{
  "candidate_name": "...",
  "context": "...",
  "tone": "...",
  "key_questions": ["..."]
}
` + "```"

// BuildAnalystInstruction inlines the whole transcript corpus into the
// analyst agent's instruction. Fine at this scale; a retrieval tool would
// replace the inline dump if the corpus grew.
func BuildAnalystInstruction(transcripts []domain.Transcript) string {
	data, err := json.MarshalIndent(transcripts, "", "  ")
	if err != nil {
		data = []byte("[]")
	}
	return fmt.Sprintf(`You are an HR data analyst. You have access to the logs of completed feedback conversations.

DATA (conversation logs):
%s

Your task:
Answer the HR manager's questions about trends, problems in the recruitment process and candidate sentiment.
You may produce short textual summaries.
`, data)
}

// StripSentinel reports whether raw contains the completion sentinel and
// returns raw with every occurrence removed and whitespace trimmed.
func StripSentinel(raw string) (string, bool) {
	if !strings.Contains(raw, CompletionSentinel) {
		return strings.TrimSpace(raw), false
	}
	return strings.TrimSpace(strings.ReplaceAll(raw, CompletionSentinel, "")), true
}
