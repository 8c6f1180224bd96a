package capture

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/adaai/leadcapture/internal/config"
	"github.com/adaai/leadcapture/internal/dto"
)

type stubSubmitter struct {
	calls int
	last  dto.SubmitLeadRequest
	id    int64
	err   error
}

func (s *stubSubmitter) Submit(ctx context.Context, req dto.SubmitLeadRequest) (int64, error) {
	s.calls++
	s.last = req
	return s.id, s.err
}

var testContact = config.ContactInfo{Email: "contact@example.com", Phone: "+1 555 000 1111"}

var answers = []string{
	"Jane Doe",
	"jane@example.com",
	"+1 555-123-4567",
	"Acme",
	"Consulting",
	"Need a audit",
}

func TestMachine_OpenOnlyOnce(t *testing.T) {
	m := NewMachine(&stubSubmitter{}, testContact)

	first := m.Open()
	if len(first) != 2 {
		t.Fatalf("expected greeting plus first question, got %d messages", len(first))
	}
	if first[1].Text != Questions[0].Prompt {
		t.Fatalf("expected first question, got %q", first[1].Text)
	}
	if m.State() != StateAsking {
		t.Fatalf("expected asking state, got %d", m.State())
	}

	if again := m.Open(); again != nil {
		t.Fatalf("reopening must not repeat the greeting, got %v", again)
	}

	// Reopening mid-flow must not restart either.
	m.Input(context.Background(), answers[0])
	if again := m.Open(); again != nil {
		t.Fatalf("reopening after progress must be a no-op")
	}
	if m.Step() != 1 {
		t.Fatalf("expected progress preserved, step=%d", m.Step())
	}
}

func TestMachine_InputBeforeOpenIgnored(t *testing.T) {
	m := NewMachine(&stubSubmitter{}, testContact)
	if out := m.Input(context.Background(), "hello"); out != nil {
		t.Fatalf("expected input before open to be ignored")
	}
	if m.State() != StateIdle {
		t.Fatalf("expected idle state")
	}
}

func TestMachine_InvalidAnswerRepromptsSameQuestion(t *testing.T) {
	m := NewMachine(&stubSubmitter{}, testContact)
	m.Open()

	out := m.Input(context.Background(), "   ")
	if len(out) != 1 || out[0].Text != "Please enter a response." {
		t.Fatalf("expected empty-answer message, got %v", out)
	}
	if m.Step() != 0 {
		t.Fatalf("expected to stay on the same question")
	}

	m.Input(context.Background(), answers[0])
	out = m.Input(context.Background(), "not-an-email")
	if len(out) != 1 || out[0].Text != "Please enter a valid email address." {
		t.Fatalf("expected email reprompt, got %v", out)
	}
	if m.Step() != 1 {
		t.Fatalf("invalid email must not advance")
	}

	m.Input(context.Background(), answers[1])
	out = m.Input(context.Background(), "12345")
	if len(out) != 1 || out[0].Text != "Please enter a valid phone number." {
		t.Fatalf("expected phone reprompt, got %v", out)
	}
}

func TestMachine_HappyPathToDone(t *testing.T) {
	sub := &stubSubmitter{id: 7}
	m := NewMachine(sub, testContact)
	m.Open()

	var transcript []Message
	for _, answer := range answers {
		transcript = append(transcript, m.Input(context.Background(), answer)...)
	}

	if m.State() != StateDone {
		t.Fatalf("expected done state, got %d", m.State())
	}
	if !m.Succeeded() || m.LeadID() != 7 {
		t.Fatalf("expected successful submission with id 7")
	}
	if sub.calls != 1 {
		t.Fatalf("expected exactly one submit call, got %d", sub.calls)
	}
	if sub.last.Name != "Jane Doe" || sub.last.Details != "Need a audit" {
		t.Fatalf("unexpected assembled payload: %+v", sub.last)
	}

	last := transcript[len(transcript)-1]
	if last.Role != RoleBot || !strings.Contains(last.Text, "Thank you") {
		t.Fatalf("expected terminal success message, got %v", last)
	}
	if !strings.Contains(last.Text, testContact.Email) || !strings.Contains(last.Text, testContact.Phone) {
		t.Fatalf("success message must include contact fallback: %q", last.Text)
	}
}

func TestMachine_SubmitFailureShowsFallback(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("api down")}
	m := NewMachine(sub, testContact)
	m.Open()

	var transcript []Message
	for _, answer := range answers {
		transcript = append(transcript, m.Input(context.Background(), answer)...)
	}

	if m.State() != StateDone {
		t.Fatalf("expected done state after failure")
	}
	if m.Succeeded() {
		t.Fatalf("expected failure outcome")
	}

	last := transcript[len(transcript)-1]
	if !strings.Contains(last.Text, "issue saving your request") || !strings.Contains(last.Text, testContact.Email) {
		t.Fatalf("expected failure message with contact fallback, got %q", last.Text)
	}
}

func TestMachine_InputAfterDoneIgnored(t *testing.T) {
	sub := &stubSubmitter{id: 1}
	m := NewMachine(sub, testContact)
	m.Open()
	for _, answer := range answers {
		m.Input(context.Background(), answer)
	}

	if out := m.Input(context.Background(), "one more thing"); out != nil {
		t.Fatalf("expected input after done to be ignored")
	}
	if sub.calls != 1 {
		t.Fatalf("no second submission may be issued, got %d calls", sub.calls)
	}
}

func TestMachine_NoBacktracking(t *testing.T) {
	m := NewMachine(&stubSubmitter{}, testContact)
	m.Open()

	m.Input(context.Background(), answers[0])
	m.Input(context.Background(), answers[1])

	// A later valid name-like answer lands on the phone question; the
	// recorded name is untouched.
	m.Input(context.Background(), "+1 555-999-8888")
	if m.Step() != 3 {
		t.Fatalf("expected step 3, got %d", m.Step())
	}
	if m.answers["name"] != answers[0] {
		t.Fatalf("recorded answers must not change once advanced")
	}
}
