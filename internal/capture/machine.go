package capture

import (
	"context"
	"fmt"
	"strings"

	"github.com/adaai/leadcapture/internal/config"
	"github.com/adaai/leadcapture/internal/dto"
	"github.com/adaai/leadcapture/internal/service"
)

// State enumerates the capture flow phases.
type State int

// The flow moves strictly forward: Idle -> Asking -> Submitting -> Done.
const (
	StateIdle State = iota
	StateAsking
	StateSubmitting
	StateDone
)

// Role identifies who produced a transcript message.
type Role string

// Transcript roles.
const (
	RoleBot  Role = "bot"
	RoleUser Role = "user"
)

// Message is one line of the capture transcript.
type Message struct {
	Role Role
	Text string
}

// Question pairs a lead field with the prompt shown for it.
type Question struct {
	Field  string
	Prompt string
}

// Questions are asked one at a time in this fixed order, which matches the
// service-side required-field check.
var Questions = []Question{
	{Field: "name", Prompt: "What is your full name?"},
	{Field: "email", Prompt: "What is your email address?"},
	{Field: "phone", Prompt: "What is your phone number with country code?"},
	{Field: "company", Prompt: "What is your company or organization name?"},
	{Field: "service", Prompt: "Which service do you need?"},
	{Field: "details", Prompt: "Share a short description of your project requirements."},
}

const greeting = "Hi, I am the lead assistant. I can capture your project lead in under a minute."

// Submitter delivers an assembled lead to the API.
type Submitter interface {
	Submit(ctx context.Context, req dto.SubmitLeadRequest) (int64, error)
}

// Machine drives the sequential question/answer capture flow for a single
// session. Answers cannot be revisited once recorded, and after the terminal
// message the machine accepts no further input.
type Machine struct {
	submitter Submitter
	contact   config.ContactInfo

	state      State
	step       int
	answers    map[string]string
	started    bool
	submitting bool
	succeeded  bool
	leadID     int64
}

// NewMachine builds an Idle machine that will submit through the given
// Submitter and fall back to the given contact channel on failure.
func NewMachine(submitter Submitter, contact config.ContactInfo) *Machine {
	return &Machine{
		submitter: submitter,
		contact:   contact,
		answers:   make(map[string]string, len(Questions)),
	}
}

// State reports the current phase.
func (m *Machine) State() State { return m.state }

// Step reports the index of the question currently awaiting an answer. Only
// meaningful while the machine is in StateAsking.
func (m *Machine) Step() int { return m.step }

// Succeeded reports whether the terminal message was the success one.
func (m *Machine) Succeeded() bool { return m.succeeded }

// LeadID returns the identifier assigned by the store after a successful
// submission, zero otherwise.
func (m *Machine) LeadID() int64 { return m.leadID }

// Open starts the flow: the greeting and the first question are produced
// exactly once per session. Reopening in any later state is a no-op.
func (m *Machine) Open() []Message {
	if m.started {
		return nil
	}
	m.started = true
	m.state = StateAsking
	return []Message{
		{Role: RoleBot, Text: greeting},
		{Role: RoleBot, Text: Questions[0].Prompt},
	}
}

// Input feeds one user answer into the machine and returns the transcript
// lines it produced. Input is ignored before Open, after Done, and while a
// submission is in flight.
func (m *Machine) Input(ctx context.Context, answer string) []Message {
	if m.state != StateAsking || m.submitting {
		return nil
	}

	answer = strings.TrimSpace(answer)
	question := Questions[m.step]
	if msg := validateAnswer(question.Field, answer); msg != "" {
		return []Message{{Role: RoleBot, Text: msg}}
	}

	out := []Message{{Role: RoleUser, Text: answer}}
	m.answers[question.Field] = answer
	m.step++

	if m.step < len(Questions) {
		out = append(out, Message{Role: RoleBot, Text: Questions[m.step].Prompt})
		return out
	}

	return append(out, m.submit(ctx)...)
}

// validateAnswer mirrors the per-question rules: presence always, format for
// the email and phone questions. The server re-validates identically, so this
// check is a UX shortcut, not a trust boundary.
func validateAnswer(field, answer string) string {
	if answer == "" {
		return "Please enter a response."
	}
	if field == "email" && !service.IsValidEmail(answer) {
		return "Please enter a valid email address."
	}
	if field == "phone" && !service.IsValidPhone(answer) {
		return "Please enter a valid phone number."
	}
	return ""
}

func (m *Machine) submit(ctx context.Context) []Message {
	m.submitting = true
	m.state = StateSubmitting

	out := []Message{{Role: RoleBot, Text: "Submitting your details now..."}}

	req := dto.SubmitLeadRequest{
		Name:    m.answers["name"],
		Email:   m.answers["email"],
		Phone:   m.answers["phone"],
		Company: m.answers["company"],
		Service: m.answers["service"],
		Details: m.answers["details"],
	}

	id, err := m.submitter.Submit(ctx, req)

	m.submitting = false
	m.state = StateDone
	if err != nil {
		return append(out, Message{
			Role: RoleBot,
			Text: fmt.Sprintf("There was an issue saving your request. Please email us at %s.", m.contact.Email),
		})
	}

	m.succeeded = true
	m.leadID = id
	return append(out, Message{
		Role: RoleBot,
		Text: fmt.Sprintf("Thank you. Your request has been received. Our team will contact you at %s or %s.", m.contact.Email, m.contact.Phone),
	})
}
