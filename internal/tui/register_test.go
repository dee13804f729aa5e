package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func registerType(m registerModel, s string) registerModel {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestRegisterWizardWalksSteps(t *testing.T) {
	m := newRegisterModel(nil)
	if m.step != stepRole {
		t.Fatal("wizard must start at role selection")
	}

	// Pick recruiter and advance.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.step != stepDetails {
		t.Fatalf("expected details step, got %d", m.step)
	}

	m = registerType(m, "Ravi")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = registerType(m, "ravi@acme.com")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.step != stepPassword {
		t.Fatalf("expected password step, got %d", m.step)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	m := newRegisterModel(nil)
	m.step = stepPassword
	m.password = "abc"
	m.confirm = "abc"
	m.focus = 1

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("short password must not submit")
	}
	if !strings.Contains(m.View(), "at least 6") {
		t.Errorf("expected length message, got:\n%s", m.View())
	}
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	m := newRegisterModel(nil)
	m.step = stepPassword
	m.password = "hunter22"
	m.confirm = "hunter23"
	m.focus = 1

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("mismatched passwords must not submit")
	}
	if !strings.Contains(m.View(), "do not match") {
		t.Errorf("expected mismatch message, got:\n%s", m.View())
	}
}

func TestRegisterRequiresValidEmail(t *testing.T) {
	m := newRegisterModel(nil)
	m.step = stepDetails
	m.name = "Ravi"
	m.email = "not-an-email"
	m.focus = 1

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.step != stepDetails {
		t.Error("invalid email must not advance the wizard")
	}
}
