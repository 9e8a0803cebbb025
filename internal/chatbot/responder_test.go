package chatbot

import (
	"strings"
	"testing"

	"backend-triage/internal/models"
	"backend-triage/internal/queue"
	"backend-triage/internal/store"
)

func newTestBot(t *testing.T) (*Bot, *queue.Engine) {
	t.Helper()
	engine := queue.New(store.NewMemoryStore())
	return New(DefaultConfig(), engine), engine
}

func mustAdmit(t *testing.T, e *queue.Engine, name string, age, priority int) models.Patient {
	t.Helper()
	p, err := e.Add(name, age, priority)
	if err != nil {
		t.Fatalf("failed to admit %s: %v", name, err)
	}
	return p
}

func TestRespondQueueStatus(t *testing.T) {
	bot, engine := newTestBot(t)
	mustAdmit(t, engine, "Alice", 70, 2)
	mustAdmit(t, engine, "Bob", 40, 1)

	got := bot.GetResponse("how many patients are in the queue")
	want := "There are 2 patients currently in the queue."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRespondNextPatient(t *testing.T) {
	bot, engine := newTestBot(t)
	mustAdmit(t, engine, "Alice", 70, 2)
	bob := mustAdmit(t, engine, "Bob", 40, 1)

	got := bot.GetResponse("who is next")
	if !strings.Contains(got, "Bob") {
		t.Errorf("expected head-of-queue Bob in response, got %q", got)
	}
	if !strings.Contains(got, "Priority High (1)") {
		t.Errorf("expected priority label in response, got %q", got)
	}
	if !strings.Contains(got, "Patient ID 2") {
		t.Errorf("expected id %d in response, got %q", bob.ID, got)
	}
}

func TestRespondNextPatientEmptyQueue(t *testing.T) {
	bot, _ := newTestBot(t)

	got := bot.GetResponse("who is next")
	if got != "There are no patients currently in the queue." {
		t.Errorf("unexpected empty-queue response: %q", got)
	}
}

func TestRespondQueueEmpty(t *testing.T) {
	bot, engine := newTestBot(t)

	got := bot.GetResponse("is anyone waiting?")
	if !strings.HasPrefix(got, "Yes, the queue is currently empty.") {
		t.Errorf("expected empty-queue confirmation, got %q", got)
	}

	mustAdmit(t, engine, "Alice", 70, 2)
	got = bot.GetResponse("is anyone waiting?")
	if got != "No, there are 1 patient(s) currently in the queue." {
		t.Errorf("unexpected non-empty response: %q", got)
	}
}

func TestRespondPatientInfoSingleMatch(t *testing.T) {
	bot, engine := newTestBot(t)
	mustAdmit(t, engine, "John", 55, 2)

	got := bot.GetResponse("Tell me about patient John")
	if !strings.HasPrefix(got, "Here's the information: Patient ID 1: John") {
		t.Errorf("expected single-match info, got %q", got)
	}
	if !strings.Contains(got, "Status: queued") {
		t.Errorf("expected status in response, got %q", got)
	}
}

func TestRespondPatientInfoMultipleMatches(t *testing.T) {
	bot, engine := newTestBot(t)
	mustAdmit(t, engine, "John Smith", 55, 2)
	mustAdmit(t, engine, "Johnny Walker", 61, 3)

	got := bot.GetResponse("tell me about patient john")
	if !strings.Contains(got, "Found 2 patient(s) matching 'john'") {
		t.Errorf("expected multi-match summary, got %q", got)
	}
}

func TestRespondPatientInfoNoMatchWithQueueContext(t *testing.T) {
	bot, engine := newTestBot(t)
	mustAdmit(t, engine, "Alice", 70, 2)

	got := bot.GetResponse("patient details for zorblax")
	if !strings.Contains(got, "There are 1 patients in the queue.") {
		t.Errorf("expected queue context fallback, got %q", got)
	}
	if !strings.Contains(got, "Alice") {
		t.Errorf("expected next patient name in fallback, got %q", got)
	}
}

func TestRespondPatientInfoNoMatchEmptyQueue(t *testing.T) {
	bot, _ := newTestBot(t)

	got := bot.GetResponse("patient details please")
	if got != patientInfoHint {
		t.Errorf("expected generic hint, got %q", got)
	}
}

func TestRespondVerbatimIntents(t *testing.T) {
	bot, _ := newTestBot(t)
	cfg := DefaultConfig()

	// Intents without substitutions answer with their first configured
	// response exactly.
	for _, tag := range []string{"greeting", "priority_info", "hospital_hours", "goodbye", "help"} {
		intent, ok := cfg.find(tag)
		if !ok {
			t.Fatalf("default config missing %s", tag)
		}
		got := bot.respond(tag, "")
		if got != intent.Responses[0] {
			t.Errorf("%s: got %q, want first configured response", tag, got)
		}
	}
}

func TestGetResponseUnknown(t *testing.T) {
	bot, _ := newTestBot(t)

	got := bot.GetResponse("xyzzy plugh")
	if got != fallbackIntent {
		t.Errorf("expected fallback for unknown intent, got %q", got)
	}
}

func TestGetResponseEmptyInput(t *testing.T) {
	bot, _ := newTestBot(t)

	for _, input := range []string{"", "   ", "\t\n"} {
		if got := bot.GetResponse(input); got != fallbackEmpty {
			t.Errorf("GetResponse(%q) = %q, want prompt for a question", input, got)
		}
	}
}

func TestNameCandidates(t *testing.T) {
	got := nameCandidates("Tell me about patient John")

	// Marker-following tokens come first, capitalized tokens after.
	joined := strings.Join(got, " ")
	if !strings.Contains(joined, "john") {
		t.Errorf("expected lowercase marker candidate, got %v", got)
	}
	if !strings.Contains(joined, "John") {
		t.Errorf("expected capitalized candidate, got %v", got)
	}

	if cands := nameCandidates("nothing relevant here"); len(cands) != 0 {
		t.Errorf("expected no candidates, got %v", cands)
	}
}
