package chatbot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"backend-triage/internal/models"
)

const (
	fallbackGeneric = "I'm sorry, I'm having trouble understanding. Could you rephrase your question?"
	fallbackIntent  = "I'm not sure how to help with that. Try asking about the queue status or next patient."
	fallbackEmpty   = "Please ask me a question about the hospital queue or patient information."
	emptyQueueText  = "There are no patients currently in the queue."
	patientInfoHint = "I can help you find patient information. Please provide the patient's name, or ask about the next patient in queue."
)

// markers precede a likely patient name in free text ("tell me about John").
var nameMarkers = map[string]bool{
	"patient": true,
	"about":   true,
	"tell":    true,
	"who":     true,
	"is":      true,
}

func formatPatient(p models.Patient) string {
	return fmt.Sprintf("Patient ID %d: %s, Age %d, Priority %s (%d)",
		p.ID, p.Name, p.Age, models.PriorityLabel(p.Priority), p.Priority)
}

// respond renders the first configured response for the intent, substituting
// live queue values where the intent calls for them. It never fails: any
// lookup problem degrades to a fixed fallback string.
func (b *Bot) respond(tag, rawInput string) string {
	intent, ok := b.cfg.find(tag)
	if !ok {
		return fallbackIntent
	}

	base := "I understand, but I need more information."
	if len(intent.Responses) > 0 {
		base = intent.Responses[0]
	}

	switch tag {
	case "queue_status":
		return strings.ReplaceAll(base, "{queue_count}", strconv.Itoa(b.queuedCount()))

	case "next_patient":
		next, err := b.engine.NextUp()
		if err != nil {
			return emptyQueueText
		}
		return strings.ReplaceAll(base, "{next_patient_info}", formatPatient(next))

	case "queue_empty":
		count := b.queuedCount()
		if count == 0 {
			return "Yes, the queue is currently empty. No patients are waiting."
		}
		return fmt.Sprintf("No, there are %d patient(s) currently in the queue.", count)

	case "patient_info":
		return b.patientInfo(rawInput)
	}

	return base
}

func (b *Bot) queuedCount() int {
	queued, err := b.engine.ListQueued()
	if err != nil {
		return 0
	}
	return len(queued)
}

// patientInfo extracts candidate name tokens from the raw input and looks
// each one up by case-insensitive substring until something matches.
func (b *Bot) patientInfo(rawInput string) string {
	for _, name := range nameCandidates(rawInput) {
		matches, err := b.engine.FindByName(name)
		if err != nil || len(matches) == 0 {
			continue
		}

		if len(matches) == 1 {
			p := matches[0]
			return fmt.Sprintf("Here's the information: %s, Status: %s", formatPatient(p), p.Status)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d patient(s) matching '%s':\n", len(matches), name)
		for _, p := range matches {
			fmt.Fprintf(&sb, "- %s, Status: %s\n", formatPatient(p), p.Status)
		}
		return sb.String()
	}

	// No candidate matched; answer with queue context when there is some.
	if count := b.queuedCount(); count > 0 {
		if next, err := b.engine.NextUp(); err == nil {
			return fmt.Sprintf("There are %d patients in the queue. The next patient is %s (ID: %d).",
				count, next.Name, next.ID)
		}
	}
	return patientInfoHint
}

// nameCandidates pulls likely name tokens out of the raw input: any token
// following a marker word, plus any capitalized token, both longer than two
// characters.
func nameCandidates(rawInput string) []string {
	var candidates []string

	lowerWords := strings.Fields(strings.ToLower(rawInput))
	for i, word := range lowerWords {
		if nameMarkers[word] && i+1 < len(lowerWords) {
			if next := lowerWords[i+1]; len(next) > 2 {
				candidates = append(candidates, next)
			}
		}
	}

	for _, word := range strings.Fields(rawInput) {
		runes := []rune(word)
		if len(runes) > 2 && unicode.IsUpper(runes[0]) {
			candidates = append(candidates, word)
		}
	}

	return candidates
}
