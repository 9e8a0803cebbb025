package chatbot

import (
	"encoding/json"
	"log"
	"os"
)

// Intent is one named category of question: the phrases that trigger it and
// the response templates it can answer with. Intents are kept in a slice
// because configuration order is the documented tie-break when two intents
// score equally.
type Intent struct {
	Tag       string   `json:"tag"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses"`
}

// Config is the full intent set, loaded once at startup and immutable after.
type Config struct {
	Intents []Intent `json:"intents"`
}

func (c Config) find(tag string) (Intent, bool) {
	for _, intent := range c.Intents {
		if intent.Tag == tag {
			return intent, true
		}
	}
	return Intent{}, false
}

// LoadConfig reads the intent set from a JSON file. A missing or malformed
// file falls back to the built-in defaults so the chat feature stays
// available.
func LoadConfig(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[chatbot] %s not found, using default intents", path)
		return DefaultConfig()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("[chatbot] failed to parse %s: %v, using default intents", path, err)
		return DefaultConfig()
	}
	if len(cfg.Intents) == 0 {
		log.Printf("[chatbot] %s contains no intents, using default intents", path)
		return DefaultConfig()
	}

	log.Printf("[chatbot] loaded %d intents from %s", len(cfg.Intents), path)
	return cfg
}

// DefaultConfig is the built-in intent set used when no configuration file is
// available.
func DefaultConfig() Config {
	return Config{Intents: []Intent{
		{
			Tag:      "greeting",
			Patterns: []string{"hello", "hi", "hey", "good morning", "good afternoon", "greetings"},
			Responses: []string{
				"Hello! How can I help you with the hospital queue today?",
				"Hi there! I'm here to help with queue information.",
				"Hello! Ask me about the patient queue or hospital information.",
			},
		},
		{
			Tag: "queue_status",
			Patterns: []string{
				"how many patients", "queue length", "patients in queue",
				"how many in queue", "queue count", "number of patients",
			},
			Responses: []string{"There are {queue_count} patients currently in the queue."},
		},
		{
			Tag: "next_patient",
			Patterns: []string{
				"who is next", "next patient", "who's next", "next in line",
				"who will be served", "next to serve",
			},
			Responses: []string{"The next patient to be served is {next_patient_info}."},
		},
		{
			Tag:       "queue_empty",
			Patterns:  []string{"is queue empty", "anyone waiting", "patients waiting"},
			Responses: []string{"{queue_status_message}"},
		},
		{
			Tag: "patient_info",
			Patterns: []string{
				"patient details", "tell me about patient", "patient information",
				"who is patient", "patient name",
			},
			Responses: []string{"{patient_info_response}"},
		},
		{
			Tag: "priority_info",
			Patterns: []string{
				"what is priority", "priority levels", "how does priority work",
				"priority system", "priority meaning",
			},
			Responses: []string{
				"Priority levels: 1 = High/Critical (served first), " +
					"2 = Medium/Urgent, 3 = Low/Regular. " +
					"Within same priority, older patients are served first.",
			},
		},
		{
			Tag: "hospital_hours",
			Patterns: []string{
				"hospital hours", "opening hours", "when is hospital open",
				"hospital schedule", "visiting hours",
			},
			Responses: []string{
				"The hospital is open 24/7 for emergency services. " +
					"Regular appointments are available Monday-Friday 8 AM - 6 PM.",
			},
		},
		{
			Tag:      "goodbye",
			Patterns: []string{"bye", "goodbye", "see you", "thanks", "thank you", "exit"},
			Responses: []string{
				"You're welcome! Feel free to ask if you need more information.",
				"Goodbye! Take care.",
				"Thank you for using the hospital queue system!",
			},
		},
		{
			Tag:      "help",
			Patterns: []string{"help", "what can you do", "what do you know", "capabilities"},
			Responses: []string{
				"I can help you with:\n" +
					"- Queue status and patient count\n" +
					"- Next patient information\n" +
					"- Patient details\n" +
					"- Priority system explanation\n" +
					"- Hospital information\n" +
					"Just ask me anything about the queue!",
			},
		},
	}}
}
