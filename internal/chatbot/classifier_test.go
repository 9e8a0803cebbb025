package chatbot

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello world"},
		{"  spaced   out\ttext  ", "spaced out text"},
		{"already normal", "already normal"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := normalize(tc.in); got != tc.want {
			t.Errorf("normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		input   string
		want    float64
	}{
		// identical: Jaccard 1.0, bonus pushes past the cap
		{"identical", "hello", "hello", 1.0},
		// disjoint word sets, no substring
		{"disjoint", "queue length", "xyzzy plugh", 0.0},
		// {who,is,next} vs {who,is,next,please}: 3/4 plus substring bonus
		{"subset with bonus", "who is next", "who is next please", 1.0},
		// {queue,count} vs {count,queue,now}: 2/3, no substring
		{"overlap no bonus", "queue count", "count queue now", 2.0 / 3.0},
		// empty input scores zero
		{"empty input", "hello", "", 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := similarity(tc.pattern, normalize(tc.input))
			if !almostEqual(got, tc.want) {
				t.Errorf("similarity(%q, %q) = %v, want %v", tc.pattern, tc.input, got, tc.want)
			}
		})
	}
}

func TestSimilaritySubstringBonus(t *testing.T) {
	// {anyone,waiting} vs {is,anyone,waiting}: 2/4 = 0.5... actually 2/3,
	// plus the bonus because the pattern is a literal substring.
	base := similarity("anyone waiting", "anyone waiting here today")
	noBonus := similarity("anyone waiting", "waiting anyone today here")
	if base <= noBonus {
		t.Errorf("substring bonus missing: with=%v without=%v", base, noBonus)
	}
}

func TestClassifyKnownIntents(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		input string
		want  string
	}{
		{"hello", "greeting"},
		{"how many patients are in the queue", "queue_status"},
		{"who is next", "next_patient"},
		{"is anyone waiting?", "queue_empty"},
		{"what is priority", "priority_info"},
		{"hospital hours", "hospital_hours"},
		{"thank you", "goodbye"},
		{"help", "help"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			tag, score := cfg.classify(tc.input)
			if tag != tc.want {
				t.Errorf("classify(%q) = %q (score %v), want %q", tc.input, tag, score, tc.want)
			}
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	cfg := DefaultConfig()

	tag, _ := cfg.classify("xyzzy plugh")
	if tag != "unknown" {
		t.Errorf("expected unknown for gibberish, got %q", tag)
	}
}

func TestClassifyThreshold(t *testing.T) {
	cfg := Config{Intents: []Intent{
		{Tag: "only", Patterns: []string{"alpha beta gamma delta"}, Responses: []string{"x"}},
	}}

	// One shared word out of eight: 1/8 = 0.125, below the 0.2 threshold.
	tag, score := cfg.classify("alpha zz yy xx ww")
	if tag != "unknown" {
		t.Errorf("expected unknown below threshold, got %q (score %v)", tag, score)
	}
}

func TestClassifyTieFirstConfiguredWins(t *testing.T) {
	cfg := Config{Intents: []Intent{
		{Tag: "first", Patterns: []string{"ping"}, Responses: []string{"a"}},
		{Tag: "second", Patterns: []string{"ping"}, Responses: []string{"b"}},
	}}

	tag, _ := cfg.classify("ping")
	if tag != "first" {
		t.Errorf("expected first-configured intent on tie, got %q", tag)
	}
}
