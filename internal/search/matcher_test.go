package search

import "testing"

func TestNewMatcher_BlankQueryMatchesEverything(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n", "!!!"} {
		m := NewMatcher(q)
		if !m.Empty() {
			t.Fatalf("matcher for %q should be empty", q)
		}
		if !m.Matches("anything at all") {
			t.Fatalf("empty matcher must match everything (query %q)", q)
		}
		if m.Score("anything") != 0 {
			t.Fatalf("empty matcher must score 0")
		}
	}
}

func TestMatches_ANDSemantics(t *testing.T) {
	m := NewMatcher("pricing demo")

	if !m.Matches("Demo follow-up on pricing tiers") {
		t.Fatalf("all tokens present; expected match")
	}
	if m.Matches("Pricing discussion only") {
		t.Fatalf("missing token 'demo'; expected no match")
	}
}

func TestMatches_AcrossFields(t *testing.T) {
	m := NewMatcher("pricing demo")
	// One token in the subject, the other in the notes.
	if !m.Matches("Product demo", "asked about pricing") {
		t.Fatalf("tokens split across fields should still match")
	}
}

func TestMatches_CaseAndPunctuationInsensitive(t *testing.T) {
	m := NewMatcher("ACME renewal")
	if !m.Matches("Renewal call with acme, went well.") {
		t.Fatalf("matching should ignore case and punctuation")
	}
}

func TestWithAnyToken_ORSemantics(t *testing.T) {
	m := NewMatcher("pricing demo", WithAnyToken())
	if !m.Matches("pricing only") {
		t.Fatalf("OR semantics should match on a single token")
	}
	if m.Matches("unrelated note") {
		t.Fatalf("OR semantics still needs at least one token")
	}
}

func TestWithStopwords(t *testing.T) {
	m := NewMatcher("the demo", WithStopwords([]string{"the", " ", ""}))
	if m.Empty() {
		t.Fatalf("'demo' should survive stop-word removal")
	}
	if !m.Matches("demo scheduled") {
		t.Fatalf("expected match after stop-word removal")
	}
}

func TestScore_JaccardBounds(t *testing.T) {
	m := NewMatcher("alpha beta")

	if got := m.Score("alpha beta"); got != 1 {
		t.Fatalf("identical token sets should score 1, got %v", got)
	}
	if got := m.Score("alpha gamma delta"); got <= 0 || got >= 1 {
		t.Fatalf("partial overlap should score in (0,1), got %v", got)
	}
	if got := m.Score("gamma delta"); got != 0 {
		t.Fatalf("no overlap should score 0, got %v", got)
	}
}
