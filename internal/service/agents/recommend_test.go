package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/merrysway/baristabot/internal/core"
)

func TestRecommenderApriori(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		`{"chain_of_thought": "...", "recommendation_type": "apriori", "parameters": ["Latte"]}`,
		"You might enjoy a Chocolate Croissant with that!",
	}}
	r := NewRecommender(llm, loadTables(t))

	msg, err := r.GetResponse(context.Background(), []core.Message{{Role: core.RoleUser, Content: "what goes well with a latte?"}})
	if err != nil {
		t.Fatalf("GetResponse error: %v", err)
	}
	if msg.Content != "You might enjoy a Chocolate Croissant with that!" {
		t.Errorf("content = %q", msg.Content)
	}
	if msg.Memory == nil || msg.Memory.Agent != core.AgentRecommendation {
		t.Errorf("memory = %+v", msg.Memory)
	}

	// The phrasing request must carry the ranked products.
	phrasing := llm.calls[1]
	if !strings.Contains(phrasing[len(phrasing)-1].Content, "Chocolate Croissant") {
		t.Errorf("phrasing request missing ranked items: %q", phrasing[len(phrasing)-1].Content)
	}
}

func TestRecommenderPopularByCategory(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		`{"recommendation_type": "popular_by_category", "parameters": ["Bakery"]}`,
		"Our most loved pastries are...",
	}}
	r := NewRecommender(llm, loadTables(t))

	if _, err := r.GetResponse(context.Background(), []core.Message{{Role: core.RoleUser, Content: "recommend me a pastry"}}); err != nil {
		t.Fatalf("GetResponse error: %v", err)
	}

	phrasing := llm.calls[1]
	if !strings.Contains(phrasing[len(phrasing)-1].Content, "Croissant") {
		t.Errorf("phrasing request missing bakery items: %q", phrasing[len(phrasing)-1].Content)
	}
}

func TestRecommenderFallsBackToPopular(t *testing.T) {
	// Unusable classification output degrades to the popularity
	// ranking; the turn still succeeds.
	llm := &scriptedLLM{replies: []string{
		"garbage",
		"more garbage",
		"Our most popular items are Latte, Cappuccino...",
	}}
	r := NewRecommender(llm, loadTables(t))

	msg, err := r.GetResponse(context.Background(), []core.Message{{Role: core.RoleUser, Content: "surprise me"}})
	if err != nil {
		t.Fatalf("GetResponse error: %v", err)
	}
	if msg.Content != "Our most popular items are Latte, Cappuccino..." {
		t.Errorf("content = %q", msg.Content)
	}

	phrasing := llm.calls[2]
	if !strings.Contains(phrasing[len(phrasing)-1].Content, "Latte") {
		t.Errorf("popular fallback items missing: %q", phrasing[len(phrasing)-1].Content)
	}
}

func TestRecommenderRendersItemsWhenPhrasingEmpty(t *testing.T) {
	// An empty phrasing completion is a provider failure; the ranked
	// products still reach the user via the plain rendering.
	llm := &scriptedLLM{replies: []string{
		`{"recommendation_type": "apriori", "parameters": ["Latte"]}`,
		"",
	}}
	r := NewRecommender(llm, loadTables(t))

	msg, err := r.GetResponse(context.Background(), []core.Message{{Role: core.RoleUser, Content: "what goes well with a latte?"}})
	if err != nil {
		t.Fatalf("GetResponse error: %v", err)
	}
	if msg.Content == "" {
		t.Fatal("content is empty, want the plain rendering")
	}
	if !strings.Contains(msg.Content, "Chocolate Croissant") {
		t.Errorf("content = %q, want the ranked items rendered", msg.Content)
	}
	if msg.Memory == nil || msg.Memory.Agent != core.AgentRecommendation {
		t.Errorf("memory = %+v", msg.Memory)
	}
	if len(llm.calls) != 2 {
		t.Errorf("completion calls = %d, want 2", len(llm.calls))
	}
}

func TestRecommenderEmptyResultShortCircuits(t *testing.T) {
	// An unknown category yields no products; the agent apologizes
	// without spending a phrasing completion.
	llm := &scriptedLLM{replies: []string{
		`{"recommendation_type": "popular_by_category", "parameters": ["Sushi"]}`,
	}}
	r := NewRecommender(llm, loadTables(t))

	msg, err := r.GetResponse(context.Background(), []core.Message{{Role: core.RoleUser, Content: "recommend me sushi"}})
	if err != nil {
		t.Fatalf("GetResponse error: %v", err)
	}
	if msg.Content != noRecommendationReply {
		t.Errorf("content = %q, want the fixed apology", msg.Content)
	}
	if len(llm.calls) != 1 {
		t.Errorf("completion calls = %d, want 1 (no phrasing round)", len(llm.calls))
	}
}

func TestRecommendFromOrder(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"A Chocolate Croissant pairs nicely with your order!",
	}}
	r := NewRecommender(llm, loadTables(t))

	order := []core.OrderLine{{Item: "Latte", Quantity: 1, Price: 4.75}}
	msg, err := r.RecommendFromOrder(context.Background(), []core.Message{{Role: core.RoleUser, Content: "that's all"}}, order)
	if err != nil {
		t.Fatalf("RecommendFromOrder error: %v", err)
	}
	if msg.Content != "A Chocolate Croissant pairs nicely with your order!" {
		t.Errorf("content = %q", msg.Content)
	}
	if len(llm.calls) != 1 {
		t.Errorf("completion calls = %d, want 1 (no mode classification)", len(llm.calls))
	}
}

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"list", `["Latte", "Croissant"]`, []string{"Latte", "Croissant"}},
		{"bare string singleton", `"Coffee"`, []string{"Coffee"}},
		{"list inside a string", `"[\"Coffee\", \"Bakery\"]"`, []string{"Coffee", "Bakery"}},
		{"empty string", `""`, nil},
		{"absent", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseParameters([]byte(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("parseParameters(%s) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parameter %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
