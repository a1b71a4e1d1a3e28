package core

import (
	"reflect"
	"testing"
)

func TestLatestOrderState(t *testing.T) {
	latte := OrderLine{Item: "Latte", Quantity: 1, Price: 4.75}
	scone := OrderLine{Item: "Cranberry Scone", Quantity: 2, Price: 7.00}

	tests := []struct {
		name     string
		history  []Message
		expected OrderState
	}{
		{
			name:     "empty history",
			history:  nil,
			expected: DefaultOrderState(),
		},
		{
			name: "no order taking turns",
			history: []Message{
				{Role: RoleUser, Content: "hi"},
				{Role: RoleAssistant, Content: "hello", Memory: &Memory{Agent: AgentDetails}},
			},
			expected: DefaultOrderState(),
		},
		{
			name: "latest order state wins over older one",
			history: []Message{
				{Role: RoleAssistant, Memory: &Memory{Agent: AgentOrderTaking, StepNumber: "2", Order: []OrderLine{latte}}},
				{Role: RoleUser, Content: "add two scones"},
				{Role: RoleAssistant, Memory: &Memory{Agent: AgentOrderTaking, StepNumber: "3", Order: []OrderLine{latte, scone}}},
			},
			expected: OrderState{Step: "3", Order: []OrderLine{latte, scone}},
		},
		{
			name: "intervening details turn is skipped",
			history: []Message{
				{Role: RoleAssistant, Memory: &Memory{Agent: AgentOrderTaking, StepNumber: "3", Order: []OrderLine{latte}}},
				{Role: RoleUser, Content: "where are you located?"},
				{Role: RoleAssistant, Content: "downtown", Memory: &Memory{Agent: AgentDetails}},
				{Role: RoleUser, Content: "that's all"},
			},
			expected: OrderState{Step: "3", Order: []OrderLine{latte}},
		},
		{
			name: "user message with no memory is ignored",
			history: []Message{
				{Role: RoleAssistant, Memory: &Memory{Agent: AgentOrderTaking, StepNumber: "2", Order: []OrderLine{latte}, AskedRecommendation: true}},
				{Role: RoleUser, Content: "ok"},
			},
			expected: OrderState{Step: "2", Order: []OrderLine{latte}, AskedRecommendation: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LatestOrderState(tt.history)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("LatestOrderState() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestOrderStateRender(t *testing.T) {
	s := OrderState{
		Step:  "3",
		Order: []OrderLine{{Item: "Latte", Quantity: 1, Price: 4.75}},
	}
	want := "step number: 3\norder: [{\"item\": \"Latte\", \"quantity\": 1, \"price\": 4.75}]"
	if got := s.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	empty := DefaultOrderState()
	if got := empty.Render(); got != "step number: 1\norder: []" {
		t.Errorf("Render() = %q", got)
	}
}
