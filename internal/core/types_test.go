package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOrderLineUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected OrderLine
	}{
		{
			name:     "numeric fields",
			input:    `{"item":"Latte","quantity":2,"price":9.5}`,
			expected: OrderLine{Item: "Latte", Quantity: 2, Price: 9.5},
		},
		{
			name:     "quoted numbers",
			input:    `{"item":"Espresso shot","quantity":"1","price":"2.00"}`,
			expected: OrderLine{Item: "Espresso shot", Quantity: 1, Price: 2},
		},
		{
			name:     "missing numeric fields",
			input:    `{"item":"Croissant"}`,
			expected: OrderLine{Item: "Croissant"},
		},
		{
			name:     "fractional quantity truncates",
			input:    `{"item":"Latte","quantity":1.0,"price":4.75}`,
			expected: OrderLine{Item: "Latte", Quantity: 1, Price: 4.75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got OrderLine
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	msg := Message{
		Role:    RoleAssistant,
		Content: "anything else?",
		Memory: &Memory{
			Agent:               AgentOrderTaking,
			StepNumber:          "4",
			Order:               []OrderLine{{Item: "Latte", Quantity: 1, Price: 4.75}},
			AskedRecommendation: true,
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Message
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, msg) {
		t.Errorf("round trip: got %+v, want %+v", got, msg)
	}
}
