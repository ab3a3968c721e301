package services_test

import (
	"testing"

	"canteen/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestAssistantReply(t *testing.T) {
	cases := []struct {
		name     string
		message  string
		contains string
	}{
		{"breakfast keyword", "What do you have for breakfast?", "Breakfast Combo"},
		{"morning keyword", "something for the morning please", "Breakfast Combo"},
		{"lunch keyword", "LUNCH ideas?", "Lunch Special"},
		{"snack keyword", "any snacks?", "Evening Snack Combo"},
		{"combo keyword", "tell me about combos", "4 great combos"},
		{"budget keyword", "cheapest options on a budget", "budget-friendly"},
		{"biriyani keyword", "is the biryani good?", "Biriyani"},
		{"fallback", "hello there", "What are you in the mood for?"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, services.AssistantReply(tc.message), tc.contains)
		})
	}
}

func TestAssistantReply_IsStateless(t *testing.T) {
	first := services.AssistantReply("lunch")
	second := services.AssistantReply("lunch")
	assert.Equal(t, first, second)
}
