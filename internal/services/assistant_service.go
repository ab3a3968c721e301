package services

import "strings"

// assistantRule maps message keywords to a canned reply.
type assistantRule struct {
	keywords []string
	response string
}

// assistantFallback is returned when no keyword matches.
const assistantFallback = "We have a variety of items across Breakfast, Lunch, Snacks, Beverages, and Desserts. What are you in the mood for?"

// The rule table is ordered; the first matching rule wins.
var assistantRules = []assistantRule{
	{
		keywords: []string{"breakfast", "morning"},
		response: "For breakfast, I recommend our Breakfast Combo (Idli + Vada + Coffee) for ₹50. We also have Dosa, Pongal, and Upma available!",
	},
	{
		keywords: []string{"lunch"},
		response: "Try our Lunch Special (Meals + Buttermilk) for ₹70. We also have Biriyani for ₹80 and Fried Rice for ₹70!",
	},
	{
		keywords: []string{"snack"},
		response: "Our Evening Snack Combo (Samosa + Tea) is perfect for ₹20. We also have Bajji, Bonda, and Cutlets!",
	},
	{
		keywords: []string{"combo", "offer"},
		response: "We have 4 great combos: Breakfast Combo (₹50), Lunch Special (₹70), Evening Snack (₹20), and Student Special Biriyani (₹90)!",
	},
	{
		keywords: []string{"cheap", "budget"},
		response: "Our budget-friendly items: Tea (₹10), Vadai (₹10), Vada (₹15), Samosa (₹15), and Buttermilk (₹15)!",
	},
	{
		keywords: []string{"biriyani", "biryani"},
		response: "Our vegetable Biriyani is ₹80 and takes 30 minutes to prepare. Or try the Student Special combo with Biriyani + Cool Drink for ₹90!",
	},
}

// AssistantReply answers a menu question from the static rule table. It is
// a pure function: no state is kept between messages.
func AssistantReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range assistantRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.response
			}
		}
	}
	return assistantFallback
}
