package chat_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocer/internal/chat"
	"grocer/internal/grocery"
	"grocer/internal/store"
)

func newTestBot(t *testing.T) (*chat.Bot, *grocery.Assistant) {
	t.Helper()
	st, err := store.NewJSONStore(t.TempDir(), nil)
	require.NoError(t, err)
	a, err := grocery.New(st, nil)
	require.NoError(t, err)
	return chat.NewBot(a), a
}

func TestBot_AddBeatsList(t *testing.T) {
	// "add" outranks "list" in dispatch priority, so this mutates.
	bot, a := newTestBot(t)

	resp := bot.Reply("add milk to my list")
	assert.True(t, resp.Refresh)
	assert.Contains(t, resp.Reply, "I've added")

	items := a.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "milk", items[0].Key())
}

func TestBot_AddAppliesDefaults(t *testing.T) {
	bot, a := newTestBot(t)

	resp := bot.Reply("Add 2 liters of Milk to dairy")
	assert.True(t, resp.Refresh)

	items := a.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].Quantity)
	assert.Equal(t, "liters", items[0].Unit)
	assert.Equal(t, "dairy", items[0].Category)
}

func TestBot_AddUnparseable(t *testing.T) {
	bot, a := newTestBot(t)

	resp := bot.Reply("add")
	assert.False(t, resp.Refresh)
	assert.Contains(t, resp.Reply, "couldn't figure out what to add")
	assert.Empty(t, a.Items(), "failed parse must not mutate the list")
}

func TestBot_Remove(t *testing.T) {
	bot, _ := newTestBot(t)
	bot.Reply("add Milk")

	resp := bot.Reply("remove milk")
	assert.True(t, resp.Refresh)
	assert.Contains(t, resp.Reply, "I've removed")

	resp = bot.Reply("remove milk")
	assert.False(t, resp.Refresh)
	assert.Contains(t, resp.Reply, "couldn't find")
}

func TestBot_ListRendering(t *testing.T) {
	bot, _ := newTestBot(t)

	resp := bot.Reply("show list")
	assert.False(t, resp.Refresh)
	assert.Equal(t, "Your grocery list is empty.", resp.Reply)

	bot.Reply("add 2 liters of milk to dairy")
	resp = bot.Reply("show list")
	assert.Contains(t, resp.Reply, "Here's your grocery list:")
	assert.Contains(t, resp.Reply, "- milk (liters, dairy)")
}

func TestBot_Purchase(t *testing.T) {
	bot, a := newTestBot(t)
	bot.Reply("add milk")

	resp := bot.Reply("I want to purchase everything")
	assert.True(t, resp.Refresh)
	assert.Contains(t, resp.Reply, "marked all items as purchased")
	assert.Empty(t, a.Items())
}

func TestBot_SuggestionsAndExpiring(t *testing.T) {
	bot, a := newTestBot(t)

	resp := bot.Reply("any suggestions?")
	assert.Equal(t, "I have no suggestions for you right now.", resp.Reply)

	resp = bot.Reply("what is expiring?")
	assert.Equal(t, "You have no items expiring soon.", resp.Reply)

	bot.Reply("add soda")
	resp = bot.Reply("any suggestions?")
	assert.Contains(t, resp.Reply, "Healthier alternatives:")
	assert.Contains(t, resp.Reply, "water")

	expiry := grocery.Today().AddDays(2)
	_, err := a.Add(grocery.Item{Name: "yogurt", ExpiryDate: &expiry})
	require.NoError(t, err)
	resp = bot.Reply("what is expiring?")
	assert.Contains(t, resp.Reply, "yogurt is expiring in 2 days")
}

func TestBot_GreetingAndFallback(t *testing.T) {
	bot, _ := newTestBot(t)

	resp := bot.Reply("hello there")
	assert.Equal(t, "Hello! How can I help you with your groceries today?", resp.Reply)
	assert.False(t, resp.Refresh)

	resp = bot.Reply("what's the weather?")
	assert.Equal(t, "Sorry, I don't understand.", resp.Reply)
}

func TestBot_DispatchPriorityTable(t *testing.T) {
	bot, _ := newTestBot(t)

	tests := []struct {
		message string
		hint    string
	}{
		{"add milk and show list", "I've added"},
		{"remove milk from the list", "couldn't find"}, // remove beats list
		{"list expiring items", "expiring"},            // expiring beats list
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			resp := bot.Reply(tt.message)
			if !strings.Contains(strings.ToLower(resp.Reply), strings.ToLower(tt.hint)) {
				t.Errorf("Reply(%q) = %q, want mention of %q", tt.message, resp.Reply, tt.hint)
			}
		})
	}
}
