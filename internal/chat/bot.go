package chat

import (
	"fmt"
	"strings"

	"grocer/internal/grocery"
)

// Response is a chat round-trip result. Refresh tells the caller the list
// view is stale and should be re-rendered.
type Response struct {
	Reply   string `json:"reply"`
	Refresh bool   `json:"refresh"`
}

// Bot routes free-text messages to assistant operations. It holds no
// conversational state of its own.
type Bot struct {
	assistant *grocery.Assistant
}

// NewBot builds a dispatcher over the given assistant.
func NewBot(assistant *grocery.Assistant) *Bot {
	return &Bot{assistant: assistant}
}

// Reply processes one message. Keywords are matched on substring presence in
// fixed priority order; the first hit wins, so "add milk to my list" is an
// add, not a list request.
func (b *Bot) Reply(message string) Response {
	message = strings.ToLower(message)

	switch {
	case strings.Contains(message, "add"):
		return b.handleAdd(message)
	case strings.Contains(message, "remove"):
		return b.handleRemove(message)
	case strings.Contains(message, "expiring"):
		return b.handleExpiring()
	case strings.Contains(message, "suggestions"):
		return b.handleSuggestions()
	case strings.Contains(message, "list"):
		return Response{Reply: b.renderList()}
	case strings.Contains(message, "clear list"):
		return b.handlePurchase("I've cleared your grocery list and updated your purchase history.")
	case strings.Contains(message, "purchase"):
		return b.handlePurchase("I've marked all items as purchased and updated your purchase history.")
	case strings.Contains(message, "hello"), strings.Contains(message, "hi"):
		return Response{Reply: "Hello! How can I help you with your groceries today?"}
	default:
		return Response{Reply: "Sorry, I don't understand."}
	}
}

func (b *Bot) handleAdd(message string) Response {
	req, ok := ParseAdd(message)
	if !ok {
		return Response{Reply: "I'm sorry, I couldn't figure out what to add. Please use the format: 'add [quantity] [unit] of [item name] to [category]'"}
	}

	item := grocery.Item{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Category: req.Category,
	}
	if _, err := b.assistant.Add(item); err != nil {
		return Response{Reply: fmt.Sprintf("I couldn't save that: %v", err)}
	}
	return Response{Reply: fmt.Sprintf("I've added %s to your list.", req.Name), Refresh: true}
}

func (b *Bot) handleRemove(message string) Response {
	name, ok := ParseRemove(message)
	if !ok {
		return Response{Reply: "I'm sorry, I couldn't figure out what to remove. Please use the format: 'remove [item name]'"}
	}

	removed, err := b.assistant.Remove(name)
	if err != nil {
		return Response{Reply: fmt.Sprintf("I couldn't save that: %v", err)}
	}
	if !removed {
		return Response{Reply: fmt.Sprintf("I couldn't find %s in your list.", name)}
	}
	return Response{Reply: fmt.Sprintf("I've removed %s from your list.", name), Refresh: true}
}

func (b *Bot) handleExpiring() Response {
	reminders := b.assistant.ExpiryReminders()
	if len(reminders) == 0 {
		return Response{Reply: "You have no items expiring soon."}
	}
	return Response{Reply: "Here are the items that are expiring soon:\n" + strings.Join(reminders, "\n")}
}

func (b *Bot) handleSuggestions() Response {
	var sections []string
	if missing := b.assistant.MissingItems(); len(missing) > 0 {
		sections = append(sections, "Missing items:\n"+strings.Join(missing, "\n"))
	}
	if healthier := b.assistant.HealthierAlternatives(); len(healthier) > 0 {
		sections = append(sections, "Healthier alternatives:\n"+strings.Join(healthier, "\n"))
	}
	if len(sections) == 0 {
		return Response{Reply: "I have no suggestions for you right now."}
	}
	return Response{Reply: strings.Join(sections, "\n\n")}
}

func (b *Bot) handlePurchase(reply string) Response {
	if _, err := b.assistant.MarkPurchased(); err != nil {
		return Response{Reply: fmt.Sprintf("I couldn't save that: %v", err)}
	}
	return Response{Reply: reply, Refresh: true}
}

func (b *Bot) renderList() string {
	items := b.assistant.Items()
	if len(items) == 0 {
		return "Your grocery list is empty."
	}

	var sb strings.Builder
	sb.WriteString("Here's your grocery list:\n")
	for _, item := range items {
		sb.WriteString("- " + item.Name + " (" + item.Unit)
		if item.Category != "" {
			sb.WriteString(", " + item.Category)
		}
		sb.WriteString(")\n")
	}
	return sb.String()
}
