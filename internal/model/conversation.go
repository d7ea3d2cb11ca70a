// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// HistoryWindow is the number of trailing messages sent to the AI
// provider as conversational context.
const HistoryWindow = 10

// WelcomeText is the greeting seeded into every new conversation.
const WelcomeText = "Hello, my friend. I'm Lumi. ☁️\n\nI'm here to listen, support you, and help you find a little brightness today. How are you feeling right now?"

// Conversation is an append-only log of messages. Insertion order is
// display order is chronological order. Messages are never edited or
// deleted. The conversation lives for the session only.
type Conversation struct {
	messages []*Message
}

// NewConversation creates a conversation seeded with the welcome message.
func NewConversation() *Conversation {
	return &Conversation{
		messages: []*Message{NewModelMessage(WelcomeText)},
	}
}

// NewEmptyConversation creates a conversation with no seed message.
func NewEmptyConversation() *Conversation {
	return &Conversation{}
}

// Append adds a message to the end of the conversation.
func (c *Conversation) Append(msg *Message) {
	c.messages = append(c.messages, msg)
}

// All returns the full ordered message list for rendering.
func (c *Conversation) All() []*Message {
	return c.messages
}

// Len returns the number of messages in the conversation.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Window returns the last n messages for provider context.
func (c *Conversation) Window(n int) []*Message {
	if n <= 0 || len(c.messages) == 0 {
		return nil
	}
	if len(c.messages) <= n {
		return c.messages
	}
	return c.messages[len(c.messages)-n:]
}

// LastUserText returns the text of the most recent user message, or the
// fallback if the user has not spoken yet.
func (c *Conversation) LastUserText(fallback string) string {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleUser {
			return c.messages[i].Text
		}
	}
	return fallback
}
