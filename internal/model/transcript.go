// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// TRANSCRIPT
// =============================================================================

// ContextWindow is the number of trailing messages sent to the backend as
// rolling context with each chat request.
const ContextWindow = 6

// Transcript is the ordered in-memory sequence of chat messages for the
// active session. Insertion order is display order. Appends happen in the
// order operations complete, and messages are never removed individually;
// the transcript is only ever appended to or cleared as a whole.
//
// The Transcript is owned by the chat controller and is not safe for
// concurrent mutation.
type Transcript struct {
	messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{
		messages: make([]Message, 0, 32),
	}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.messages = t.messages[:0]
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns the messages in display order.
// The returned slice must not be mutated by the caller.
func (t *Transcript) Messages() []Message {
	return t.messages
}

// Last returns the most recent message and true, or a zero message and
// false when the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Context returns at most the last n messages, oldest first. The caller
// captures context before appending the message being sent, so the outgoing
// message is never duplicated into its own context.
func (t *Transcript) Context(n int) []Message {
	if n <= 0 || len(t.messages) == 0 {
		return nil
	}
	if len(t.messages) <= n {
		ctx := make([]Message, len(t.messages))
		copy(ctx, t.messages)
		return ctx
	}
	ctx := make([]Message, n)
	copy(ctx, t.messages[len(t.messages)-n:])
	return ctx
}
