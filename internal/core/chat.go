package core

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"stocklab.io/inventory-chat/internal/state"
)

// ConnectionErrorReply is the fallback bot message when the query endpoint
// is unreachable.
const ConnectionErrorReply = "Sorry, I encountered an error connecting to the server."

// ChatService owns the transcript and the pending flag for one chat session.
type ChatService struct {
	gateway      Gateway
	synchronizer *Synchronizer
	session      *state.State
	log          *zap.Logger
}

func NewChatService(gw Gateway, sync *Synchronizer, session *state.State, log *zap.Logger) *ChatService {
	return &ChatService{
		gateway:      gw,
		synchronizer: sync,
		session:      session,
		log:          log,
	}
}

// Send runs one query exchange: append the user message, submit the
// question, append the classified bot reply, then refresh the inventory
// because a query may have mutated it. Blank input and sends while a query
// is already in flight are rejected silently. The pending flag is cleared
// unconditionally before returning.
func (c *ChatService) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" || c.session.Pending() {
		return
	}

	c.session.AppendMessage(state.RoleUser, text)
	c.session.SetPending(true)
	defer c.session.SetPending(false)

	raw, err := c.gateway.SubmitQuery(ctx, text)
	if err != nil {
		c.log.Warn("query failed", zap.String("question", text), zap.Error(err))
		c.session.AppendMessage(state.RoleBot, ConnectionErrorReply)
		return
	}

	c.session.AppendMessage(state.RoleBot, Classify(raw))

	if err := c.synchronizer.Refresh(ctx); err != nil {
		c.log.Warn("refresh after query failed", zap.Error(err))
	}
}

// Clear resets the transcript to the seeded greeting. Pending is untouched.
func (c *ChatService) Clear() {
	c.session.ClearMessages()
}
