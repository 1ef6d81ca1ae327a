// Package agent dispatches inbound messages to the first intent action that
// claims them. It is the only boundary the chat surfaces talk to.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/navid-fn/dexscout/internal/actions"
	"github.com/navid-fn/dexscout/internal/events"
)

// Message is one inbound user utterance.
type Message struct {
	ID   string
	Text string
}

// Recorder receives one event per dispatched message. *events.Emitter
// implements it; nil disables recording.
type Recorder interface {
	Record(ctx context.Context, q events.Query)
}

// Agent holds the ordered action list and runs the first match per message.
type Agent struct {
	actions  []actions.Action
	logger   *logrus.Logger
	recorder Recorder
}

func New(acts []actions.Action, logger *logrus.Logger, recorder Recorder) *Agent {
	if logger == nil {
		logger = logrus.New()
	}
	return &Agent{actions: acts, logger: logger, recorder: recorder}
}

// Actions exposes the registered actions for surface metadata endpoints.
func (a *Agent) Actions() []actions.Action { return a.actions }

// Dispatch matches msg against the actions in order and runs the first hit.
// The bool reports whether any action claimed the message; what an unclaimed
// message gets (usually the help text) is the surface's call.
func (a *Agent) Dispatch(ctx context.Context, msg Message) (actions.Reply, bool) {
	lowered := strings.ToLower(strings.TrimSpace(msg.Text))
	start := time.Now()

	for _, act := range a.actions {
		if !act.Match(lowered) {
			continue
		}

		a.logger.Debugf("dispatch: message %s matched action %s", msg.ID, act.Name)
		reply := a.run(ctx, act, msg)
		reply.Action = act.Name
		a.record(ctx, msg, act.Name, true, start, len(reply.Text))
		return reply, true
	}

	a.record(ctx, msg, "", false, start, 0)
	return actions.Reply{}, false
}

// run shields the dispatcher from a panicking handler. Nothing past this
// boundary takes the process down.
func (a *Agent) run(ctx context.Context, act actions.Action, msg Message) (reply actions.Reply) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorf("action %s panicked: %v", act.Name, r)
			reply = actions.Reply{Text: "Sorry, something went wrong handling that request. Please try again."}
		}
	}()
	return act.Handle(ctx, msg.Text)
}

func (a *Agent) record(ctx context.Context, msg Message, action string, matched bool, start time.Time, replyLen int) {
	if a.recorder == nil {
		return
	}
	a.recorder.Record(ctx, events.Query{
		MessageID:  msg.ID,
		Action:     action,
		Matched:    matched,
		DurationMS: time.Since(start).Milliseconds(),
		ReplyChars: replyLen,
	})
}

// HelpText lists what the agent can answer. Surfaces send it back for
// messages no action claims.
func (a *Agent) HelpText() string {
	var sb strings.Builder
	sb.WriteString("I can answer questions about DEX market data:\n\n")
	for _, act := range a.actions {
		sb.WriteString(fmt.Sprintf("- %s", act.Description))
		if len(act.Examples) > 0 {
			sb.WriteString(fmt.Sprintf(" (try: %q)", act.Examples[0]))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
