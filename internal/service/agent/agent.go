package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/velahq/vela/internal/config"
	"github.com/velahq/vela/internal/core"
	"github.com/velahq/vela/pkg/log"
)

const personaInstructions = "You are Vela, a helpful AI assistant. Respond naturally and use available tools when needed."

// fallbackApology is the only thing a caller sees when the reply
// pipeline breaks; the real error goes to the log.
const fallbackApology = "I apologize, but I'm having trouble processing your request. " +
	"I'm still learning and improving. Could we try that again?"

type ChatStore interface {
	StoreChat(ctx context.Context, speaker, content string, turnCtx map[string]any) error
}

type ContextBuilder interface {
	Build(ctx context.Context, window int) string
}

type ToolDispatcher interface {
	Execute(ctx context.Context, name string, params map[string]any) core.ToolResult
	Names() []string
}

// Agent runs the per-message pipeline: persist, contextualize, prompt,
// generate, compose, persist, reply.
type Agent struct {
	cfg        *config.AppConfig
	ai         core.AIProvider
	store      ChatStore
	contexts   ContextBuilder
	dispatcher ToolDispatcher
	composer   *Composer
}

func NewAgent(
	cfg *config.AppConfig,
	ai core.AIProvider,
	store ChatStore,
	contexts ContextBuilder,
	dispatcher ToolDispatcher,
	composer *Composer,
) *Agent {
	return &Agent{
		cfg:        cfg,
		ai:         ai,
		store:      store,
		contexts:   contexts,
		dispatcher: dispatcher,
		composer:   composer,
	}
}

// ProcessMessage handles one inbound user message and always returns
// something speakable. Pipeline failures are logged in full and
// collapsed into the fixed apology; the user's turn, once persisted,
// stays persisted.
func (a *Agent) ProcessMessage(ctx context.Context, message string, msgCtx map[string]any) string {
	reply, err := a.respond(ctx, message, msgCtx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to process message")
		return fallbackApology
	}
	return reply
}

func (a *Agent) respond(ctx context.Context, message string, msgCtx map[string]any) (string, error) {
	if err := a.store.StoreChat(ctx, core.SpeakerUser, message, msgCtx); err != nil {
		return "", fmt.Errorf("failed to save user turn: %w", err)
	}

	transcript := a.contexts.Build(ctx, a.cfg.ContextWindowSize)
	prompt := a.buildPrompt(transcript, message)

	response, err := a.ai.Chat(ctx, []core.Message{{Role: core.RoleUser, Content: prompt}})
	if err != nil {
		return "", fmt.Errorf("ai chat error: %w", err)
	}

	final := a.composer.Compose(response.Content)

	if err := a.store.StoreChat(ctx, core.SpeakerAssistant, final, msgCtx); err != nil {
		return "", fmt.Errorf("failed to save assistant turn: %w", err)
	}

	return final, nil
}

// The tool list is informational only; choosing a tool from free text
// happens upstream, not here.
func (a *Agent) buildPrompt(transcript, message string) string {
	var sb strings.Builder

	sb.WriteString("Previous conversation:\n")
	sb.WriteString(transcript)
	sb.WriteString("\n\nUser: ")
	sb.WriteString(message)
	sb.WriteString("\n\nInstructions: ")
	sb.WriteString(personaInstructions)
	sb.WriteString("\nAvailable tools: ")
	sb.WriteString(strings.Join(a.dispatcher.Names(), ", "))
	sb.WriteString("\n\nResponse:")

	return sb.String()
}

// ExecuteTool invokes a capability directly. It bypasses conversation
// state entirely.
func (a *Agent) ExecuteTool(ctx context.Context, name string, params map[string]any) core.ToolResult {
	return a.dispatcher.Execute(ctx, name, params)
}
