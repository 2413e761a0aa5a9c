package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

const assistantSystemPrompt = "You are a helpful travel assistant for the Travel Tracker application. " +
	"You help users find information about their travel locations, national parks, and location types. " +
	"Be conversational, helpful, and use the provided context data to answer questions accurately. " +
	"If the context data is empty or doesn't contain the information needed, politely let the user know."

// historyWindow limits how many prior turns are replayed to the provider.
const historyWindow = 10

// TurnRecorder persists conversation turns without blocking the request path.
// Implemented by the queue dispatcher.
type TurnRecorder interface {
	Record(turn ports.ChatTurn)
}

// AssistantService wraps the hosted chat API. It holds no conversation state:
// context data is assembled fresh on every call and history lives in the
// ConversationStore collaborator, keyed by user.
type AssistantService struct {
	locations ports.LocationRepository
	parks     ports.ParkRepository
	types     ports.LocationTypeRepository
	provider  ports.ChatProvider
	history   ports.ConversationStore
	recorder  TurnRecorder
	log       zerolog.Logger
}

func NewAssistantService(
	locations ports.LocationRepository,
	parks ports.ParkRepository,
	types ports.LocationTypeRepository,
	provider ports.ChatProvider,
	history ports.ConversationStore,
	recorder TurnRecorder,
	log zerolog.Logger,
) *AssistantService {
	return &AssistantService{
		locations: locations,
		parks:     parks,
		types:     types,
		provider:  provider,
		history:   history,
		recorder:  recorder,
		log:       log,
	}
}

// Ask sends one user message to the provider with fresh context data and the
// user's recent history, then records both turns.
func (s *AssistantService) Ask(ctx context.Context, userID, message string) (string, error) {
	system, err := s.buildSystemPrompt(ctx, userID)
	if err != nil {
		return "", err
	}

	history, err := s.history.Recent(ctx, userID, historyWindow)
	if err != nil {
		// History is an enhancement, not a requirement; answer without it.
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to load conversation history")
		history = nil
	}

	reply, err := s.provider.Reply(ctx, system, history, message)
	if err != nil {
		return "", fmt.Errorf("assistant reply: %w", err)
	}

	now := time.Now().UTC()
	s.recorder.Record(ports.ChatTurn{UserID: userID, Role: "user", Content: message, Timestamp: now})
	s.recorder.Record(ports.ChatTurn{UserID: userID, Role: "assistant", Content: reply, Timestamp: now})

	return reply, nil
}

// buildSystemPrompt appends the user's travel data to the base prompt so the
// provider can ground its answers.
func (s *AssistantService) buildSystemPrompt(ctx context.Context, userID string) (string, error) {
	var sb strings.Builder
	sb.WriteString(assistantSystemPrompt)
	sb.WriteString("\n\nContext data:\n")

	locations, err := s.locations.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("assistant context: %w", err)
	}
	sb.WriteString(fmt.Sprintf("The user has logged %d locations:\n", len(locations)))
	for _, loc := range locations {
		sb.WriteString(fmt.Sprintf("- %s (%s) in %s, %s, visited %s\n",
			loc.Name, loc.LocationType, loc.City, loc.State, loc.StartDate.Format("2006-01-02")))
	}

	types, err := s.types.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("assistant context: %w", err)
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}
	sb.WriteString("Valid location types: " + strings.Join(names, ", ") + "\n")

	parks, err := s.parks.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("assistant context: %w", err)
	}
	sb.WriteString(fmt.Sprintf("The national parks catalog holds %d parks.\n", len(parks)))

	return sb.String(), nil
}
