package service

import (
	"context"
	"strings"

	"julie/internal/models"
	"julie/internal/stylist"
)

// ChatClient is the contract the stylist-service client satisfies.
type ChatClient interface {
	Chat(ctx context.Context, userID uint, message string, history []stylist.Message) (string, error)
}

// StylistService proxies chat turns between the authenticated user and
// the stylist assistant service.
type StylistService struct {
	client ChatClient
}

// NewStylistService returns a new StylistService.
func NewStylistService(client ChatClient) *StylistService {
	return &StylistService{client: client}
}

const maxChatHistory = 50

// Chat validates the turn and forwards it with bounded history.
func (s *StylistService) Chat(ctx context.Context, userID uint, message string, history []stylist.Message) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", models.NewValidationError("Message is required")
	}
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	reply, err := s.client.Chat(ctx, userID, message, history)
	if err != nil {
		return "", models.NewUpstreamError("stylist", err)
	}
	return reply, nil
}
