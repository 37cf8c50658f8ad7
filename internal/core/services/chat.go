package services

import (
	"context"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driving"
	"github.com/lectern-ai/lectern/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService runs the gated ask flow. Per request: the task registry
// acquire happens-before the rate-limit check happens-before generation
// happens-before release. Capacity rejections are normal outcomes, not
// errors.
type ChatService struct {
	responder driving.Responder
	registry  *TaskRegistry
	limiter   *RateLimiter
}

// NewChatService wires the responder behind the concurrency gate.
func NewChatService(responder driving.Responder, registry *TaskRegistry, limiter *RateLimiter) *ChatService {
	return &ChatService{
		responder: responder,
		registry:  registry,
		limiter:   limiter,
	}
}

// Ask answers a request if the gate and rate limit admit it.
func (s *ChatService) Ask(ctx context.Context, req driving.AskRequest) domain.AskOutcome {
	ok, holder := s.registry.TryAcquire(req.UserID, req.Username, string(req.Command), req.ChannelID)
	if !ok {
		logger.Info("chat: %s rejected, busy with %s", req.Username, holder.Username)
		return domain.AskOutcome{
			Status:   domain.AskBusy,
			BusyWith: holder.Username,
		}
	}
	defer s.registry.Release(req.UserID)

	if !s.limiter.Allow(req.UserID) {
		retry := s.limiter.RemainingSeconds(req.UserID)
		logger.Info("chat: %s rate limited, retry in %ds", req.Username, retry)
		return domain.AskOutcome{
			Status:            domain.AskRateLimited,
			RetryAfterSeconds: retry,
		}
	}

	answer := s.responder.Answer(ctx, req.Query, req.Command)
	return domain.AskOutcome{
		Status: domain.AskAnswered,
		Answer: answer,
	}
}
