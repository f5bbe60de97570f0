package usecases

import (
	"context"

	"admisiones-bot/internal/entities"
	"admisiones-bot/internal/infrastructure"
	"admisiones-bot/internal/interfaces"

	"github.com/rs/zerolog"
)

// postbackGreeting answers the "Get Started" button.
const postbackGreeting = "¡Hola! ¿En qué puedo ayudarte?"

// RelayService runs the pipeline for one normalized event: dedup and
// rate checks, then completion, then the send back to Messenger. It
// holds no per-request state; everything it carries is immutable after
// startup.
type RelayService struct {
	ai        interfaces.AIClient
	messenger interfaces.Messenger
	seen      *infrastructure.SeenMessages
	limiter   *infrastructure.SenderLimiter
	fallback  string
	logger    zerolog.Logger
}

func NewRelayService(
	ai interfaces.AIClient,
	messenger interfaces.Messenger,
	seen *infrastructure.SeenMessages,
	limiter *infrastructure.SenderLimiter,
	fallback string,
	logger zerolog.Logger,
) *RelayService {
	return &RelayService{
		ai:        ai,
		messenger: messenger,
		seen:      seen,
		limiter:   limiter,
		fallback:  fallback,
		logger:    logger.With().Str("component", "relay").Logger(),
	}
}

// HandleEvent processes a single event. Failures downstream never
// propagate: the webhook ack already owed to the platform must not
// depend on completion or send outcomes.
func (s *RelayService) HandleEvent(ctx context.Context, ev entities.InboundEvent) {
	log := s.logger.With().Str("sender", ev.SenderID).Logger()

	switch ev.Kind {
	case entities.KindPostback:
		s.send(ctx, entities.OutboundReply{RecipientID: ev.SenderID, Text: postbackGreeting})

	case entities.KindMessage:
		if ev.IsEcho {
			log.Debug().Msg("skipping echo event")
			return
		}
		if ev.Text == "" {
			log.Debug().Msg("skipping non-text message")
			return
		}
		if !s.seen.FirstSeen(ev.MessageID) {
			log.Info().Str("mid", ev.MessageID).Msg("skipping redelivered message")
			return
		}
		if !s.limiter.Allow(ev.SenderID) {
			log.Warn().Msg("sender over rate limit, dropping message")
			return
		}
		s.send(ctx, entities.OutboundReply{RecipientID: ev.SenderID, Text: s.replyFor(ctx, ev.Text)})

	default:
		log.Debug().Msg("skipping unsupported event kind")
	}
}

// replyFor is where every completion failure turns into the configured
// fallback string. Callers always receive sendable text.
func (s *RelayService) replyFor(ctx context.Context, userText string) string {
	reply, err := s.ai.GenerateReply(ctx, userText)
	if err != nil {
		s.logger.Error().Err(err).Msg("completion failed, using fallback reply")
		return s.fallback
	}
	return reply
}

func (s *RelayService) send(ctx context.Context, reply entities.OutboundReply) {
	if err := s.messenger.SendMessage(ctx, reply.RecipientID, reply.Text); err != nil {
		// Non-fatal: the platform must still get its 200, otherwise it
		// redelivers and re-triggers the whole pipeline.
		s.logger.Error().Err(err).Str("recipient", reply.RecipientID).Msg("send failed")
	}
}
