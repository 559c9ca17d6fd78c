package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
)

// SummarizeCommand asks the summarizer for a layered outline of ideas and,
// when TopicID names a topic, stores it as the topic summary.
type SummarizeCommand struct {
	TopicID string
	Ideas   []string `validate:"required,min=1,dive,required"`
}

func (c SummarizeCommand) Validate() error {
	if len(c.Ideas) == 0 {
		return apperrors.NewValidationError("no ideas to summarize")
	}
	return validate(c)
}

// SummaryResult is returned by SummarizeCommand. Topic is nil when no topic
// was given or it no longer exists.
type SummaryResult struct {
	Summary string              `json:"summary"`
	Topic   *entities.TopicView `json:"topic"`
}

// SummaryHandler handles SummarizeCommand.
type SummaryHandler struct {
	store      ports.EntityStore
	publisher  ports.EventPublisher
	summarizer ports.Summarizer
	logger     *zap.Logger
}

// NewSummaryHandler creates a new handler instance
func NewSummaryHandler(store ports.EntityStore, publisher ports.EventPublisher, summarizer ports.Summarizer, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		store:      store,
		publisher:  publisher,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Summarize generates the summary, then records and publishes it.
func (h *SummaryHandler) Summarize(ctx context.Context, cmd SummarizeCommand) (SummaryResult, error) {
	text, err := h.summarizer.Summarize(ctx, BuildSummaryPrompt(cmd.Ideas))
	switch {
	case errors.Is(err, ports.ErrNotConfigured):
		return SummaryResult{}, apperrors.NewInternalError("summarizer is not configured").WithCause(err)
	case apperrors.GetAppError(err) != nil:
		return SummaryResult{}, err
	case apperrors.IsTimeout(err):
		return SummaryResult{}, apperrors.NewTimeoutError("summarize").WithCause(err)
	case err != nil:
		return SummaryResult{}, apperrors.NewExternalError("summarizer", err)
	}

	result := SummaryResult{Summary: text}
	if cmd.TopicID == "" {
		return result, nil
	}

	topic, ok := h.store.UpdateTopic(ctx, cmd.TopicID, entities.TopicPatch{Summary: &text})
	if !ok {
		h.logger.Warn("Summary generated for unknown topic", zap.String("topicID", cmd.TopicID))
		return result, nil
	}
	result.Topic = &topic

	h.publisher.Publish(ctx, events.TopicChannel(topic.ID), events.New("", events.SummaryUpdated, topic))
	if topic.GroupID != "" {
		h.publisher.Publish(ctx, events.GroupChannel(topic.GroupID), events.New("", events.TopicUpdated, topic))
	}
	return result, nil
}

// BuildSummaryPrompt asks for a multi-level bullet outline followed by a
// keyword line.
func BuildSummaryPrompt(ideas []string) string {
	var list strings.Builder
	for i, idea := range ideas {
		fmt.Fprintf(&list, "%d. %s\n", i+1, idea)
	}

	return "You are a research assistant. Summarize the ideas below as a layered outline " +
		"(as many levels as useful, at least 3). Use bullets and indent each child level by 2 spaces. " +
		"Then list 6-10 key phrases of 2-4 words each.\n\n" +
		"Ideas:\n" + list.String() + "\n" +
		"Required format:\n" +
		"- <Main point 1>\n" +
		"  - <Sub point 1.1>\n" +
		"    - <Detail 1.1.1>\n" +
		"  - <Sub point 1.2>\n" +
		"- <Main point 2>\n" +
		"  - <Sub point 2.1>\n" +
		"    - <Detail 2.1.1>\n" +
		"Keywords: <phrase 1>; <phrase 2>; ..."
}
