// Package journal turns a journal entry into a short supportive reply using a
// text-completion model. Every call is independent; nothing is stored.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindful_server/internal/dto/request"
	"mindful_server/internal/dto/respond"
	"mindful_server/internal/infrastructure/metrics"
	"mindful_server/internal/infrastructure/tracing"
	"mindful_server/internal/model"
	"mindful_server/pkg/errorx"

	"github.com/tmc/langchaingo/llms"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// FallbackReply is returned alongside any provider failure.
const FallbackReply = "I'm here to listen. Sometimes just writing down your thoughts can be healing. Take a deep breath - you're doing great. 💙"

const (
	msgInvalidText  = "Journal entry text is required and must be a non-empty string."
	msgServiceError = "AI service error"
	msgEmptyReply   = "AI service returned an empty response."
)

const promptTemplate = `You are a compassionate and empathetic AI journal assistant. Your primary goal is to provide supportive, reflective, and encouraging responses to the user's journal entries. Acknowledge their feelings based on their stated mood (%[1]s) and the content of their entry. Keep your responses concise (2-4 sentences) and focus on validating their experience, offering gentle encouragement, or prompting further self-reflection. Avoid giving direct advice, medical opinions, or making definitive statements about their mental state. Use a warm and understanding tone.

User's current mood: %[1]s
User's journal entry: "%[2]s"

Please provide your supportive response.`

var errNoModel = errors.New("completion model is not configured")

// Options bounds each completion call.
type Options struct {
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

type journalService struct {
	model llms.Model
	opts  Options
}

// NewJournalService accepts a nil model; every call then fails with the
// fallback reply.
func NewJournalService(model llms.Model, opts Options) *journalService {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &journalService{model: model, opts: opts}
}

// BuildPrompt embeds mood and text in the fixed instruction template.
func BuildPrompt(mood, text string) string {
	return fmt.Sprintf(promptTemplate, mood, text)
}

// Reply validates the entry and asks the model for a response. On provider
// failure the returned reply carries the error message and the fallback text,
// together with a CodeUpstream error.
func (j *journalService) Reply(ctx context.Context, req request.JournalRequest) (*respond.JournalReply, error) {
	text, ok := req.Text.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return &respond.JournalReply{Error: msgInvalidText}, errorx.New(errorx.CodeInvalidParam, msgInvalidText)
	}
	mood, ok := req.Mood.(string)
	if !ok || mood == "" {
		mood = model.DefaultMood
	}

	ctx, span := tracing.Tracer("journal").Start(ctx, "journal.completion")
	defer span.End()
	span.SetAttributes(attribute.String("journal.mood", mood), attribute.Int("journal.text_length", len(text)))

	ctx, cancel := context.WithTimeout(ctx, j.opts.Timeout)
	defer cancel()

	start := time.Now()
	reply, err := j.complete(ctx, BuildPrompt(mood, text))
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, msgServiceError)
		metrics.RecordJournalReply("error", elapsed)
		zap.L().Error("journal completion failed", zap.Error(err), zap.Duration("cost", elapsed))
		return &respond.JournalReply{Error: msgServiceError, Reply: FallbackReply},
			errorx.Wrap(err, errorx.CodeUpstream, msgServiceError)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		span.SetStatus(codes.Error, msgEmptyReply)
		metrics.RecordJournalReply("empty", elapsed)
		zap.L().Warn("journal completion returned empty reply", zap.String("mood", mood))
		return &respond.JournalReply{Error: msgEmptyReply, Reply: FallbackReply},
			errorx.New(errorx.CodeUpstream, msgEmptyReply)
	}

	metrics.RecordJournalReply("ok", elapsed)
	return &respond.JournalReply{Reply: reply}, nil
}

func (j *journalService) complete(ctx context.Context, prompt string) (string, error) {
	if j.model == nil {
		return "", errNoModel
	}
	opts := []llms.CallOption{llms.WithTemperature(j.opts.Temperature)}
	if j.opts.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(j.opts.MaxTokens))
	}
	return llms.GenerateFromSinglePrompt(ctx, j.model, prompt, opts...)
}
