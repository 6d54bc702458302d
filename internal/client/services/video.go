package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vidgen/internal/client/client"
	"github.com/dmitrijs2005/vidgen/internal/client/models"
	"github.com/dmitrijs2005/vidgen/internal/client/notify"
	"github.com/dmitrijs2005/vidgen/internal/client/query"
	"github.com/dmitrijs2005/vidgen/internal/logging"
)

// VideoService covers generation and the video galleries.
type VideoService interface {
	Generate(ctx context.Context, prompt string) (models.GeneratedVideo, error)
	Enhance(ctx context.Context, prompt string) (string, error)
	Recent(ctx context.Context) ([]models.Video, error)
	Examples(ctx context.Context) ([]models.Video, error)
}

type promptInput struct {
	Prompt string `validate:"required"`
}

type videoService struct {
	cache  *query.Cache
	notify notify.Notifier
	log    logging.Logger

	recent   *query.Query[[]models.Video]
	examples *query.Query[[]models.Video]

	generate *query.Mutation[string, models.GeneratedVideo]
	enhance  *query.Mutation[string, string]
}

func NewVideoService(api client.VideoAPI, cache *query.Cache, n notify.Notifier, log logging.Logger) VideoService {
	if log == nil {
		log = logging.Discard()
	}
	s := &videoService{cache: cache, notify: n, log: log}

	s.recent = query.NewQuery(cache, KeyRecentVideos, api.RecentVideos)
	s.examples = query.NewQuery(cache, KeyExampleVideos, api.ExampleVideos)

	s.generate = query.NewMutation(api.GenerateVideo,
		query.OnSuccess(func(ctx context.Context, _ string, _ models.GeneratedVideo) {
			if err := s.cache.Invalidate(ctx, KeyRecentVideos); err != nil {
				s.log.Warn(ctx, "recent videos refetch failed", "error", err)
			}
			s.notify.Success(ctx, "Video generated successfully!")
		}),
		query.OnError[string, models.GeneratedVideo](func(ctx context.Context, _ string, err error) {
			s.notify.Error(ctx, client.Message(err, "Video generation failed"))
		}),
	)
	s.enhance = query.NewMutation(api.EnhancePrompt,
		query.OnSuccess(func(ctx context.Context, _ string, _ string) {
			s.notify.Success(ctx, "Prompt enhanced successfully!")
		}),
		query.OnError[string, string](func(ctx context.Context, _ string, err error) {
			s.notify.Error(ctx, client.Message(err, "Prompt enhancement failed"))
		}),
	)
	return s
}

// CheckPrompt trims prompt and rejects it when nothing is left.
func CheckPrompt(prompt string) (string, error) {
	in := promptInput{Prompt: strings.TrimSpace(prompt)}
	if err := validate.Struct(in); err != nil {
		return "", fmt.Errorf("%w: prompt must not be empty", client.ErrValidation)
	}
	return in.Prompt, nil
}

func (s *videoService) Generate(ctx context.Context, prompt string) (models.GeneratedVideo, error) {
	p, err := CheckPrompt(prompt)
	if err != nil {
		return models.GeneratedVideo{}, err
	}
	return s.generate.Mutate(ctx, p)
}

func (s *videoService) Enhance(ctx context.Context, prompt string) (string, error) {
	p, err := CheckPrompt(prompt)
	if err != nil {
		return "", err
	}
	return s.enhance.Mutate(ctx, p)
}

func (s *videoService) Recent(ctx context.Context) ([]models.Video, error) {
	return s.recent.Get(ctx)
}

func (s *videoService) Examples(ctx context.Context) ([]models.Video, error) {
	return s.examples.Get(ctx)
}
