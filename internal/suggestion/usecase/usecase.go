package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/suggestion"
	"github.com/fekuna/omnipos-menu-service/internal/suggestion/dto"
	"go.uber.org/zap"
)

type suggestionUseCase struct {
	repo   suggestion.Repository
	logger logger.ZapLogger
}

func NewSuggestionUseCase(repo suggestion.Repository, log logger.ZapLogger) suggestion.UseCase {
	return &suggestionUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *suggestionUseCase) CreateSuggestion(ctx context.Context, input *dto.SuggestionRequest) (*model.Suggestion, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.Validation("suggestion title is required")
	}

	s := &model.Suggestion{
		Title:     title,
		Category:  model.DefaultSuggestionCategory,
		CreatedAt: time.Now().UTC(),
	}
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			s.Description = &d
		}
	}
	if input.Category != nil {
		if c := strings.TrimSpace(*input.Category); c != "" {
			s.Category = c
		}
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, apperror.Persistence("create suggestion", err)
	}
	uc.logger.Info("suggestion created", zap.Int64("suggestion_id", s.ID), zap.String("category", s.Category))
	return s, nil
}

func (uc *suggestionUseCase) ListSuggestions(ctx context.Context, filters *dto.SuggestionFilters) ([]model.Suggestion, error) {
	if filters != nil {
		switch filters.Sort {
		case "", dto.SortVotes, dto.SortRecent:
		default:
			return nil, apperror.Validationf("sort must be %q or %q", dto.SortVotes, dto.SortRecent)
		}
		filters.SearchQuery = strings.TrimSpace(filters.SearchQuery)
	}

	suggestions, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, apperror.Persistence("list suggestions", err)
	}
	return suggestions, nil
}

// Vote applies a single up or down vote. A down vote on a suggestion with no
// votes leaves the counter at zero.
func (uc *suggestionUseCase) Vote(ctx context.Context, id int64, delta int) (*model.Suggestion, error) {
	if delta != 1 && delta != -1 {
		return nil, apperror.Validation("delta must be 1 or -1")
	}

	s, err := uc.repo.Vote(ctx, id, delta)
	if err != nil {
		return nil, apperror.Persistence("vote suggestion", err)
	}
	if s == nil {
		return nil, apperror.NotFound("suggestion", id)
	}
	return s, nil
}

func (uc *suggestionUseCase) DeleteSuggestion(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return apperror.Persistence("delete suggestion", err)
	}
	if !deleted {
		return apperror.NotFound("suggestion", id)
	}
	return nil
}
