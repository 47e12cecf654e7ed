// Package card manages tokenized cards on file: tokenize, list,
// delete and the single-default invariant.
package card

import (
	"context"
	"fmt"
	"time"

	apperrors "campuswallet/internal/errors"
	"campuswallet/internal/gateway"
	"campuswallet/internal/models"
	"campuswallet/internal/repositories"
	"campuswallet/internal/validation"

	"github.com/google/uuid"
)

// Service is the saved-card API used by the handlers and by the
// payment service's save-on-charge path.
type Service interface {
	Tokenize(ctx context.Context, card models.CardDetails, userID string) (*models.TokenizeCardResponse, error)
	List(ctx context.Context, userID string) ([]models.SavedCard, error)
	Delete(ctx context.Context, userID, cardID string) error
	SetDefault(ctx context.Context, userID, cardID string) error
}

type service struct {
	gateway gateway.Client
	repo    repositories.SavedCardRepository
	now     func() time.Time
}

func NewService(gw gateway.Client, repo repositories.SavedCardRepository) Service {
	return &service{
		gateway: gw,
		repo:    repo,
		now:     time.Now,
	}
}

// Tokenize validates the card, exchanges it for a gateway token and
// stores the result. Only the token and last four digits are kept.
func (s *service) Tokenize(ctx context.Context, card models.CardDetails, userID string) (*models.TokenizeCardResponse, error) {
	if ok, errs := validation.ValidateCardDetails(card, s.now()); !ok {
		return nil, &apperrors.DomainError{
			Code:    apperrors.CodeInvalidCardDetails,
			Message: "Card validation failed",
			Errors:  errs,
		}
	}

	token, err := s.gateway.Tokenize(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("card tokenization failed: %w", err)
	}

	saved := &models.SavedCard{
		ID:             uuid.NewString(),
		UserID:         userID,
		Token:          token.Token,
		Last4:          token.Last4,
		Brand:          token.Brand,
		ExpiryMonth:    card.ExpiryMonth,
		ExpiryYear:     card.ExpiryYear,
		CardholderName: card.CardholderName,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Create(saved); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	return &models.TokenizeCardResponse{
		Success: true,
		Token:   saved.Token,
		Card:    saved,
		Message: "Card saved successfully",
	}, nil
}

func (s *service) List(_ context.Context, userID string) ([]models.SavedCard, error) {
	cards, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []models.SavedCard{}
	}
	return cards, nil
}

func (s *service) Delete(_ context.Context, userID, cardID string) error {
	return s.repo.Delete(userID, cardID)
}

// SetDefault promotes one card; the repository unmarks every other
// card of the user in the same transition.
func (s *service) SetDefault(_ context.Context, userID, cardID string) error {
	return s.repo.SetDefault(userID, cardID)
}
