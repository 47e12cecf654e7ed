// Package repositories holds the storage interfaces and their
// in-memory implementations. There is deliberately no database behind
// them: saved cards live for the lifetime of the process.
package repositories

import (
	"sort"
	"sync"

	apperrors "campuswallet/internal/errors"
	"campuswallet/internal/models"
)

// SavedCardRepository stores tokenized cards per user. At most one
// card per user holds the default flag at any time.
type SavedCardRepository interface {
	Create(card *models.SavedCard) error
	Get(cardID string) (*models.SavedCard, error)
	ListByUser(userID string) ([]models.SavedCard, error)
	Delete(userID, cardID string) error
	SetDefault(userID, cardID string) error
}

// MemoryCardStore is the in-memory SavedCardRepository. All state
// transitions happen under one lock, so set-default is atomic:
// concurrent callers serialize and the last write wins.
type MemoryCardStore struct {
	mu    sync.RWMutex
	cards map[string]*models.SavedCard
}

func NewMemoryCardStore() *MemoryCardStore {
	return &MemoryCardStore{cards: make(map[string]*models.SavedCard)}
}

// Create stores a card. The first card saved for a user becomes the
// default.
func (s *MemoryCardStore) Create(card *models.SavedCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hasCards := false
	for _, existing := range s.cards {
		if existing.UserID == card.UserID {
			hasCards = true
			break
		}
	}
	if !hasCards {
		card.IsDefault = true
	}

	stored := *card
	s.cards[card.ID] = &stored
	return nil
}

func (s *MemoryCardStore) Get(cardID string) (*models.SavedCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[cardID]
	if !ok {
		return nil, apperrors.ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

// ListByUser returns the user's cards, oldest first.
func (s *MemoryCardStore) ListByUser(userID string) ([]models.SavedCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cards []models.SavedCard
	for _, card := range s.cards {
		if card.UserID == userID {
			cards = append(cards, *card)
		}
	}
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].CreatedAt.Before(cards[j].CreatedAt)
	})
	return cards, nil
}

func (s *MemoryCardStore) Delete(userID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok {
		return apperrors.ErrCardNotFound
	}
	if card.UserID != userID {
		return apperrors.ErrCardNotOwned
	}

	delete(s.cards, cardID)
	return nil
}

// SetDefault marks one card default and unmarks every other card of
// the same user in a single locked transition.
func (s *MemoryCardStore) SetDefault(userID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.cards[cardID]
	if !ok {
		return apperrors.ErrCardNotFound
	}
	if target.UserID != userID {
		return apperrors.ErrCardNotOwned
	}

	for _, card := range s.cards {
		if card.UserID == userID {
			card.IsDefault = card.ID == cardID
		}
	}
	return nil
}
