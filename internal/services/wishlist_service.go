package services

import (
	"fmt"
	"log"

	"wantlist/internal/models"
	"wantlist/internal/repositories"
	"wantlist/pkg/rabbitmq"
)

// MailQueue is the slice of the message broker the wishlist workflow uses.
// Publishing hands the email off; delivery is never observed by the caller.
type MailQueue interface {
	PublishWishlistEmail(event rabbitmq.EmailEvent) error
}

// WishlistService handles business logic for wishlists and their
// email notifications.
type WishlistService struct {
	orderRepo  repositories.SalesOrderRepository
	userRepo   repositories.UserRepository
	recordRepo repositories.RecordRepository
	mailQueue  MailQueue
}

// NewWishlistService creates a new WishlistService. The mail queue may be
// nil, in which case email requests are logged and dropped.
func NewWishlistService(
	orderRepo repositories.SalesOrderRepository,
	userRepo repositories.UserRepository,
	recordRepo repositories.RecordRepository,
	mailQueue MailQueue,
) *WishlistService {
	return &WishlistService{
		orderRepo:  orderRepo,
		userRepo:   userRepo,
		recordRepo: recordRepo,
		mailQueue:  mailQueue,
	}
}

// AddToWishlist is a get-or-create keyed on (catalog number, user). The user
// must already be registered and the record must exist; otherwise nothing is
// written. Re-adding an existing line returns it unchanged with created=false
// so the caller can show the duplicate notice.
func (s *WishlistService) AddToWishlist(catalogNo int, userID string) (*models.SalesOrderLine, bool, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, false, ErrUserNotRegistered
	}
	if _, err := s.recordRepo.GetByCatalogNo(catalogNo); err != nil {
		return nil, false, ErrRecordNotFound
	}

	if existing, err := s.orderRepo.GetByCatalogAndUser(catalogNo, userID); err == nil && existing != nil {
		return existing, false, nil
	}

	line := &models.SalesOrderLine{
		CatalogNo: catalogNo,
		UserID:    userID,
	}
	if err := s.orderRepo.Create(line); err != nil {
		return nil, false, fmt.Errorf("failed to create wishlist line: %w", err)
	}
	return line, true, nil
}

// GetWishlist returns all wishlist lines owned by a user. An empty slice is
// the empty-wishlist state, not an error.
func (s *WishlistService) GetWishlist(userID string) ([]models.SalesOrderLine, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, ErrUserNotRegistered
	}
	return s.orderRepo.GetByUserID(userID)
}

// EmailWishlist assembles the user's wishlist into an email event and hands
// it to the mail queue. It returns once the event is queued; whether the mail
// is eventually delivered is not observable here.
func (s *WishlistService) EmailWishlist(userID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotRegistered
	}

	lines, err := s.orderRepo.GetByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to load wishlist for user %s: %w", userID, err)
	}

	items := make([]rabbitmq.EmailItem, 0, len(lines))
	for _, line := range lines {
		item := rabbitmq.EmailItem{CatalogNo: line.CatalogNo}
		if record, err := s.recordRepo.GetByCatalogNo(line.CatalogNo); err == nil {
			item.Artist = record.Artist
			item.Title = record.Title
		}
		items = append(items, item)
	}

	event := rabbitmq.EmailEvent{
		Recipient: user.Email,
		Username:  user.Username,
		Items:     items,
	}

	if s.mailQueue == nil {
		log.Println("Mail queue is not initialized. Skipping wishlist email.")
		return nil
	}
	if err := s.mailQueue.PublishWishlistEmail(event); err != nil {
		// Best-effort dispatch: the request must not fail with the mail path.
		log.Printf("Warning: Failed to queue wishlist email for %s: %v", user.Email, err)
	}
	return nil
}
