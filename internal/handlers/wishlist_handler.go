package handlers

import (
	"errors"
	"fmt"
	"log"

	"wantlist/internal/models"
	"wantlist/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the caller's wishlist.
type WishlistHandler struct {
	wishlistService *services.WishlistService
	validate        *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes. All of them need a session;
// the user is taken from the JWT claims, never from the request body.
func (h *WishlistHandler) RegisterRoutes(protected fiber.Router) {
	wishlistRoutes := protected.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/", h.HandleAddToWishlist)
	wishlistRoutes.Post("/email", h.HandleEmailWishlist)
}

func callerUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("no user in session")
	}
	return userID, nil
}

// HandleGetWishlist lists the caller's wishlist lines. An empty wishlist is
// a normal response, not an error.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	userID, err := callerUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No user in session",
		})
	}

	lines, err := h.wishlistService.GetWishlist(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotRegistered) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not registered",
			})
		}
		log.Printf("Error getting wishlist for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"user_id":  userID,
		"wishlist": lines,
	})
}

// HandleAddToWishlist performs the get-or-create on (catalog number, user).
// Re-adding a record yields the duplicate notice and no new row.
func (h *WishlistHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	userID, err := callerUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No user in session",
		})
	}

	var req models.WishlistAddRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing wishlist request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	line, created, err := h.wishlistService.AddToWishlist(req.CatalogNo, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotRegistered) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "User not registered",
			})
		}
		if errors.Is(err, services.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Record with catalog number %d not found", req.CatalogNo),
			})
		}
		log.Printf("Error adding catalog number %d to wishlist for user %s: %v", req.CatalogNo, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add record to wishlist",
			"error":   err.Error(),
		})
	}

	if !created {
		return c.JSON(fiber.Map{
			"notice": "You've already added that record to your wishlist!",
			"line":   line,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"notice": "Record added to your wishlist",
		"line":   line,
	})
}

// HandleEmailWishlist queues the caller's wishlist email. The response does
// not wait for, or report on, delivery.
func (h *WishlistHandler) HandleEmailWishlist(c *fiber.Ctx) error {
	userID, err := callerUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No user in session",
		})
	}

	if err := h.wishlistService.EmailWishlist(userID); err != nil {
		if errors.Is(err, services.ErrUserNotRegistered) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not registered",
			})
		}
		log.Printf("Error queuing wishlist email for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not queue wishlist email",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Your wishlist is on its way to your inbox",
	})
}
