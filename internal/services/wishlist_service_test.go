package services_test

import (
	"fmt"
	"testing"

	"wantlist/internal/models"
	"wantlist/internal/services"
	"wantlist/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestWishlistService_AddToWishlist_Creates(t *testing.T) {
	mockOrders := new(MockSalesOrderRepository)
	mockUsers := new(MockUserRepository)
	mockRecords := new(MockRecordRepository)
	service := services.NewWishlistService(mockOrders, mockUsers, mockRecords, nil)

	mockUsers.On("GetByID", "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
	mockRecords.On("GetByCatalogNo", 42).Return(&models.Record{CatalogNo: 42}, nil).Once()
	mockOrders.On("GetByCatalogAndUser", 42, "user-1").
		Return(nil, fmt.Errorf("wishlist line for catalog number 42 and user user-1 not found")).Once()
	mockOrders.On("Create", mock.AnythingOfType("*models.SalesOrderLine")).Return(nil).Once()

	line, created, err := service.AddToWishlist(42, "user-1")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 42, line.CatalogNo)
	assert.Equal(t, "user-1", line.UserID)
	mockOrders.AssertExpectations(t)
}

func TestWishlistService_AddToWishlist_DuplicateIsNoOp(t *testing.T) {
	mockOrders := new(MockSalesOrderRepository)
	mockUsers := new(MockUserRepository)
	mockRecords := new(MockRecordRepository)
	service := services.NewWishlistService(mockOrders, mockUsers, mockRecords, nil)

	existing := &models.SalesOrderLine{ID: "line-1", CatalogNo: 42, UserID: "user-1"}

	mockUsers.On("GetByID", "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
	mockRecords.On("GetByCatalogNo", 42).Return(&models.Record{CatalogNo: 42}, nil).Once()
	mockOrders.On("GetByCatalogAndUser", 42, "user-1").Return(existing, nil).Once()

	line, created, err := service.AddToWishlist(42, "user-1")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, line)
	mockOrders.AssertNotCalled(t, "Create", mock.Anything)
}

func TestWishlistService_AddToWishlist_UnknownUser(t *testing.T) {
	mockOrders := new(MockSalesOrderRepository)
	mockUsers := new(MockUserRepository)
	mockRecords := new(MockRecordRepository)
	service := services.NewWishlistService(mockOrders, mockUsers, mockRecords, nil)

	mockUsers.On("GetByID", "ghost").Return(nil, fmt.Errorf("user with ID ghost not found")).Once()

	_, _, err := service.AddToWishlist(42, "ghost")
	assert.ErrorIs(t, err, services.ErrUserNotRegistered)
	// No dangling reference may be written for an unregistered user.
	mockOrders.AssertNotCalled(t, "Create", mock.Anything)
}

func TestWishlistService_AddToWishlist_UnknownRecord(t *testing.T) {
	mockOrders := new(MockSalesOrderRepository)
	mockUsers := new(MockUserRepository)
	mockRecords := new(MockRecordRepository)
	service := services.NewWishlistService(mockOrders, mockUsers, mockRecords, nil)

	mockUsers.On("GetByID", "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
	mockRecords.On("GetByCatalogNo", 99).Return(nil, fmt.Errorf("record with catalog number 99 not found")).Once()

	_, _, err := service.AddToWishlist(99, "user-1")
	assert.ErrorIs(t, err, services.ErrRecordNotFound)
	mockOrders.AssertNotCalled(t, "Create", mock.Anything)
}

func TestWishlistService_EmailWishlist_PublishesEvent(t *testing.T) {
	mockOrders := new(MockSalesOrderRepository)
	mockUsers := new(MockUserRepository)
	mockRecords := new(MockRecordRepository)
	mockQueue := new(MockMailQueue)
	service := services.NewWishlistService(mockOrders, mockUsers, mockRecords, mockQueue)

	user := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}
	lines := []models.SalesOrderLine{
		{ID: "line-1", CatalogNo: 42, UserID: "user-1"},
		{ID: "line-2", CatalogNo: 43, UserID: "user-1"},
	}

	mockUsers.On("GetByID", "user-1").Return(user, nil).Once()
	mockOrders.On("GetByUserID", "user-1").Return(lines, nil).Once()
	mockRecords.On("GetByCatalogNo", 42).Return(&models.Record{CatalogNo: 42, Artist: "The Kinks", Title: "Something Else"}, nil).Once()
	mockRecords.On("GetByCatalogNo", 43).Return(nil, fmt.Errorf("record with catalog number 43 not found")).Once()

	mockQueue.On("PublishWishlistEmail", mock.MatchedBy(func(event rabbitmq.EmailEvent) bool {
		return event.Recipient == "alice@example.com" &&
			len(event.Items) == 2 &&
			event.Items[0].CatalogNo == 42 &&
			event.Items[0].Artist == "The Kinks"
	})).Return(nil).Once()

	err := service.EmailWishlist("user-1")
	assert.NoError(t, err)
	mockQueue.AssertExpectations(t)
}

func TestWishlistService_EmailWishlist_PublishFailureNotSurfaced(t *testing.T) {
	mockOrders := new(MockSalesOrderRepository)
	mockUsers := new(MockUserRepository)
	mockRecords := new(MockRecordRepository)
	mockQueue := new(MockMailQueue)
	service := services.NewWishlistService(mockOrders, mockUsers, mockRecords, mockQueue)

	user := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}

	mockUsers.On("GetByID", "user-1").Return(user, nil).Once()
	mockOrders.On("GetByUserID", "user-1").Return([]models.SalesOrderLine{}, nil).Once()
	mockQueue.On("PublishWishlistEmail", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	// Dispatch is best-effort: a broker failure must not fail the request.
	err := service.EmailWishlist("user-1")
	assert.NoError(t, err)
	mockQueue.AssertExpectations(t)
}

func TestWishlistService_GetWishlist_EmptyState(t *testing.T) {
	mockOrders := new(MockSalesOrderRepository)
	mockUsers := new(MockUserRepository)
	mockRecords := new(MockRecordRepository)
	service := services.NewWishlistService(mockOrders, mockUsers, mockRecords, nil)

	mockUsers.On("GetByID", "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
	mockOrders.On("GetByUserID", "user-1").Return([]models.SalesOrderLine{}, nil).Once()

	lines, err := service.GetWishlist("user-1")
	assert.NoError(t, err)
	assert.Empty(t, lines)
}
