package usecase

import (
	"context"

	"brewscout/internal/domain/entity"
)

// BusUsecase formats and sends outbound chat messages. Every send goes
// through the transport's retry policy.
type BusUsecase interface {
	// SendWelcome sends the greeting with a share-location keyboard.
	SendWelcome(ctx context.Context, chatID int64) error

	// SendEmptyLocation asks the user to share a location.
	SendEmptyLocation(ctx context.Context, chatID int64) error

	// SendCityNotFound tells the user their city is not serviced yet.
	SendCityNotFound(ctx context.Context, chatID int64) error

	// SendShopsNotFound tells the user their city has no shops.
	SendShopsNotFound(ctx context.Context, chatID int64, cityName string) error

	// SendNearestShop sends one venue message for a ranked shop. A shop
	// without a computed distance is logged and skipped, never sent.
	SendNearestShop(ctx context.Context, chatID int64, shop *entity.CoffeeShop) error
}
