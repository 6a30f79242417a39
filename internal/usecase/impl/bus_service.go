package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/service"
	"brewscout/internal/usecase"
)

const (
	welcomeMessage       = "Hi there, send me your location and I will try to find some coffee shops in your area."
	emptyLocationMessage = "Sorry, but you need to share your location, use the button below for that message"
	cityNotFoundMessage  = "Sorry, your city has not been added yet."

	parseModeHTML = "html"
)

type busService struct {
	telegram service.TelegramAPI
	logger   *slog.Logger
}

// NewBusService creates a new notifier instance
func NewBusService(telegram service.TelegramAPI, logger *slog.Logger) usecase.BusUsecase {
	return &busService{
		telegram: telegram,
		logger:   logger,
	}
}

// SendWelcome sends the greeting with a share-location keyboard.
func (s *busService) SendWelcome(ctx context.Context, chatID int64) error {
	return s.sendText(ctx, makeTextPayload(chatID, welcomeMessage, true))
}

// SendEmptyLocation asks the user to share a location.
func (s *busService) SendEmptyLocation(ctx context.Context, chatID int64) error {
	return s.sendText(ctx, makeTextPayload(chatID, emptyLocationMessage, false))
}

// SendCityNotFound tells the user their city is not serviced yet.
func (s *busService) SendCityNotFound(ctx context.Context, chatID int64) error {
	return s.sendText(ctx, makeTextPayload(chatID, cityNotFoundMessage, false))
}

// SendShopsNotFound tells the user their city has no shops.
func (s *busService) SendShopsNotFound(ctx context.Context, chatID int64, cityName string) error {
	message := fmt.Sprintf("Sorry but can't find any coffee shops from your city: %s", cityName)

	return s.sendText(ctx, makeTextPayload(chatID, message, false))
}

// SendNearestShop sends one venue message for a ranked shop. A shop without a
// computed distance never reaches the wire.
func (s *busService) SendNearestShop(ctx context.Context, chatID int64, shop *entity.CoffeeShop) error {
	if shop.Distance == nil {
		s.logger.Error("The coffee shop will not be sent because the distance has not been calculated",
			slog.Int64("chatId", chatID),
			slog.String("coffeeShopName", shop.Name),
		)

		return nil
	}

	return s.telegram.Call(ctx, service.MethodSendVenue, makeVenuePayload(chatID, shop))
}

func (s *busService) sendText(ctx context.Context, payload map[string]any) error {
	return s.telegram.Call(ctx, service.MethodSendMessage, payload)
}

func makeTextPayload(chatID int64, message string, requestLocation bool) map[string]any {
	payload := map[string]any{
		"chat_id":    chatID,
		"text":       message,
		"parse_mode": parseModeHTML,
	}

	if requestLocation {
		payload["reply_markup"] = mustJSON(map[string]any{
			"keyboard": [][]map[string]any{{
				{"text": "📍 Current location", "request_location": true},
			}},
		})
	}

	return payload
}

// FormatDistance renders a ranked distance for the venue address line:
// below one kilometer in whole meters, one kilometer and up with two
// decimals. The boundary is inclusive on the kilometers side.
func FormatDistance(km float64) string {
	if km < 1.0 {
		return fmt.Sprintf("~ %.0f m away", km*1000)
	}

	return fmt.Sprintf("~ %.2f km away", km)
}

func makeVenuePayload(chatID int64, shop *entity.CoffeeShop) map[string]any {
	return map[string]any{
		"chat_id":   chatID,
		"latitude":  shop.Latitude,
		"longitude": shop.Longitude,
		"title":     shop.Name,
		"address":   FormatDistance(*shop.Distance),
		"reply_markup": mustJSON(map[string]any{
			"inline_keyboard": [][]map[string]any{{
				{"text": "🌐 / 📷 Link", "url": shop.WebURL},
			}},
		}),
	}
}

// mustJSON serializes reply markup. The input is built from literals, so a
// marshal failure is a programming error.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return string(data)
}
