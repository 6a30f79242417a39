package handler

import (
	"log/slog"
	"net/http"

	"brewscout/internal/delivery/http/response"
	"brewscout/internal/domain/entity"
	"brewscout/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ShopHandlerParams holds dependencies for ShopHandler, injected by Fx.
type ShopHandlerParams struct {
	fx.In

	ShopUC usecase.ShopUsecase
	Logger *slog.Logger
}

// ShopHandler serves the coffee-shop catalog.
type ShopHandler struct {
	shopUC usecase.ShopUsecase
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler.
func NewShopHandler(params ShopHandlerParams) *ShopHandler {
	return &ShopHandler{
		shopUC: params.ShopUC,
		logger: params.Logger,
	}
}

// ShopResponse is the catalog view of a coffee shop.
type ShopResponse struct {
	ID        int64   `json:"id"`
	CityID    int64   `json:"city_id"`
	Name      string  `json:"name"`
	WebURL    string  `json:"web_url"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ListShops returns every coffee shop in the catalog, optionally filtered to
// one city with ?city=<name>.
func (h *ShopHandler) ListShops(c echo.Context) error {
	var (
		shops []*entity.CoffeeShop
		err   error
	)

	if cityName := c.QueryParam("city"); cityName != "" {
		shops, err = h.shopUC.ShopsForCity(c.Request().Context(), cityName)
	} else {
		shops, err = h.shopUC.ListShops(c.Request().Context())
	}
	if err != nil {
		h.logger.Error("Failed to list shops", slog.Any("error", err))

		return response.InternalServerError(c, "SHOP_LIST_FAILED", "Failed to list shops")
	}

	out := make([]ShopResponse, 0, len(shops))
	for _, shop := range shops {
		out = append(out, ShopResponse{
			ID:        shop.ID,
			CityID:    shop.CityID,
			Name:      shop.Name,
			WebURL:    shop.WebURL,
			Latitude:  shop.Latitude,
			Longitude: shop.Longitude,
		})
	}

	return response.Success(c, http.StatusOK, out, "Shops retrieved successfully")
}
