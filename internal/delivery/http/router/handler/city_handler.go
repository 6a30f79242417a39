package handler

import (
	"log/slog"
	"net/http"

	"brewscout/internal/delivery/http/response"
	"brewscout/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CityHandlerParams holds dependencies for CityHandler, injected by Fx.
type CityHandlerParams struct {
	fx.In

	CityUC usecase.CityUsecase
	Logger *slog.Logger
}

// CityHandler serves the serviced-city catalog.
type CityHandler struct {
	cityUC usecase.CityUsecase
	logger *slog.Logger
}

// NewCityHandler is the constructor for CityHandler.
func NewCityHandler(params CityHandlerParams) *CityHandler {
	return &CityHandler{
		cityUC: params.CityUC,
		logger: params.Logger,
	}
}

// CityResponse is the catalog view of a serviced city.
type CityResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Country      string  `json:"country"`
	MinLatitude  float64 `json:"min_latitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLongitude float64 `json:"max_longitude"`
}

// ListCities returns every serviced city with its bounding box.
func (h *CityHandler) ListCities(c echo.Context) error {
	cities, err := h.cityUC.ListCities(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list cities", slog.Any("error", err))

		return response.InternalServerError(c, "CITY_LIST_FAILED", "Failed to list cities")
	}

	out := make([]CityResponse, 0, len(cities))
	for _, city := range cities {
		out = append(out, CityResponse{
			ID:           city.ID,
			Name:         city.Name,
			Country:      city.Country.Name,
			MinLatitude:  city.MinLatitude,
			MaxLatitude:  city.MaxLatitude,
			MinLongitude: city.MinLongitude,
			MaxLongitude: city.MaxLongitude,
		})
	}

	return response.Success(c, http.StatusOK, out, "Cities retrieved successfully")
}
