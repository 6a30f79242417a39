package impl

import (
	"context"
	"log/slog"
	"sync"

	"brewscout/config"
	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/service"
	"brewscout/internal/errors"
	"brewscout/internal/usecase"
)

type hookService struct {
	userUC    usecase.UserUsecase
	cityUC    usecase.CityUsecase
	shopUC    usecase.ShopUsecase
	geoUC     usecase.GeoUsecase
	busUC     usecase.BusUsecase
	shopCache service.ShopCache
	events    service.EventPublisher
	logger    *slog.Logger

	// responseQuantity caps venue messages per hook on both the cached and
	// the live ranking path
	responseQuantity int
}

// NewHookService creates a new hook orchestrator instance
func NewHookService(
	userUC usecase.UserUsecase,
	cityUC usecase.CityUsecase,
	shopUC usecase.ShopUsecase,
	geoUC usecase.GeoUsecase,
	busUC usecase.BusUsecase,
	shopCache service.ShopCache,
	events service.EventPublisher,
	logger *slog.Logger,
	cfg *config.Config,
) usecase.HookUsecase {
	return &hookService{
		userUC:           userUC,
		cityUC:           cityUC,
		shopUC:           shopUC,
		geoUC:            geoUC,
		busUC:            busUC,
		shopCache:        shopCache,
		events:           events,
		logger:           logger,
		responseQuantity: cfg.Cache.ResponseQuantity,
	}
}

// ProcessHook runs the pipeline: upsert sender, classify the message, resolve
// the city, fetch and rank shops, fan out venue messages. Each terminal
// branch produces at most one outbound call except the final fan-out.
func (s *hookService) ProcessHook(ctx context.Context, input *usecase.HookInput) error {
	// Identity first. A failed upsert is fatal: every downstream message is
	// scoped to this sender and replying without a stored identity would
	// corrupt the analytics trail.
	user, err := s.userUC.StoreSender(ctx, &input.Sender)
	if err != nil {
		return errors.Wrap(err, "failed to store sender")
	}

	chatID := input.Message.ChatID

	switch input.Message.Kind() {
	case entity.MessageKindCommand:
		s.logger.Info("Start message", slog.String("username", user.Username))
		s.publishEvent(ctx, user, chatID, service.OutcomeWelcomeSent, "", 0)

		return s.busUC.SendWelcome(ctx, chatID)

	case entity.MessageKindText:
		// Free text and unknown commands terminate without any reply.
		s.logger.Info("Received message without command", slog.String("text", input.Message.Text))
		s.publishEvent(ctx, user, chatID, service.OutcomeIgnoredText, "", 0)

		return nil

	case entity.MessageKindNone:
		s.publishEvent(ctx, user, chatID, service.OutcomeNoLocation, "", 0)

		return s.busUC.SendEmptyLocation(ctx, chatID)
	}

	location := *input.Message.Location

	city, err := s.cityUC.ResolveCity(ctx, location.Latitude, location.Longitude)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			s.logger.Info("City not found with given coordinates",
				slog.Float64("latitude", location.Latitude),
				slog.Float64("longitude", location.Longitude),
			)
			s.publishEvent(ctx, user, chatID, service.OutcomeCityNotFound, "", 0)

			return s.busUC.SendCityNotFound(ctx, chatID)
		}

		return errors.Wrap(err, "failed to resolve city")
	}

	shops, err := s.shopsForCity(ctx, city.Name)
	if err != nil {
		return err
	}
	if len(shops) == 0 {
		s.logger.Info("There are no coffee shops in city", slog.String("city", city.Name))
		s.publishEvent(ctx, user, chatID, service.OutcomeNoShops, city.Name, 0)

		return s.busUC.SendShopsNotFound(ctx, chatID, city.Name)
	}

	nearest, err := s.nearestShops(ctx, city.Name, location, shops)
	if err != nil {
		return err
	}
	if len(nearest) == 0 {
		// Silent termination, asymmetric with the no-shops branch on
		// purpose: the city has shops, just none within the search radius.
		s.logger.Info("No coffee shops within radius", slog.String("city", city.Name))
		s.publishEvent(ctx, user, chatID, service.OutcomeNoNearby, city.Name, 0)

		return nil
	}

	s.sendNearestShops(ctx, chatID, nearest)
	s.publishEvent(ctx, user, chatID, service.OutcomeVenuesSent, city.Name, len(nearest))
	s.logger.Info("Nearest coffee shops sent",
		slog.String("city", city.Name),
		slog.Int("count", len(nearest)),
	)

	return nil
}

// shopsForCity is the cache-aside read of the city shop list: cache first,
// then the catalog, populating the cache on the way back.
func (s *hookService) shopsForCity(ctx context.Context, cityName string) ([]*entity.CoffeeShop, error) {
	cached, err := s.shopCache.GetShops(ctx, cityName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read shop cache")
	}
	if len(cached) > 0 {
		s.logger.Info("Return coffee shops from cache", slog.String("city", cityName))

		return cached, nil
	}

	shops, err := s.shopUC.ShopsForCity(ctx, cityName)
	if err != nil {
		return nil, err
	}
	if len(shops) == 0 {
		return nil, nil
	}

	s.logger.Info("Return coffee shops from db", slog.String("city", cityName))
	if err := s.shopCache.SetShops(ctx, cityName, shops); err != nil {
		return nil, errors.Wrap(err, "failed to populate shop cache")
	}

	return shops, nil
}

// nearestShops is the cache-aside ranked read: geo-index proximity search
// first, live ranking as the fallback. An empty cache result and a miss look
// identical, so both fall through; the cost is one recompute.
func (s *hookService) nearestShops(
	ctx context.Context, cityName string, location entity.Location, shops []*entity.CoffeeShop,
) ([]*entity.CoffeeShop, error) {
	fromCache, err := s.shopCache.GetNearest(ctx, cityName, location.Latitude, location.Longitude)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search shop geo index")
	}
	if len(fromCache) > 0 {
		s.logger.Info("Returning nearby coffee shops from cache", slog.String("city", cityName))
		if len(fromCache) > s.responseQuantity {
			fromCache = fromCache[:s.responseQuantity]
		}

		return fromCache, nil
	}

	ranked := s.geoUC.NearestShops(location, shops, s.responseQuantity)
	if len(ranked) > 0 {
		s.logger.Info("Returning nearby coffee shops from live ranking", slog.String("city", cityName))
	}

	return ranked, nil
}

// sendNearestShops fans out one venue message per shop. Sends run
// concurrently and fail independently; errors are aggregated into a single
// log entry and never surface to the webhook caller.
func (s *hookService) sendNearestShops(ctx context.Context, chatID int64, shops []*entity.CoffeeShop) {
	var wg sync.WaitGroup
	sendErrs := make([]error, len(shops))

	for i, shop := range shops {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sendErrs[i] = s.busUC.SendNearestShop(ctx, chatID, shop)
		}()
	}
	wg.Wait()

	if err := errors.Join(sendErrs...); err != nil {
		s.logger.Error("Errors occurred while sending nearest coffee shops messages",
			slog.Int64("chatId", chatID),
			slog.Any("error", err),
		)
	}
}

// publishEvent reports the hook outcome for analytics. Best-effort: a
// publisher failure is logged and swallowed.
func (s *hookService) publishEvent(ctx context.Context, user *entity.User, chatID int64, outcome, cityName string, venues int) {
	event := &service.HookEvent{
		Username:   user.Username,
		ChatID:     chatID,
		Outcome:    outcome,
		CityName:   cityName,
		VenueCount: venues,
	}

	if err := s.events.PublishHookEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish hook event",
			slog.String("outcome", outcome),
			slog.Any("error", err),
		)
	}
}
