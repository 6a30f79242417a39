package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"brewscout/config"
	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/service"
	"brewscout/internal/errors"
	"brewscout/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserUC struct {
	err error
}

func (s *stubUserUC) StoreSender(_ context.Context, sender *usecase.SenderInput) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &entity.User{TUID: sender.TUID, Username: sender.Username}, nil
}

type stubCityUC struct {
	city *entity.City
	err  error
}

func (s *stubCityUC) ListCities(context.Context) ([]*entity.City, error) {
	panic("not used in hook tests")
}

func (s *stubCityUC) ResolveCity(context.Context, float64, float64) (*entity.City, error) {
	return s.city, s.err
}

type stubShopUC struct {
	shops  []*entity.CoffeeShop
	called bool
}

func (s *stubShopUC) ListShops(context.Context) ([]*entity.CoffeeShop, error) {
	panic("not used in hook tests")
}

func (s *stubShopUC) ShopsForCity(context.Context, string) ([]*entity.CoffeeShop, error) {
	s.called = true

	return s.shops, nil
}

type stubGeoUC struct {
	ranked  []*entity.CoffeeShop
	gotTopN int
}

func (s *stubGeoUC) NearestShops(_ entity.Location, _ []*entity.CoffeeShop, topN int) []*entity.CoffeeShop {
	s.gotTopN = topN

	return s.ranked
}

// busSpy records every outbound message; venue sends arrive concurrently.
type busSpy struct {
	mu            sync.Mutex
	welcomeCount  int
	emptyLocCount int
	cityNotFound  int
	shopsNotFound []string
	venues        []*entity.CoffeeShop
	venueErr      error
}

func (b *busSpy) SendWelcome(context.Context, int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.welcomeCount++

	return nil
}

func (b *busSpy) SendEmptyLocation(context.Context, int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emptyLocCount++

	return nil
}

func (b *busSpy) SendCityNotFound(context.Context, int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cityNotFound++

	return nil
}

func (b *busSpy) SendShopsNotFound(_ context.Context, _ int64, cityName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shopsNotFound = append(b.shopsNotFound, cityName)

	return nil
}

func (b *busSpy) SendNearestShop(_ context.Context, _ int64, shop *entity.CoffeeShop) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.venues = append(b.venues, shop)

	return b.venueErr
}

func (b *busSpy) sentVenues() []*entity.CoffeeShop {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]*entity.CoffeeShop(nil), b.venues...)
}

type memoryShopCache struct {
	shops    []*entity.CoffeeShop
	nearest  []*entity.CoffeeShop
	setCity  string
	setShops []*entity.CoffeeShop
}

func (m *memoryShopCache) GetShops(context.Context, string) ([]*entity.CoffeeShop, error) {
	return m.shops, nil
}

func (m *memoryShopCache) SetShops(_ context.Context, cityName string, shops []*entity.CoffeeShop) error {
	m.setCity = cityName
	m.setShops = shops

	return nil
}

func (m *memoryShopCache) GetNearest(context.Context, string, float64, float64) ([]*entity.CoffeeShop, error) {
	return m.nearest, nil
}

type eventSpy struct {
	mu     sync.Mutex
	events []*service.HookEvent
}

func (e *eventSpy) PublishHookEvent(_ context.Context, event *service.HookEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)

	return nil
}

func (e *eventSpy) Close() error { return nil }

func (e *eventSpy) lastOutcome() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.events) == 0 {
		return ""
	}

	return e.events[len(e.events)-1].Outcome
}

type hookFixture struct {
	userUC *stubUserUC
	cityUC *stubCityUC
	shopUC *stubShopUC
	geoUC  *stubGeoUC
	bus    *busSpy
	cache  *memoryShopCache
	events *eventSpy
	hook   usecase.HookUsecase
}

func newHookFixture() *hookFixture {
	f := &hookFixture{
		userUC: &stubUserUC{},
		cityUC: &stubCityUC{},
		shopUC: &stubShopUC{},
		geoUC:  &stubGeoUC{},
		bus:    &busSpy{},
		cache:  &memoryShopCache{},
		events: &eventSpy{},
	}

	cfg := &config.Config{Cache: &config.CacheConfig{ResponseQuantity: 2}}
	f.hook = NewHookService(
		f.userUC, f.cityUC, f.shopUC, f.geoUC, f.bus,
		f.cache, f.events,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg,
	)

	return f
}

func hookInput(msg entity.InboundMessage) *usecase.HookInput {
	return &usecase.HookInput{
		UpdateID: 42,
		Sender:   usecase.SenderInput{TUID: 1001, Username: "ada"},
		Message:  msg,
	}
}

func TestProcessHookStartCommandSendsWelcome(t *testing.T) {
	f := newHookFixture()

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{ChatID: 7, Text: "/start"}))

	require.NoError(t, err)
	assert.Equal(t, 1, f.bus.welcomeCount)
	assert.Empty(t, f.bus.sentVenues())
	assert.Equal(t, service.OutcomeWelcomeSent, f.events.lastOutcome())
}

func TestProcessHookFreeTextIsSilent(t *testing.T) {
	f := newHookFixture()

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{ChatID: 7, Text: "hello there"}))

	require.NoError(t, err)
	assert.Equal(t, 0, f.bus.welcomeCount)
	assert.Equal(t, 0, f.bus.emptyLocCount)
	assert.Empty(t, f.bus.sentVenues())
	assert.Equal(t, service.OutcomeIgnoredText, f.events.lastOutcome())
}

func TestProcessHookUnknownCommandIsSilent(t *testing.T) {
	f := newHookFixture()

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{ChatID: 7, Text: "/help"}))

	require.NoError(t, err)
	assert.Equal(t, 0, f.bus.welcomeCount)
	assert.Equal(t, service.OutcomeIgnoredText, f.events.lastOutcome())
}

func TestProcessHookEmptyMessageAsksForLocation(t *testing.T) {
	f := newHookFixture()

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{ChatID: 7}))

	require.NoError(t, err)
	assert.Equal(t, 1, f.bus.emptyLocCount)
	assert.Equal(t, service.OutcomeNoLocation, f.events.lastOutcome())
}

func TestProcessHookCityNotFound(t *testing.T) {
	f := newHookFixture()
	f.cityUC.err = ErrCityNotFound

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{
		ChatID:   7,
		Location: &entity.Location{Latitude: 48.85, Longitude: 2.35},
	}))

	require.NoError(t, err)
	assert.Equal(t, 1, f.bus.cityNotFound)
	assert.False(t, f.shopUC.called, "shop lookup must not run for an unresolved city")
	assert.Equal(t, service.OutcomeCityNotFound, f.events.lastOutcome())
}

func TestProcessHookCityWithoutShops(t *testing.T) {
	f := newHookFixture()
	f.cityUC.city = &entity.City{ID: 1, Name: "Helsinki"}

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{
		ChatID:   7,
		Location: &entity.Location{Latitude: 60.17, Longitude: 24.94},
	}))

	require.NoError(t, err)
	require.Len(t, f.bus.shopsNotFound, 1)
	assert.Equal(t, "Helsinki", f.bus.shopsNotFound[0])
	assert.Equal(t, service.OutcomeNoShops, f.events.lastOutcome())
}

func TestProcessHookLiveRankingSendsVenues(t *testing.T) {
	f := newHookFixture()
	f.cityUC.city = &entity.City{ID: 1, Name: "Saint Petersburg"}

	shops := []*entity.CoffeeShop{
		{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"},
	}
	f.shopUC.shops = shops
	f.geoUC.ranked = []*entity.CoffeeShop{
		shops[0].WithDistance(0.2),
		shops[1].WithDistance(0.4),
	}

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{
		ChatID:   7,
		Location: &entity.Location{Latitude: 59.93, Longitude: 30.36},
	}))

	require.NoError(t, err)
	assert.Equal(t, 2, f.geoUC.gotTopN)
	assert.Len(t, f.bus.sentVenues(), 2)
	assert.Equal(t, service.OutcomeVenuesSent, f.events.lastOutcome())

	// Catalog miss populated the cache for the next hook.
	assert.Equal(t, "Saint Petersburg", f.cache.setCity)
	assert.Len(t, f.cache.setShops, 3)
}

func TestProcessHookCachedShopsSkipCatalog(t *testing.T) {
	f := newHookFixture()
	f.cityUC.city = &entity.City{ID: 1, Name: "Saint Petersburg"}

	cached := []*entity.CoffeeShop{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	f.cache.shops = cached
	f.geoUC.ranked = []*entity.CoffeeShop{cached[0].WithDistance(0.2)}

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{
		ChatID:   7,
		Location: &entity.Location{Latitude: 59.93, Longitude: 30.36},
	}))

	require.NoError(t, err)
	assert.False(t, f.shopUC.called)
	assert.Len(t, f.bus.sentVenues(), 1)
}

func TestProcessHookGeoIndexHitIsTrimmed(t *testing.T) {
	f := newHookFixture()
	f.cityUC.city = &entity.City{ID: 1, Name: "Saint Petersburg"}
	f.cache.shops = []*entity.CoffeeShop{{ID: 1}, {ID: 2}, {ID: 3}}
	f.cache.nearest = []*entity.CoffeeShop{
		(&entity.CoffeeShop{ID: 1, Name: "a"}).WithDistance(0.1),
		(&entity.CoffeeShop{ID: 2, Name: "b"}).WithDistance(0.2),
		(&entity.CoffeeShop{ID: 3, Name: "c"}).WithDistance(0.3),
	}

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{
		ChatID:   7,
		Location: &entity.Location{Latitude: 59.93, Longitude: 30.36},
	}))

	require.NoError(t, err)
	venues := f.bus.sentVenues()
	require.Len(t, venues, 2)
	assert.Equal(t, 0, f.geoUC.gotTopN, "live ranking must not run on a geo index hit")
}

func TestProcessHookNoNearbyShopsIsSilent(t *testing.T) {
	f := newHookFixture()
	f.cityUC.city = &entity.City{ID: 1, Name: "Saint Petersburg"}
	f.cache.shops = []*entity.CoffeeShop{{ID: 1, Name: "a"}}
	// Geo index and live ranking both come back empty: shops exist in the
	// city, none within the search radius.
	f.geoUC.ranked = nil

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{
		ChatID:   7,
		Location: &entity.Location{Latitude: 59.93, Longitude: 30.36},
	}))

	require.NoError(t, err)
	assert.Empty(t, f.bus.sentVenues())
	require.Len(t, f.bus.shopsNotFound, 0)
	assert.Equal(t, service.OutcomeNoNearby, f.events.lastOutcome())
}

func TestProcessHookSenderUpsertFailureIsFatal(t *testing.T) {
	f := newHookFixture()
	f.userUC.err = errors.New("connection refused")

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{ChatID: 7, Text: "/start"}))

	require.Error(t, err)
	assert.Equal(t, 0, f.bus.welcomeCount)
	assert.Empty(t, f.events.events)
}

func TestProcessHookVenueSendFailureDoesNotFailHook(t *testing.T) {
	f := newHookFixture()
	f.cityUC.city = &entity.City{ID: 1, Name: "Saint Petersburg"}
	f.cache.shops = []*entity.CoffeeShop{{ID: 1, Name: "a"}}
	f.geoUC.ranked = []*entity.CoffeeShop{(&entity.CoffeeShop{ID: 1, Name: "a"}).WithDistance(0.2)}
	f.bus.venueErr = errors.New("telegram down")

	err := f.hook.ProcessHook(context.Background(), hookInput(entity.InboundMessage{
		ChatID:   7,
		Location: &entity.Location{Latitude: 59.93, Longitude: 30.36},
	}))

	require.NoError(t, err)
	assert.Equal(t, service.OutcomeVenuesSent, f.events.lastOutcome())
}
