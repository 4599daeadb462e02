package engines

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
	"github.com/m04kA/SMC-TurfManager/internal/service/engines/models"
	getSlotCalendar "github.com/m04kA/SMC-TurfManager/internal/usecase/get_slot_calendar"
	"github.com/m04kA/SMC-TurfManager/pkg/ptr"
)

const (
	defaultScarcityMessage  = "Осталось всего {count} свободных слотов"
	defaultCountdownMessage = "Ближайший слот начнётся через {minutes} мин"
)

// Service сервис движков вовлечения (виджеты публичной страницы)
type Service struct {
	engineRepo     EngineRepository
	venueRepo      VenueRepository
	bookingCounter BookingCounter
	calendar       SlotCalendar
	txManager      TransactionManager
	loc            *time.Location
	now            func() time.Time
	logger         Logger
}

// NewService создает новый экземпляр сервиса движков
func NewService(
	engineRepo EngineRepository,
	venueRepo VenueRepository,
	bookingCounter BookingCounter,
	calendar SlotCalendar,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		engineRepo:     engineRepo,
		venueRepo:      venueRepo,
		bookingCounter: bookingCounter,
		calendar:       calendar,
		txManager:      txManager,
		loc:            loc,
		now:            time.Now,
		logger:         logger,
	}
}

// List движки площадки. Доступно только владельцу
func (s *Service) List(ctx context.Context, venueID, ownerID int64) (*models.EngineListResponse, error) {
	s.logger.Info("List: engines of venue id=%d for owner=%d", venueID, ownerID)

	if _, err := s.getOwnedVenue(ctx, "List", venueID, ownerID); err != nil {
		return nil, err
	}

	engines, err := s.engineRepo.ListByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("List: repository error for venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.EngineListResponse{Engines: make([]models.EngineDTO, 0, len(engines))}
	for _, e := range engines {
		dto, err := models.FromDomainEngine(e)
		if err != nil {
			s.logger.Error("List: encode %s config of venue id=%d: %v", e.Kind, venueID, err)
			return nil, fmt.Errorf("%w: List - encode config: %v", ErrInternal, err)
		}
		resp.Engines = append(resp.Engines, dto)
	}

	return resp, nil
}

// Upsert сохраняет настройки движков площадки одной транзакцией
func (s *Service) Upsert(ctx context.Context, req *models.UpsertEnginesRequest) (*models.EngineListResponse, error) {
	s.logger.Info("Upsert: %d engines for venue id=%d by owner=%d", len(req.Engines), req.VenueID, req.OwnerID)

	if len(req.Engines) == 0 {
		return nil, fmt.Errorf("%w: engines are required", ErrInvalidInput)
	}

	if _, err := s.getOwnedVenue(ctx, "Upsert", req.VenueID, req.OwnerID); err != nil {
		return nil, err
	}

	engines := make([]*domain.Engine, 0, len(req.Engines))
	seen := make(map[string]struct{}, len(req.Engines))
	for _, dto := range req.Engines {
		if _, ok := seen[dto.Kind]; ok {
			return nil, fmt.Errorf("%w: duplicate engine kind %q", ErrInvalidEngine, dto.Kind)
		}
		seen[dto.Kind] = struct{}{}

		engine, err := dto.ToDomainEngine(req.VenueID)
		if err != nil {
			s.logger.Warn("Upsert: invalid %s engine for venue id=%d: %v", dto.Kind, req.VenueID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidEngine, err)
		}
		engines = append(engines, engine)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, engine := range engines {
			if err := s.engineRepo.Upsert(ctx, engine); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Upsert: transaction failed for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Upsert - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved %d engines for venue id=%d", len(engines), req.VenueID)
	return s.List(ctx, req.VenueID, req.OwnerID)
}

// Widgets интерпретирует включённые движки площадки для выбранной даты.
// Публичный метод - доступен всем
func (s *Service) Widgets(ctx context.Context, req *models.WidgetsRequest) (*models.WidgetsResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, s.loc)

	s.logger.Info("Widgets: venue id=%d, date=%s", req.VenueID, date.Format(domain.DateFormat))

	venue, err := s.getVenue(ctx, "Widgets", req.VenueID)
	if err != nil {
		return nil, err
	}
	if !venue.IsActive {
		return nil, ErrVenueInactive
	}

	engines, err := s.engineRepo.ListByVenue(ctx, req.VenueID)
	if err != nil {
		s.logger.Error("Widgets: repository error for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Widgets - repository error: %v", ErrInternal, err)
	}

	resp := &models.WidgetsResponse{
		VenueID: req.VenueID,
		Date:    date.Format(domain.DateFormat),
		Widgets: make([]models.Widget, 0, len(engines)),
	}

	// Календарь нужен только scarcity и countdown, загружаем лениво
	var day *domain.DaySlots
	loadDay := func() (*domain.DaySlots, error) {
		if day != nil {
			return day, nil
		}
		d, err := s.loadDay(ctx, req.VenueID, date)
		if err != nil {
			return nil, err
		}
		day = d
		return day, nil
	}

	for _, engine := range engines {
		if !engine.Enabled {
			continue
		}

		var widget *models.Widget

		switch cfg := engine.Config.(type) {
		case domain.ScarcityConfig:
			d, err := loadDay()
			if err != nil {
				return nil, err
			}
			widget = scarcityWidget(cfg, d)
		case domain.CountdownConfig:
			d, err := loadDay()
			if err != nil {
				return nil, err
			}
			widget = countdownWidget(cfg, d, s.now().In(s.loc), s.loc)
		case domain.ScratchCardConfig:
			widget = scratchCardWidget(cfg)
		case domain.LoyaltyConfig:
			widget = s.loyaltyWidget(ctx, cfg, req.VenueID, req.CustomerID)
		case domain.ABPromoConfig:
			widget = abPromoWidget(cfg, req.VisitorID, req.VenueID)
		default:
			s.logger.Warn("Widgets: unsupported engine kind %q for venue id=%d", engine.Kind, req.VenueID)
		}

		if widget != nil {
			resp.Widgets = append(resp.Widgets, *widget)
		}
	}

	s.logger.Info("Widgets: %d widgets for venue id=%d", len(resp.Widgets), req.VenueID)
	return resp, nil
}

func (s *Service) loadDay(ctx context.Context, venueID int64, date time.Time) (*domain.DaySlots, error) {
	week, err := s.calendar.Execute(ctx, &getSlotCalendar.Request{VenueID: venueID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getSlotCalendar.ErrVenueNotFound):
			return nil, ErrVenueNotFound
		case errors.Is(err, getSlotCalendar.ErrVenueInactive):
			return nil, ErrVenueInactive
		}
		s.logger.Error("Widgets: calendar error for venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: Widgets - calendar error: %v", ErrInternal, err)
	}

	for i := range week.Days {
		if domain.SameDate(week.Days[i].Date, date) {
			return &week.Days[i], nil
		}
	}
	return &domain.DaySlots{Date: date}, nil
}

// scarcityWidget показывается, только когда свободных слотов не больше порога.
// Полностью занятый день баннер не показывает
func scarcityWidget(cfg domain.ScarcityConfig, day *domain.DaySlots) *models.Widget {
	available := 0
	for _, slot := range day.Slots {
		if slot.Status == domain.SlotAvailable {
			available++
		}
	}
	if available == 0 || available > cfg.Threshold {
		return nil
	}

	msg := cfg.Message
	if msg == "" {
		msg = defaultScarcityMessage
	}

	return &models.Widget{
		Kind:           string(domain.EngineScarcity),
		Message:        strings.ReplaceAll(msg, "{count}", strconv.Itoa(available)),
		AvailableSlots: ptr.Ptr(available),
	}
}

// countdownWidget отсчитывает время до ближайшего свободного слота в пределах окна
func countdownWidget(cfg domain.CountdownConfig, day *domain.DaySlots, now time.Time, loc *time.Location) *models.Widget {
	window := time.Duration(cfg.WindowMinutes) * time.Minute

	for _, slot := range day.Slots {
		if slot.Status != domain.SlotAvailable {
			continue
		}
		start := time.Date(day.Date.Year(), day.Date.Month(), day.Date.Day(), slot.Hour, 0, 0, 0, loc)
		if !start.After(now) {
			continue
		}

		left := start.Sub(now)
		if left > window {
			return nil
		}

		msg := cfg.Message
		if msg == "" {
			msg = defaultCountdownMessage
		}
		minutes := int(left.Round(time.Minute) / time.Minute)

		return &models.Widget{
			Kind:          string(domain.EngineCountdown),
			Message:       strings.ReplaceAll(msg, "{minutes}", strconv.Itoa(minutes)),
			NextSlotStart: ptr.Ptr(start),
			SecondsLeft:   ptr.Ptr(int(left / time.Second)),
		}
	}
	return nil
}

func scratchCardWidget(cfg domain.ScratchCardConfig) *models.Widget {
	widget := &models.Widget{
		Kind:            string(domain.EngineScratchCard),
		DiscountPercent: ptr.Ptr(cfg.DiscountPercent),
	}
	if cfg.MaxDiscount > 0 {
		widget.MaxDiscount = ptr.Ptr(cfg.MaxDiscount)
	}
	if cfg.PromoCode != "" {
		widget.PromoCode = ptr.Ptr(cfg.PromoCode)
	}
	return widget
}

// loyaltyWidget прогресс клиента к награде. Без клиента и при ошибке счётчика виджет не показывается
func (s *Service) loyaltyWidget(ctx context.Context, cfg domain.LoyaltyConfig, venueID int64, customerID *int64) *models.Widget {
	if customerID == nil {
		return nil
	}

	completed, err := s.bookingCounter.CountCompleted(ctx, venueID, *customerID)
	if err != nil {
		s.logger.Warn("Widgets: count completed bookings for customer id=%d: %v", *customerID, err)
		return nil
	}

	progress := completed % cfg.BookingsForReward
	left := cfg.BookingsForReward - progress

	return &models.Widget{
		Kind:              string(domain.EngineLoyalty),
		Message:           fmt.Sprintf("До награды осталось броней: %d", left),
		CompletedBookings: ptr.Ptr(progress),
		BookingsForReward: ptr.Ptr(cfg.BookingsForReward),
		Reward:            ptr.Ptr(cfg.Reward),
	}
}

func abPromoWidget(cfg domain.ABPromoConfig, visitorID string, venueID int64) *models.Widget {
	variant, text := "B", cfg.VariantB
	if abBucket(visitorID, venueID) < cfg.SplitPercent {
		variant, text = "A", cfg.VariantA
	}

	return &models.Widget{
		Kind:    string(domain.EngineABPromo),
		Message: text,
		Variant: ptr.Ptr(variant),
	}
}

// abBucket детерминированная корзина посетителя 0..99
func abBucket(visitorID string, venueID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(visitorID))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(strconv.FormatInt(venueID, 10)))
	return int(h.Sum32() % 100)
}

func (s *Service) getVenue(ctx context.Context, op string, id int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("%s: venue id=%d not found", op, id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("%s: repository error for venue id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return venue, nil
}

func (s *Service) getOwnedVenue(ctx context.Context, op string, venueID, ownerID int64) (*domain.Venue, error) {
	venue, err := s.getVenue(ctx, op, venueID)
	if err != nil {
		return nil, err
	}
	if !venue.IsOwnedBy(ownerID) {
		s.logger.Warn("%s: owner=%d has no access to venue id=%d", op, ownerID, venueID)
		return nil, ErrAccessDenied
	}
	return venue, nil
}
