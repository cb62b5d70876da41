package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"parkhub/backend/services/parking-service/internal/catalog"
	"parkhub/backend/services/parking-service/internal/parking"
	"parkhub/backend/services/parking-service/internal/redisstore"
	"parkhub/backend/services/parking-service/internal/snapshot"
	"parkhub/backend/services/parking-service/internal/ws"
)

// ParkingService ties the core registry and catalog to their collaborators:
// the occupancy cache, the live event hub and the snapshot store. Cache and
// hub are optional; failures there are logged and never fail the operation.
type ParkingService struct {
	registry *parking.Registry
	catalog  *catalog.Catalog
	occupied *redisstore.Store
	hub      *ws.Hub
	store    snapshot.Store
	logger   *zap.Logger
}

// NewParkingService builds the service. occupied, hub and store may be nil.
func NewParkingService(
	registry *parking.Registry,
	cat *catalog.Catalog,
	occupied *redisstore.Store,
	hub *ws.Hub,
	store snapshot.Store,
	logger *zap.Logger,
) *ParkingService {
	return &ParkingService{
		registry: registry,
		catalog:  cat,
		occupied: occupied,
		hub:      hub,
		store:    store,
		logger:   logger,
	}
}

// RegisterClient adds a client to the catalog.
func (s *ParkingService) RegisterClient(ctx context.Context, client catalog.Client) error {
	if err := s.catalog.RegisterClient(client); err != nil {
		return err
	}
	s.logger.Info("client registered", zap.String("client_id", client.ID))
	return nil
}

// RegisterVehicle binds a vehicle to a registered client.
func (s *ParkingService) RegisterVehicle(ctx context.Context, vehicle catalog.Vehicle) error {
	if err := s.catalog.RegisterVehicle(vehicle); err != nil {
		return err
	}
	s.logger.Info("vehicle registered",
		zap.String("plate", vehicle.Plate),
		zap.String("client_id", vehicle.ClientID),
		zap.String("usage", string(vehicle.Usage)),
	)
	return nil
}

// Clients returns all registered clients.
func (s *ParkingService) Clients(ctx context.Context) []catalog.Client {
	return s.catalog.Clients()
}

// LotSummary describes one lot for listings.
type LotSummary struct {
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	FreeSpots int    `json:"free_spots"`
}

// CreateLot provisions a new lot.
func (s *ParkingService) CreateLot(ctx context.Context, name string, capacity int) (LotSummary, error) {
	lot, err := s.registry.CreateLot(name, capacity)
	if err != nil {
		return LotSummary{}, err
	}
	s.logger.Info("lot created", zap.String("lot", name), zap.Int("capacity", capacity))
	return summarize(lot), nil
}

// Lots lists all lots in creation order.
func (s *ParkingService) Lots(ctx context.Context) []LotSummary {
	lots := s.registry.Lots()
	out := make([]LotSummary, 0, len(lots))
	for _, lot := range lots {
		out = append(out, summarize(lot))
	}
	return out
}

// GrantSpots appends spots to an existing lot.
func (s *ParkingService) GrantSpots(ctx context.Context, lotName string, n int) (LotSummary, error) {
	lot, ok := s.registry.Lot(lotName)
	if !ok {
		return LotSummary{}, parking.ErrLotNotFound
	}
	if err := lot.GrantSpots(n); err != nil {
		return LotSummary{}, err
	}
	s.logger.Info("spots granted", zap.String("lot", lotName), zap.Int("count", n))
	return summarize(lot), nil
}

func summarize(lot *parking.Lot) LotSummary {
	return LotSummary{
		Name:      lot.Name(),
		Capacity:  lot.Capacity(),
		FreeSpots: lot.FreeSpots(),
	}
}

// CheckInResult reports the opened session.
type CheckInResult struct {
	SessionID string    `json:"session_id"`
	Lot       string    `json:"lot"`
	SpotID    int       `json:"spot_id"`
	Plate     string    `json:"plate"`
	Entry     time.Time `json:"entry"`
}

// CheckIn parks the vehicle on the lot's first free spot.
func (s *ParkingService) CheckIn(ctx context.Context, lotName, plate string) (CheckInResult, error) {
	lot, ok := s.registry.Lot(lotName)
	if !ok {
		return CheckInResult{}, parking.ErrLotNotFound
	}

	now := time.Now().UTC()
	session, err := lot.CheckIn(plate, now)
	if err != nil {
		return CheckInResult{}, err
	}

	if s.occupied != nil {
		cacheErr := s.occupied.Save(ctx, redisstore.OccupiedVehicle{
			SessionID: session.ID(),
			Lot:       lotName,
			SpotID:    session.SpotID(),
			Plate:     plate,
			ClientID:  session.ClientID(),
			Entry:     session.Entry(),
		})
		if cacheErr != nil && cacheErr != redis.Nil {
			s.logger.Warn("failed to cache occupied vehicle", zap.Error(cacheErr))
		}
	}
	if s.hub != nil {
		s.hub.Broadcast(ws.Event{
			Type:      ws.EventCheckIn,
			Lot:       lotName,
			SpotID:    session.SpotID(),
			Plate:     plate,
			SessionID: session.ID(),
			At:        now,
		})
	}

	s.logger.Info("vehicle checked in",
		zap.String("lot", lotName),
		zap.String("plate", plate),
		zap.Int("spot", session.SpotID()),
	)
	return CheckInResult{
		SessionID: session.ID(),
		Lot:       lotName,
		SpotID:    session.SpotID(),
		Plate:     plate,
		Entry:     session.Entry(),
	}, nil
}

// CheckOutResult reports the closed session's fee.
type CheckOutResult struct {
	Lot   string    `json:"lot"`
	Plate string    `json:"plate"`
	Fee   float64   `json:"fee"`
	Exit  time.Time `json:"exit"`
}

// CheckOut closes the vehicle's open session and returns the final fee.
func (s *ParkingService) CheckOut(ctx context.Context, lotName, plate string) (CheckOutResult, error) {
	lot, ok := s.registry.Lot(lotName)
	if !ok {
		return CheckOutResult{}, parking.ErrLotNotFound
	}

	now := time.Now().UTC()
	fee, err := lot.CheckOut(plate, now)
	if err != nil {
		return CheckOutResult{}, err
	}

	if s.occupied != nil {
		if cacheErr := s.occupied.Delete(ctx, plate); cacheErr != nil && cacheErr != redis.Nil {
			s.logger.Warn("failed to drop occupied vehicle cache", zap.Error(cacheErr))
		}
	}
	if s.hub != nil {
		s.hub.Broadcast(ws.Event{
			Type:  ws.EventCheckOut,
			Lot:   lotName,
			Plate: plate,
			Fee:   &fee,
			At:    now,
		})
	}

	s.logger.Info("vehicle checked out",
		zap.String("lot", lotName),
		zap.String("plate", plate),
		zap.Float64("fee", fee),
	)
	return CheckOutResult{Lot: lotName, Plate: plate, Fee: fee, Exit: now}, nil
}

// ContractService attaches an add-on service to the vehicle's open session
// and returns the service price.
func (s *ParkingService) ContractService(ctx context.Context, lotName, plate string, kind parking.ServiceKind) (float64, error) {
	lot, ok := s.registry.Lot(lotName)
	if !ok {
		return 0, parking.ErrLotNotFound
	}

	price, err := lot.ContractService(plate, kind, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	s.logger.Info("service contracted",
		zap.String("lot", lotName),
		zap.String("plate", plate),
		zap.String("service", string(kind)),
		zap.Float64("price", price),
	)
	return price, nil
}

// TotalRevenue returns the lot's all-time revenue.
func (s *ParkingService) TotalRevenue(ctx context.Context, lotName string) (float64, error) {
	lot, ok := s.registry.Lot(lotName)
	if !ok {
		return 0, parking.ErrLotNotFound
	}
	return lot.TotalRevenue(), nil
}

// RevenueInMonth returns the lot's revenue for sessions touching the month.
func (s *ParkingService) RevenueInMonth(ctx context.Context, lotName string, month time.Month) (float64, error) {
	lot, ok := s.registry.Lot(lotName)
	if !ok {
		return 0, parking.ErrLotNotFound
	}
	return lot.RevenueInMonth(month), nil
}

// AverageFeePerUse returns the lot's mean closed-session fee.
func (s *ParkingService) AverageFeePerUse(ctx context.Context, lotName string) (float64, error) {
	lot, ok := s.registry.Lot(lotName)
	if !ok {
		return 0, parking.ErrLotNotFound
	}
	return lot.AverageFeePerUse(), nil
}

// TopClients ranks the lot's clients for the month.
func (s *ParkingService) TopClients(ctx context.Context, lotName string, month time.Month, n int) ([]parking.ClientRevenue, error) {
	lot, ok := s.registry.Lot(lotName)
	if !ok {
		return nil, parking.ErrLotNotFound
	}
	return lot.TopClients(month, n), nil
}

// SubscriberUsage returns the average session count per subscriber client
// for the month.
func (s *ParkingService) SubscriberUsage(ctx context.Context, lotName string, month time.Month) (float64, error) {
	lot, ok := s.registry.Lot(lotName)
	if !ok {
		return 0, parking.ErrLotNotFound
	}
	return lot.AverageMonthlyUsageForSubscribers(month), nil
}

// RevenueByLot ranks all lots by total revenue.
func (s *ParkingService) RevenueByLot(ctx context.Context) []parking.LotRevenue {
	return s.registry.RevenueByLot()
}

// SaveState persists the full catalog and registry state.
func (s *ParkingService) SaveState(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	state := snapshot.State{
		SavedAt: time.Now().UTC(),
		Catalog: s.catalog.State(),
		Lots:    s.registry.State(),
	}
	if err := s.store.Save(ctx, state); err != nil {
		return err
	}
	s.logger.Info("state snapshot saved", zap.Int("lots", len(state.Lots)))
	return nil
}
