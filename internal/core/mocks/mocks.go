package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/support-dashboard/internal/core/domain"
	"github.com/lorrc/support-dashboard/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockTicketSource is a mock implementation of ports.TicketSource
type MockTicketSource struct {
	mock.Mock
}

func NewMockTicketSource() *MockTicketSource {
	return &MockTicketSource{}
}

func (m *MockTicketSource) Fetch(ctx context.Context) (*domain.TicketSheet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketSheet), args.Error(1)
}

// MockSnapshotCache is a mock implementation of ports.SnapshotCache
type MockSnapshotCache struct {
	mock.Mock
}

func NewMockSnapshotCache() *MockSnapshotCache {
	return &MockSnapshotCache{}
}

func (m *MockSnapshotCache) Get(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotCache) Invalidate() {
	m.Called()
}

func (m *MockSnapshotCache) Peek() *domain.Snapshot {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Snapshot)
}

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, params ports.NotificationParams) {
	m.Called(ctx, params)
}

// MockNotificationFeed is a mock implementation of ports.NotificationFeed
type MockNotificationFeed struct {
	mock.Mock
}

func NewMockNotificationFeed() *MockNotificationFeed {
	return &MockNotificationFeed{}
}

func (m *MockNotificationFeed) List(ctx context.Context, after uuid.UUID) []*domain.Notification {
	args := m.Called(ctx, after)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*domain.Notification)
}

func (m *MockNotificationFeed) Dismiss(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDashboardService is a mock implementation of ports.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func NewMockDashboardService() *MockDashboardService {
	return &MockDashboardService{}
}

func (m *MockDashboardService) Load(ctx context.Context, trigger domain.RefreshTrigger) (*domain.DashboardView, error) {
	args := m.Called(ctx, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardView), args.Error(1)
}

func (m *MockDashboardService) Current(ctx context.Context) (*domain.DashboardView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardView), args.Error(1)
}

func (m *MockDashboardService) Tickets(ctx context.Context, filter domain.TicketFilter) (*domain.TicketTable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketTable), args.Error(1)
}

func (m *MockDashboardService) Export(ctx context.Context) (*domain.CSVExport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CSVExport), args.Error(1)
}

func (m *MockDashboardService) Share(ctx context.Context, pageURL string) domain.SharePayload {
	args := m.Called(ctx, pageURL)
	return args.Get(0).(domain.SharePayload)
}

func (m *MockDashboardService) View() *domain.DashboardView {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.DashboardView)
}

func (m *MockDashboardService) IsRefreshing() bool {
	args := m.Called()
	return args.Bool(0)
}
