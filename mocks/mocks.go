// Package mocks provides hand-maintained testify mocks for the port
// interfaces. Constructors register cleanup-time expectation assertions so
// tests fail when a declared call never happens.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/ports"
)

// MockBoardRepository is a testify mock for ports.BoardRepository.
type MockBoardRepository struct {
	mock.Mock
}

var _ ports.BoardRepository = (*MockBoardRepository)(nil)

// NewMockBoardRepository creates a mock bound to the test's lifecycle.
func NewMockBoardRepository(t *testing.T) *MockBoardRepository {
	t.Helper()
	m := &MockBoardRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id string) (*board.Board, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*board.Board)
	return b, args.Error(1)
}

func (m *MockBoardRepository) Create(ctx context.Context, b *board.Board) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBoardRepository) Update(ctx context.Context, b *board.Board) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBoardRepository) FindByOwner(
	ctx context.Context,
	ownerID string,
	req ports.PageRequest,
	typ *board.BoardType,
) (ports.Page[*board.Board], error) {
	args := m.Called(ctx, ownerID, req, typ)
	page, _ := args.Get(0).(ports.Page[*board.Board])
	return page, args.Error(1)
}

// MockEventDispatcher is a testify mock for ports.EventDispatcher.
type MockEventDispatcher struct {
	mock.Mock
}

var _ ports.EventDispatcher = (*MockEventDispatcher)(nil)

// NewMockEventDispatcher creates a mock bound to the test's lifecycle.
func NewMockEventDispatcher(t *testing.T) *MockEventDispatcher {
	t.Helper()
	m := &MockEventDispatcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventDispatcher) DispatchAll(ctx context.Context, events []board.Event) error {
	return m.Called(ctx, events).Error(0)
}

// MockBoardService is a testify mock for ports.BoardService, used by
// handler tests.
type MockBoardService struct {
	mock.Mock
}

var _ ports.BoardService = (*MockBoardService)(nil)

// NewMockBoardService creates a mock bound to the test's lifecycle.
func NewMockBoardService(t *testing.T) *MockBoardService {
	t.Helper()
	m := &MockBoardService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBoardService) CreateBoard(ctx context.Context, in ports.CreateBoardInput) (*board.Board, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*board.Board)
	return b, args.Error(1)
}

func (m *MockBoardService) CreateKanbanBoard(ctx context.Context, in ports.CreateKanbanBoardInput) (*board.Board, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*board.Board)
	return b, args.Error(1)
}

func (m *MockBoardService) GetBoard(ctx context.Context, boardID, userID string) (*board.Board, error) {
	args := m.Called(ctx, boardID, userID)
	b, _ := args.Get(0).(*board.Board)
	return b, args.Error(1)
}

func (m *MockBoardService) GetUserBoards(ctx context.Context, in ports.ListBoardsInput) (ports.Page[*board.Board], error) {
	args := m.Called(ctx, in)
	page, _ := args.Get(0).(ports.Page[*board.Board])
	return page, args.Error(1)
}

func (m *MockBoardService) AddColumn(ctx context.Context, in ports.AddColumnInput) (*board.Board, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*board.Board)
	return b, args.Error(1)
}

func (m *MockBoardService) AddCard(ctx context.Context, in ports.AddCardInput) (*board.Board, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*board.Board)
	return b, args.Error(1)
}

func (m *MockBoardService) UpdateCard(ctx context.Context, in ports.UpdateCardInput) (*board.Board, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*board.Board)
	return b, args.Error(1)
}

func (m *MockBoardService) MoveCard(ctx context.Context, in ports.MoveCardInput) (*board.Board, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*board.Board)
	return b, args.Error(1)
}

func (m *MockBoardService) UpdateBoard(ctx context.Context, in ports.UpdateBoardInput) (*board.Board, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*board.Board)
	return b, args.Error(1)
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, boardID, userID string) (string, error) {
	args := m.Called(ctx, boardID, userID)
	return args.String(0), args.Error(1)
}

// MockHealthRegistry is a testify mock for ports.HealthRegistry.
type MockHealthRegistry struct {
	mock.Mock
}

var _ ports.HealthRegistry = (*MockHealthRegistry)(nil)

// NewMockHealthRegistry creates a mock bound to the test's lifecycle.
func NewMockHealthRegistry(t *testing.T) *MockHealthRegistry {
	t.Helper()
	m := &MockHealthRegistry{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHealthRegistry) Register(checker ports.HealthChecker) {
	m.Called(checker)
}

func (m *MockHealthRegistry) CheckAll(ctx context.Context) map[string]error {
	args := m.Called(ctx)
	results, _ := args.Get(0).(map[string]error)
	return results
}

// MockHealthChecker is a testify mock for ports.HealthChecker.
type MockHealthChecker struct {
	mock.Mock
}

var _ ports.HealthChecker = (*MockHealthChecker)(nil)

// NewMockHealthChecker creates a mock bound to the test's lifecycle.
func NewMockHealthChecker(t *testing.T) *MockHealthChecker {
	t.Helper()
	m := &MockHealthChecker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHealthChecker) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
