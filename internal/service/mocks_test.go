package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sigma-matching/api-server-go/internal/audit"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/repository"
)

type mockUserRepo struct {
	findByID       func(ctx context.Context, id int64) (*model.User, error)
	findActiveByID func(ctx context.Context, id int64) (*model.User, error)
	findByEmail    func(ctx context.Context, email string) (*model.User, error)
	findAll        func(ctx context.Context, limit, offset int) ([]model.User, error)
	create         func(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	updateProfile  func(ctx context.Context, id int64, patch model.UserProfilePatch) (*model.User, error)
	adminUpdate    func(ctx context.Context, id int64, patch model.AdminUserPatch) (*model.User, error)
	count          func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return m.findByID(ctx, id)
}

func (m *mockUserRepo) FindActiveByID(ctx context.Context, id int64) (*model.User, error) {
	return m.findActiveByID(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findByEmail(ctx, email)
}

func (m *mockUserRepo) FindAll(ctx context.Context, limit, offset int) ([]model.User, error) {
	return m.findAll(ctx, limit, offset)
}

func (m *mockUserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	return m.create(ctx, params)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, patch model.UserProfilePatch) (*model.User, error) {
	return m.updateProfile(ctx, id, patch)
}

func (m *mockUserRepo) AdminUpdate(ctx context.Context, id int64, patch model.AdminUserPatch) (*model.User, error) {
	return m.adminUpdate(ctx, id, patch)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	return m.count(ctx)
}

func (m *mockUserRepo) WithTx(tx *sqlx.Tx) repository.UserRepository { return m }

type mockLeadRepo struct {
	findByID func(ctx context.Context, id int64, scope repository.Scope) (*model.Lead, error)
	findAll  func(ctx context.Context, scope repository.Scope) ([]model.Lead, error)
	create   func(ctx context.Context, agentID int64, params model.CreateLeadParams) (*model.Lead, error)
	update   func(ctx context.Context, id int64, scope repository.Scope, patch model.LeadPatch) (*model.Lead, error)
}

func (m *mockLeadRepo) FindByID(ctx context.Context, id int64, scope repository.Scope) (*model.Lead, error) {
	return m.findByID(ctx, id, scope)
}

func (m *mockLeadRepo) FindAll(ctx context.Context, scope repository.Scope) ([]model.Lead, error) {
	return m.findAll(ctx, scope)
}

func (m *mockLeadRepo) Create(ctx context.Context, agentID int64, params model.CreateLeadParams) (*model.Lead, error) {
	return m.create(ctx, agentID, params)
}

func (m *mockLeadRepo) Update(ctx context.Context, id int64, scope repository.Scope, patch model.LeadPatch) (*model.Lead, error) {
	return m.update(ctx, id, scope, patch)
}

func (m *mockLeadRepo) WithTx(tx *sqlx.Tx) repository.LeadRepository { return m }

type mockPropertyRepo struct {
	findByID     func(ctx context.Context, id int64, scope repository.Scope) (*model.Property, error)
	findByLeadID func(ctx context.Context, leadID int64) ([]model.Property, error)
	create       func(ctx context.Context, params model.CreatePropertyParams) (*model.Property, error)
	updateStatus func(ctx context.Context, id int64, status model.PropertyStatus) (*model.Property, error)
}

func (m *mockPropertyRepo) FindByID(ctx context.Context, id int64, scope repository.Scope) (*model.Property, error) {
	return m.findByID(ctx, id, scope)
}

func (m *mockPropertyRepo) FindByLeadID(ctx context.Context, leadID int64) ([]model.Property, error) {
	return m.findByLeadID(ctx, leadID)
}

func (m *mockPropertyRepo) Create(ctx context.Context, params model.CreatePropertyParams) (*model.Property, error) {
	return m.create(ctx, params)
}

func (m *mockPropertyRepo) UpdateStatus(ctx context.Context, id int64, status model.PropertyStatus) (*model.Property, error) {
	return m.updateStatus(ctx, id, status)
}

func (m *mockPropertyRepo) WithTx(tx *sqlx.Tx) repository.PropertyRepository { return m }

type mockStatsRepo struct {
	collect func(ctx context.Context) (*model.AdminStats, error)
}

func (m *mockStatsRepo) Collect(ctx context.Context) (*model.AdminStats, error) {
	return m.collect(ctx)
}

type mockActionLogRepo struct {
	insert           func(ctx context.Context, params model.CreateActionLogParams) error
	findRecentByUser func(ctx context.Context, userID int64, limit int) ([]model.ActionLog, error)
}

func (m *mockActionLogRepo) Insert(ctx context.Context, params model.CreateActionLogParams) error {
	if m.insert != nil {
		return m.insert(ctx, params)
	}
	return nil
}

func (m *mockActionLogRepo) FindRecentByUser(ctx context.Context, userID int64, limit int) ([]model.ActionLog, error) {
	if m.findRecentByUser != nil {
		return m.findRecentByUser(ctx, userID, limit)
	}
	return nil, nil
}

type nopActionLogRepo struct{}

func (nopActionLogRepo) Insert(ctx context.Context, params model.CreateActionLogParams) error {
	return nil
}

func (nopActionLogRepo) FindRecentByUser(ctx context.Context, userID int64, limit int) ([]model.ActionLog, error) {
	return nil, nil
}

// testRecorder never starts its worker; entries just sit in the queue.
func testRecorder() *audit.Recorder {
	return audit.NewRecorder(nopActionLogRepo{}, 64)
}
