package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sigma-matching/api-server-go/internal/audit"
	"github.com/sigma-matching/api-server-go/internal/middleware"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/repository"
	"github.com/sigma-matching/api-server-go/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testTokens() *token.Manager {
	return token.NewManager(testSecret, time.Hour)
}

type nopActionLogRepo struct{}

func (nopActionLogRepo) Insert(ctx context.Context, params model.CreateActionLogParams) error {
	return nil
}

func (nopActionLogRepo) FindRecentByUser(ctx context.Context, userID int64, limit int) ([]model.ActionLog, error) {
	return nil, nil
}

func testRecorder() *audit.Recorder {
	return audit.NewRecorder(nopActionLogRepo{}, 64)
}

type mockUserRepo struct {
	findByIDFunc       func(ctx context.Context, id int64) (*model.User, error)
	findActiveByIDFunc func(ctx context.Context, id int64) (*model.User, error)
	findByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	findAllFunc        func(ctx context.Context, limit, offset int) ([]model.User, error)
	createFunc         func(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	updateProfileFunc  func(ctx context.Context, id int64, patch model.UserProfilePatch) (*model.User, error)
	adminUpdateFunc    func(ctx context.Context, id int64, patch model.AdminUserPatch) (*model.User, error)
	countFunc          func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindActiveByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findActiveByIDFunc != nil {
		return m.findActiveByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) FindAll(ctx context.Context, limit, offset int) ([]model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, patch model.UserProfilePatch) (*model.User, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockUserRepo) AdminUpdate(ctx context.Context, id int64, patch model.AdminUserPatch) (*model.User, error) {
	if m.adminUpdateFunc != nil {
		return m.adminUpdateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockUserRepo) WithTx(tx *sqlx.Tx) repository.UserRepository {
	return m
}

type mockLeadRepo struct {
	findByIDFunc func(ctx context.Context, id int64, scope repository.Scope) (*model.Lead, error)
	findAllFunc  func(ctx context.Context, scope repository.Scope) ([]model.Lead, error)
	createFunc   func(ctx context.Context, agentID int64, params model.CreateLeadParams) (*model.Lead, error)
	updateFunc   func(ctx context.Context, id int64, scope repository.Scope, patch model.LeadPatch) (*model.Lead, error)
}

func (m *mockLeadRepo) FindByID(ctx context.Context, id int64, scope repository.Scope) (*model.Lead, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id, scope)
	}
	return nil, nil
}

func (m *mockLeadRepo) FindAll(ctx context.Context, scope repository.Scope) ([]model.Lead, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, scope)
	}
	return nil, nil
}

func (m *mockLeadRepo) Create(ctx context.Context, agentID int64, params model.CreateLeadParams) (*model.Lead, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, agentID, params)
	}
	return nil, nil
}

func (m *mockLeadRepo) Update(ctx context.Context, id int64, scope repository.Scope, patch model.LeadPatch) (*model.Lead, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, scope, patch)
	}
	return nil, nil
}

func (m *mockLeadRepo) WithTx(tx *sqlx.Tx) repository.LeadRepository { return m }

type mockPropertyRepo struct {
	findByIDFunc     func(ctx context.Context, id int64, scope repository.Scope) (*model.Property, error)
	findByLeadIDFunc func(ctx context.Context, leadID int64) ([]model.Property, error)
	updateStatusFunc func(ctx context.Context, id int64, status model.PropertyStatus) (*model.Property, error)
}

func (m *mockPropertyRepo) FindByID(ctx context.Context, id int64, scope repository.Scope) (*model.Property, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id, scope)
	}
	return nil, nil
}

func (m *mockPropertyRepo) FindByLeadID(ctx context.Context, leadID int64) ([]model.Property, error) {
	if m.findByLeadIDFunc != nil {
		return m.findByLeadIDFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *mockPropertyRepo) Create(ctx context.Context, params model.CreatePropertyParams) (*model.Property, error) {
	return nil, nil
}

func (m *mockPropertyRepo) UpdateStatus(ctx context.Context, id int64, status model.PropertyStatus) (*model.Property, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil, nil
}

func (m *mockPropertyRepo) WithTx(tx *sqlx.Tx) repository.PropertyRepository { return m }

// withUser injects an authenticated user the way the auth middleware does.
func withUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, user))
}
