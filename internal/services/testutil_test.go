package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

// ---- taxonomy repo fake ----

type fakeTaxonomyRepo struct {
	gradeLevels   []types.GradeLevel
	learningAreas []types.LearningArea
	tracks        []types.Track
	components    []types.Component
	strands       []types.Strand
	typeEntries   []types.Type
	subjectTypes  []types.SubjectType

	createErr error
	listErr   error
	created   []string
}

func (f *fakeTaxonomyRepo) CreateGradeLevel(_ context.Context, _ *gorm.DB, entry *types.GradeLevel) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, "grade_level:"+entry.Name)
	return nil
}

func (f *fakeTaxonomyRepo) CreateLearningArea(_ context.Context, _ *gorm.DB, entry *types.LearningArea) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, "learning_area:"+entry.Name)
	return nil
}

func (f *fakeTaxonomyRepo) CreateTrack(_ context.Context, _ *gorm.DB, entry *types.Track) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, "track:"+entry.Name)
	return nil
}

func (f *fakeTaxonomyRepo) CreateComponent(_ context.Context, _ *gorm.DB, entry *types.Component) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, "component:"+entry.Name)
	return nil
}

func (f *fakeTaxonomyRepo) CreateStrand(_ context.Context, _ *gorm.DB, entry *types.Strand) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, "strand:"+entry.Name)
	return nil
}

func (f *fakeTaxonomyRepo) CreateType(_ context.Context, _ *gorm.DB, entry *types.Type) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, "type:"+entry.Name)
	return nil
}

func (f *fakeTaxonomyRepo) CreateSubjectType(_ context.Context, _ *gorm.DB, entry *types.SubjectType) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, "subject_type:"+entry.Name)
	return nil
}

func (f *fakeTaxonomyRepo) ListGradeLevels(_ context.Context, _ *gorm.DB) ([]types.GradeLevel, error) {
	return f.gradeLevels, f.listErr
}

func (f *fakeTaxonomyRepo) ListLearningAreas(_ context.Context, _ *gorm.DB) ([]types.LearningArea, error) {
	return f.learningAreas, f.listErr
}

func (f *fakeTaxonomyRepo) ListTracks(_ context.Context, _ *gorm.DB) ([]types.Track, error) {
	return f.tracks, f.listErr
}

func (f *fakeTaxonomyRepo) ListComponents(_ context.Context, _ *gorm.DB) ([]types.Component, error) {
	return f.components, f.listErr
}

func (f *fakeTaxonomyRepo) ListStrands(_ context.Context, _ *gorm.DB) ([]types.Strand, error) {
	return f.strands, f.listErr
}

func (f *fakeTaxonomyRepo) ListTypes(_ context.Context, _ *gorm.DB) ([]types.Type, error) {
	return f.typeEntries, f.listErr
}

func (f *fakeTaxonomyRepo) ListSubjectTypes(_ context.Context, _ *gorm.DB) ([]types.SubjectType, error) {
	return f.subjectTypes, f.listErr
}

// ---- material repo fake ----

type fakeMaterialRepo struct {
	materials []*types.Material

	inserted      [][]*types.Material
	insertErr     error
	overrideCount *int64
}

func (f *fakeMaterialRepo) BulkInsert(_ context.Context, _ *gorm.DB, materials []*types.Material) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, materials)
	if f.overrideCount != nil {
		return *f.overrideCount, nil
	}
	return int64(len(materials)), nil
}

func (f *fakeMaterialRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*types.Material, error) {
	for _, m := range f.materials {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMaterialRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) (*types.Material, error) {
	for _, m := range f.materials {
		if m.ID == id {
			if v, ok := updates["material_path"].(string); ok {
				m.MaterialPath = &v
			}
			if v, ok := updates["file_name"].(string); ok {
				m.FileName = &v
			}
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMaterialRepo) ListAll(_ context.Context, _ *gorm.DB) ([]*types.Material, error) {
	return f.materials, nil
}

// ---- user repo fake ----

type fakeUserRepo struct {
	users  map[uint]*types.User
	nextID uint

	lastLoginCalls      []uint
	passwordUpdates     map[uint]string
	userFieldUpdates    []map[string]any
	profileFieldUpdates []map[string]any
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:           map[uint]*types.User{},
		nextID:          1,
		passwordUpdates: map[uint]string{},
	}
}

func (f *fakeUserRepo) add(user *types.User) *types.User {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	}
	if user.Profile != nil {
		user.Profile.UserID = user.ID
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(_ context.Context, _ *gorm.DB, user *types.User) (*types.User, error) {
	return f.add(user), nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*types.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ *gorm.DB, email string) (*types.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	u, err := f.GetByEmail(ctx, tx, email)
	return u != nil, err
}

func (f *fakeUserRepo) List(_ context.Context, _ *gorm.DB) ([]*types.User, error) {
	users := make([]*types.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ *gorm.DB, id uint) error {
	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdateFields(_ context.Context, _ *gorm.DB, id uint, updates map[string]any) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.userFieldUpdates = append(f.userFieldUpdates, updates)
	if v, ok := updates["email"].(string); ok {
		u.Email = v
	}
	if v, ok := updates["first_name"].(string); ok {
		u.FirstName = v
	}
	if v, ok := updates["last_name"].(string); ok {
		u.LastName = v
	}
	return nil
}

func (f *fakeUserRepo) UpdateProfileFields(_ context.Context, _ *gorm.DB, userID uint, updates map[string]any) error {
	u, ok := f.users[userID]
	if !ok || u.Profile == nil {
		return gorm.ErrRecordNotFound
	}
	f.profileFieldUpdates = append(f.profileFieldUpdates, updates)
	if v, ok := updates["first_name"].(string); ok {
		u.Profile.FirstName = v
	}
	if v, ok := updates["email_address"].(string); ok {
		u.Profile.EmailAddress = v
	}
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, _ *gorm.DB, id uint, at time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.lastLoginCalls = append(f.lastLoginCalls, id)
	u.LastLogin = &at
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, _ *gorm.DB, id uint, digest string) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.passwordUpdates[id] = digest
	u.Password = digest
	u.IsChanged = true
	return nil
}

// ---- mailer fake ----

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, toEmail, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, toEmail)
	return nil
}
