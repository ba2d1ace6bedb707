package user

import (
	"testing"

	"realtychance/internal/models"
	"realtychance/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))
	return db
}

func validInput() *models.CreateUserInput {
	return &models.CreateUserInput{
		Phone:     "9876543210",
		Email:     "jane@example.com",
		FullName:  "Jane Doe",
		Password:  "Str0ngPass",
		Password2: "Str0ngPass",
	}
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(repositories.NewUserRepository(db))

	t.Run("creates user with hashed password and given role", func(t *testing.T) {
		created, err := svc.Register(validInput(), models.RoleSeeker)
		require.NoError(t, err)
		assert.Equal(t, models.RoleSeeker, created.Role)
		assert.NotEqual(t, "Str0ngPass", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Str0ngPass")))
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		input := validInput()
		input.Phone = "9876543211"
		_, err := svc.Register(input, models.RoleSeeker)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("duplicate phone rejected", func(t *testing.T) {
		input := validInput()
		input.Email = "other@example.com"
		_, err := svc.Register(input, models.RoleSeeker)
		assert.ErrorIs(t, err, ErrPhoneTaken)
	})

	t.Run("owner registration gets owner role", func(t *testing.T) {
		input := validInput()
		input.Phone = "9876500000"
		input.Email = "owner@example.com"
		created, err := svc.Register(input, models.RoleOwner)
		require.NoError(t, err)
		assert.Equal(t, models.RoleOwner, created.Role)
	})

	t.Run("validation errors carry field map", func(t *testing.T) {
		input := validInput()
		input.Password2 = "Mismatch1"
		_, err := svc.Register(input, models.RoleSeeker)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "password")
	})
}

// racingUserRepo simulates the window where another registration commits
// between the existence checks and the insert: the checks see nothing, the
// unique index still fires.
type racingUserRepo struct {
	repositories.UserRepository
}

func (racingUserRepo) EmailExists(string) (bool, error) { return false, nil }
func (racingUserRepo) PhoneExists(string) (bool, error) { return false, nil }

func TestRegister_ConcurrentDuplicateNamesTheRightField(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewUserRepository(db)
	svc := NewService(racingUserRepo{repo})

	_, err := svc.Register(validInput(), models.RoleSeeker)
	require.NoError(t, err)

	t.Run("email collision", func(t *testing.T) {
		input := validInput()
		input.Phone = "9876543299"
		_, err := svc.Register(input, models.RoleSeeker)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("phone collision", func(t *testing.T) {
		input := validInput()
		input.Email = "someone.else@example.com"
		_, err := svc.Register(input, models.RoleSeeker)
		assert.ErrorIs(t, err, ErrPhoneTaken)
	})
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(repositories.NewUserRepository(db))

	created, err := svc.Register(validInput(), models.RoleSeeker)
	require.NoError(t, err)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = svc.GetByID(99999)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}
