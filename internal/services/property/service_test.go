package property

import (
	"fmt"
	"testing"

	apperrors "realtychance/internal/errors"
	"realtychance/internal/models"
	"realtychance/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

var userSeq int

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Phone:        fmt.Sprintf("98765%05d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		FullName:     "Test User",
		Password:     "hashed",
		Role:         role,
		TokenVersion: 1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func claimsFor(user *models.User) *models.UserClaims {
	return &models.UserClaims{
		UserID:      user.ID,
		Phone:       user.Phone,
		Email:       user.Email,
		Role:        user.Role,
		IsStaff:     user.IsStaff,
		Permissions: models.GetDefaultPermissions(user.Role),
	}
}

func validInput(address string) *models.PropertyInput {
	return &models.PropertyInput{
		Title:        "2BHK near the lake",
		Description:  "Bright corner flat",
		Price:        4500000,
		Bedrooms:     2,
		Bathrooms:    2,
		AreaSqft:     950,
		PropertyType: models.PropertyTypeSale,
		City:         "Pune",
		State:        "Maharashtra",
		Locality:     "Aundh",
		Address:      address,
	}
}

func TestCreate_PromotesSeekerToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	seeker := createUser(t, db, models.RoleSeeker)

	created, err := svc.Create(claimsFor(seeker), validInput("14 Lakeview Road"))
	require.NoError(t, err)
	assert.Equal(t, seeker.ID, created.OwnerID)
	assert.True(t, created.IsActive)

	var stored models.User
	require.NoError(t, db.First(&stored, seeker.ID).Error)
	assert.Equal(t, models.RoleOwner, stored.Role)
}

func TestCreate_AdminRoleUnchanged(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	admin := createUser(t, db, models.RoleAdmin)

	_, err := svc.Create(claimsFor(admin), validInput("1 Admin Lane"))
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, admin.ID).Error)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestCreate_ValidationFailureDoesNotPromote(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	seeker := createUser(t, db, models.RoleSeeker)

	input := validInput("14 Lakeview Road")
	input.Price = 0

	_, err := svc.Create(claimsFor(seeker), input)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "price")

	var stored models.User
	require.NoError(t, db.First(&stored, seeker.ID).Error)
	assert.Equal(t, models.RoleSeeker, stored.Role, "a failed creation must not promote")
}

func TestCreate_DuplicateActiveAddressRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	_, err := svc.Create(claimsFor(owner), validInput("14 Lakeview Road"))
	require.NoError(t, err)

	_, err = svc.Create(claimsFor(owner), validInput("14 Lakeview Road"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateListing)

	// A different owner may list the same address.
	other := createUser(t, db, models.RoleOwner)
	_, err = svc.Create(claimsFor(other), validInput("14 Lakeview Road"))
	assert.NoError(t, err)
}

func TestCreate_AttachesImages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	input := validInput("14 Lakeview Road")
	input.Images = []models.PropertyImageInput{
		{URL: "https://cdn.example.com/a.jpg", IsPrimary: true},
		{URL: "https://cdn.example.com/b.jpg"},
	}

	created, err := svc.Create(claimsFor(owner), input)
	require.NoError(t, err)
	require.Len(t, created.Images, 2)
	assert.NotEmpty(t, created.Images[0].StorageKey)
	assert.NotEqual(t, created.Images[0].StorageKey, created.Images[1].StorageKey)
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)
	stranger := createUser(t, db, models.RoleOwner)
	staff := createUser(t, db, models.RoleAdmin)
	staff.IsStaff = true
	require.NoError(t, db.Save(staff).Error)

	created, err := svc.Create(claimsFor(owner), validInput("14 Lakeview Road"))
	require.NoError(t, err)

	patch := &models.PropertyInput{Title: "Renamed"}

	_, err = svc.Update(claimsFor(stranger), created.ID, patch, true)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	updated, err := svc.Update(claimsFor(owner), created.ID, patch, true)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	updated, err = svc.Update(claimsFor(staff), created.ID, &models.PropertyInput{Title: "Staff edit"}, true)
	require.NoError(t, err)
	assert.Equal(t, "Staff edit", updated.Title)
}

func TestUpdate_PartialSkipsZeroValues(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	created, err := svc.Create(claimsFor(owner), validInput("14 Lakeview Road"))
	require.NoError(t, err)

	updated, err := svc.Update(claimsFor(owner), created.ID, &models.PropertyInput{Price: 5000000}, true)
	require.NoError(t, err)
	assert.Equal(t, float64(5000000), updated.Price)
	assert.Equal(t, "2BHK near the lake", updated.Title)
	assert.Equal(t, uint(2), updated.Bedrooms)
}

func TestSoftDelete_HidesFromReads(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	created, err := svc.Create(claimsFor(owner), validInput("14 Lakeview Road"))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(claimsFor(owner), created.ID))

	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)

	listed, total, err := svc.List(repositories.PropertyFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Zero(t, total)

	// Still visible through the staff recovery view and the owner's own list.
	deleted, total, err := svc.Deleted(10, 0)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, created.ID, deleted[0].ID)

	mine, _, err := svc.MyListings(owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestDelete_RemovesRowAndImages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	input := validInput("14 Lakeview Road")
	input.Images = []models.PropertyImageInput{{URL: "https://cdn.example.com/a.jpg"}}
	created, err := svc.Create(claimsFor(owner), input)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(claimsFor(owner), created.ID))

	var propCount, imgCount int64
	require.NoError(t, db.Model(&models.Property{}).Count(&propCount).Error)
	require.NoError(t, db.Model(&models.PropertyImage{}).Count(&imgCount).Error)
	assert.Zero(t, propCount)
	assert.Zero(t, imgCount)
}

func TestSetVerified(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	created, err := svc.Create(claimsFor(owner), validInput("14 Lakeview Road"))
	require.NoError(t, err)
	assert.False(t, created.IsVerified)

	verified, err := svc.SetVerified(created.ID, true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	unverified, _, err := svc.Unverified(10, 0)
	require.NoError(t, err)
	assert.Empty(t, unverified)

	_, err = svc.SetVerified(99999, true)
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)
}

func TestList_FilterComposition(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	cheap := validInput("1 Budget Street")
	cheap.Title = "Compact studio"
	cheap.Price = 1200000
	cheap.Bedrooms = 1
	_, err := svc.Create(claimsFor(owner), cheap)
	require.NoError(t, err)

	big := validInput("2 Premium Avenue")
	big.Title = "Spacious villa"
	big.Price = 9000000
	big.Bedrooms = 4
	_, err = svc.Create(claimsFor(owner), big)
	require.NoError(t, err)

	minPrice := 2000000.0
	minBeds := uint(3)

	listed, total, err := svc.List(repositories.PropertyFilter{
		MinPrice: &minPrice,
		Bedrooms: &minBeds,
		City:     "pune", // case-insensitive exact
	}, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Spacious villa", listed[0].Title)

	listed, _, err = svc.List(repositories.PropertyFilter{Search: "studio"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Compact studio", listed[0].Title)
}

func TestList_OrderingWhitelist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	for i, price := range []float64{300, 100, 200} {
		in := validInput(fmt.Sprintf("%d Order Street", i))
		in.Price = price
		_, err := svc.Create(claimsFor(owner), in)
		require.NoError(t, err)
	}

	listed, _, err := svc.List(repositories.PropertyFilter{Ordering: "price"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, float64(100), listed[0].Price)
	assert.Equal(t, float64(300), listed[2].Price)

	listed, _, err = svc.List(repositories.PropertyFilter{Ordering: "-price"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(300), listed[0].Price)

	// Unknown columns fall back to the default ordering instead of erroring.
	_, _, err = svc.List(repositories.PropertyFilter{Ordering: "owner_id; DROP TABLE users"}, 10, 0)
	assert.NoError(t, err)
}

// An inactive row written directly must stay inactive: the is_active
// column has no schema default, so a stored false survives the insert and
// keeps the row out of every visible read.
func TestInactiveRowStaysInactive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	property := &models.Property{
		Title:        "Withdrawn listing",
		Description:  "No longer on the market",
		Price:        1200000,
		PropertyType: models.PropertyTypeSale,
		City:         "Pune",
		State:        "Maharashtra",
		Address:      "7 Quiet Lane",
		OwnerID:      owner.ID,
		IsActive:     false,
	}
	require.NoError(t, db.Create(property).Error)

	var stored models.Property
	require.NoError(t, db.First(&stored, property.ID).Error)
	assert.False(t, stored.IsActive)

	_, err := svc.Get(property.ID)
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)

	listed, total, err := svc.List(repositories.PropertyFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.EqualValues(t, 0, total)

	deleted, _, err := svc.Deleted(10, 0)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, property.ID, deleted[0].ID)
}

func TestList_TrendingByFavoriteCount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, repositories.NewPropertyRepository(db))
	owner := createUser(t, db, models.RoleOwner)

	ids := make([]uint, 3)
	for i := range ids {
		created, err := svc.Create(claimsFor(owner), validInput(fmt.Sprintf("%d Fame Street", i)))
		require.NoError(t, err)
		ids[i] = created.ID
	}

	// ids[1] gets two favorites, ids[2] one, ids[0] none.
	fans := []*models.User{
		createUser(t, db, models.RoleSeeker),
		createUser(t, db, models.RoleSeeker),
	}
	require.NoError(t, db.Create(&models.Favorite{UserID: fans[0].ID, PropertyID: ids[1]}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: fans[1].ID, PropertyID: ids[1]}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: fans[0].ID, PropertyID: ids[2]}).Error)

	listed, total, err := svc.List(repositories.PropertyFilter{Trending: true}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, listed, 3)
	assert.Equal(t, ids[1], listed[0].ID)
	assert.Equal(t, ids[2], listed[1].ID)
	assert.Equal(t, ids[0], listed[2].ID)
}

func TestTrendingLocations(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewPropertyRepository(db)
	svc := NewService(db, repo)
	owner := createUser(t, db, models.RoleOwner)

	for i := 0; i < 3; i++ {
		in := validInput(fmt.Sprintf("%d Pune Road", i))
		in.City = "Pune"
		created, err := svc.Create(claimsFor(owner), in)
		require.NoError(t, err)
		_, err = svc.SetVerified(created.ID, true)
		require.NoError(t, err)
	}
	in := validInput("1 Mumbai Road")
	in.City = "Mumbai"
	created, err := svc.Create(claimsFor(owner), in)
	require.NoError(t, err)
	_, err = svc.SetVerified(created.ID, true)
	require.NoError(t, err)

	locations, err := svc.TrendingLocations()
	require.NoError(t, err)

	cities := locations["cities"]
	require.NotEmpty(t, cities)
	assert.Equal(t, "Pune", cities[0].Value)
	assert.EqualValues(t, 3, cities[0].Count)
}
