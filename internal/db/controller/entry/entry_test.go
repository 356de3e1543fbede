package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/db/dbtest"
	"github.com/orkank/AppConfig/internal/db/models"
	"github.com/orkank/AppConfig/internal/value"
)

func uintPtr(v uint) *uint { return &v }

func seedGroup(t *testing.T, db *gorm.DB, code string, active bool) models.Group {
	t.Helper()

	g := models.Group{Name: code, Code: code, IsActive: active}
	require.NoError(t, db.Create(&g).Error)

	return g
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		in       models.Entry
		wantType value.Type
		check    func(t *testing.T, e models.Entry)
	}{
		{
			name:     "zero group id means ungrouped",
			in:       models.Entry{KeyName: " k ", GroupID: uintPtr(0), TextValue: "x"},
			wantType: value.TypeText,
			check: func(t *testing.T, e models.Entry) {
				assert.Nil(t, e.GroupID)
				assert.Equal(t, "k", e.KeyName)
			},
		},
		{
			name:     "empty list payloads are cleared",
			in:       models.Entry{KeyName: "k", ProductsValue: "[]", CMSPagesValue: "{bad", JSONValue: `{"a":1}`},
			wantType: value.TypeJSON,
			check: func(t *testing.T, e models.Entry) {
				assert.Empty(t, e.ProductsValue)
				assert.Empty(t, e.CMSPagesValue)
			},
		},
		{
			name:     "cms has priority",
			in:       models.Entry{KeyName: "k", CMSPagesValue: "[1]", ProductsValue: "[2]", TextValue: "t"},
			wantType: value.TypeCMS,
		},
		{
			name:     "no payload keeps given type",
			in:       models.Entry{KeyName: "k", ValueType: value.TypeProducts},
			wantType: value.TypeProducts,
		},
		{
			name:     "no payload defaults to text",
			in:       models.Entry{KeyName: "k"},
			wantType: value.TypeText,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.in
			Normalize(&e)
			assert.Equal(t, tc.wantType, e.ValueType)

			if tc.check != nil {
				tc.check(t, e)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	db := dbtest.Open(t)
	g := seedGroup(t, db, "promo", true)

	require.NoError(t, Create(db, &models.Entry{KeyName: "banner", GroupID: uintPtr(g.ID), TextValue: "SALE", IsActive: true}))
	require.NoError(t, Create(db, &models.Entry{KeyName: "banner", TextValue: "default", IsActive: true}))

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		entry         models.Entry
		expectedError error
	}{
		{name: "nil database", entry: models.Entry{KeyName: "a"}, expectedError: ErrDBNil},
		{name: "empty key", dbParam: db, entry: models.Entry{KeyName: " "}, expectedError: ErrKeyNameEmpty},
		{name: "invalid type", dbParam: db, entry: models.Entry{KeyName: "a", ValueType: "image"}, expectedError: ErrInvalidValueType},
		{name: "unknown group", dbParam: db, entry: models.Entry{KeyName: "a", GroupID: uintPtr(999)}, expectedError: ErrUnknownGroup},
		{name: "duplicate in group", dbParam: db, entry: models.Entry{KeyName: "banner", GroupID: uintPtr(g.ID)}, expectedError: ErrEntryAlreadyExists},
		{name: "duplicate ungrouped", dbParam: db, entry: models.Entry{KeyName: "banner", GroupID: uintPtr(0)}, expectedError: ErrEntryAlreadyExists},
		{name: "same key other group", dbParam: db, entry: models.Entry{KeyName: "banner", GroupID: uintPtr(seedGroup(t, db, "home", true).ID)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.entry
			err := Create(tc.dbParam, &e)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, e.ID)
		})
	}
}

func TestListActiveAndFindFirstActive(t *testing.T) {
	db := dbtest.Open(t)
	promo := seedGroup(t, db, "promo", true)
	home := seedGroup(t, db, "home", true)

	for _, e := range []models.Entry{
		{KeyName: "banner", GroupID: uintPtr(promo.ID), TextValue: "SALE", IsActive: true},
		{KeyName: "banner", GroupID: uintPtr(home.ID), TextValue: "HOME", IsActive: true},
		{KeyName: "banner", TextValue: "DEFAULT", IsActive: true},
		{KeyName: "hidden", TextValue: "x", IsActive: false},
	} {
		require.NoError(t, Create(db, &e))
	}

	all, err := ListActive(db, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := ListActive(db, "promo")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "SALE", scoped[0].TextValue)

	none, err := ListActive(db, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)

	first, err := FindFirstActive(db, "banner", "")
	require.NoError(t, err)
	assert.Equal(t, "SALE", first.TextValue)

	first, err = FindFirstActive(db, "banner", "home")
	require.NoError(t, err)
	assert.Equal(t, "HOME", first.TextValue)

	_, err = FindFirstActive(db, "hidden", "")
	require.ErrorIs(t, err, ErrEntryNotFound)

	_, err = FindFirstActive(db, "", "")
	require.ErrorIs(t, err, ErrKeyNameEmpty)
}

func TestList(t *testing.T) {
	db := dbtest.Open(t)
	g := seedGroup(t, db, "promo", true)

	require.NoError(t, Create(db, &models.Entry{KeyName: "a", GroupID: uintPtr(g.ID), TextValue: "x"}))
	require.NoError(t, Create(db, &models.Entry{KeyName: "b", JSONValue: "{}"}))

	grouped, err := List(db, Filter{GroupID: uintPtr(g.ID)})
	require.NoError(t, err)
	require.Len(t, grouped, 1)
	assert.Equal(t, "a", grouped[0].KeyName)

	ungrouped, err := List(db, Filter{Ungrouped: true})
	require.NoError(t, err)
	require.Len(t, ungrouped, 1)
	assert.Equal(t, value.TypeJSON, ungrouped[0].ValueType)

	byType, err := List(db, Filter{ValueType: value.TypeText})
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	all, err := List(db, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateDeleteAndStatus(t *testing.T) {
	db := dbtest.Open(t)

	a := models.Entry{KeyName: "a", TextValue: "x"}
	b := models.Entry{KeyName: "b", TextValue: "y"}
	require.NoError(t, Create(db, &a))
	require.NoError(t, Create(db, &b))

	err := Update(db, &models.Entry{ID: 999, KeyName: "z"})
	require.ErrorIs(t, err, ErrEntryNotFound)

	err = Update(db, &models.Entry{ID: a.ID, KeyName: "b"})
	require.ErrorIs(t, err, ErrEntryAlreadyExists)

	upd := models.Entry{ID: a.ID, KeyName: "a", ProductsValue: `[{"id": 1}]`, TextValue: "stale"}
	require.NoError(t, Update(db, &upd))

	stored, err := Get(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, value.TypeProducts, stored.ValueType)
	assert.Equal(t, a.CreatedAt.Unix(), stored.CreatedAt.Unix())

	n, err := SetStatus(db, []uint{a.ID, b.ID}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = SetStatus(db, nil, true)
	require.ErrorIs(t, err, ErrNoIDs)

	require.NoError(t, Delete(db, a.ID))
	require.ErrorIs(t, Delete(db, a.ID), ErrEntryNotFound)

	deleted, err := DeleteAll(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
