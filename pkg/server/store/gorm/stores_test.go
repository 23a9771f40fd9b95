package gorm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/model"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 sqlDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)
	return db, mock
}

func TestProjectsStore_GetProjectNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE "projects"."id" = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	project, err := NewProjectsStore(db).GetProject(7)

	assert.Nil(t, project)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectsStore_ProjectNameExists(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{"taken", 1, true},
		{"free", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery(`SELECT count\(\*\) FROM "projects" WHERE name = \$1 AND created_by = \$2`).
				WithArgs("Thames", 3).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			exists, err := NewProjectsStore(db).ProjectNameExists("Thames", 3)

			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProjectsStore_SetProjectStatus(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET "status"=\$1`).
		WithArgs(model.StatusDeleted, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewProjectsStore(db).SetProjectStatus(3, model.StatusDeleted)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectsStore_DeleteMissingProject(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "projects" WHERE "projects"."id" = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewProjectsStore(db).DeleteProject(9)

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetsStore_GetDataset(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "datasets" WHERE "datasets"."id" = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "name", "unit", "hash", "value"}).
			AddRow(5, "timeseries", "flow", "m^3", "abc", `{"0":{"2014-01-01T00:00:00":1}}`))

	dataset, err := NewDatasetsStore(db).GetDataset(5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), dataset.ID)
	assert.Equal(t, model.DataTypeTimeseries, dataset.Type)
	assert.Equal(t, "flow", dataset.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetsStore_RemoveCollectionItem(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{"removed", 1, nil},
		{"not in collection", 0, store.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			mock.ExpectExec(`DELETE FROM "dataset_collection_items" WHERE collection_id = \$1 AND dataset_id = \$2`).
				WithArgs(2, 8).
				WillReturnResult(sqlmock.NewResult(0, tt.rows))
			mock.ExpectCommit()

			err := NewDatasetsStore(db).RemoveCollectionItem(2, 8)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUsersStore_UserPermCodes(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT DISTINCT perms.code FROM "perms" JOIN role_perms`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("add_project").AddRow("get_project"))

	codes, err := NewUsersStore(db).UserPermCodes(4)

	require.NoError(t, err)
	assert.Equal(t, []string{"add_project", "get_project"}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_GetUserByNameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	_, err := NewUsersStore(db).GetUserByName("nobody")

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGroupsStore_RemoveMember(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "usergroup_members" WHERE usergroup_id = \$1 AND user_id = \$2`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewUserGroupsStore(db).RemoveMember(1, 2)

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGroupsStore_ListChildGroups(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "usergroups" WHERE parent_id = \$1 ORDER BY id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type_id", "parent_id"}).
			AddRow(2, "north", 1, 1).
			AddRow(3, "south", 1, 1))
	mock.ExpectQuery(`SELECT \* FROM "usergroup_types" WHERE "usergroup_types"."id" = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "team"))

	groups, err := NewUserGroupsStore(db).ListChildGroups(1)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "north", groups[0].Name)
	require.NotNil(t, groups[1].GroupType)
	assert.Equal(t, "team", groups[1].GroupType.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStores_TransactionRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := NewStores(db).Transaction(context.Background(), func(s store.Stores) error {
		assert.NotNil(t, s.Projects())
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthStore_CheckConnectivity(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`SELECT 1 FROM users LIMIT 1`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, NewHealthStore(db).CheckConnectivity())
	assert.NoError(t, mock.ExpectationsWereMet())
}
