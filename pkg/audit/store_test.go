package audit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreSave(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		sev     Severity
		fac     int
		msgID   string
		message string
	}{
		{
			name:    "project event",
			event:   ProjectEvent{UserID: 1, ClientIP: "10.0.0.1", ProjectID: 3, Operation: "delete", Success: true},
			sev:     SeverityInfo,
			fac:     FacilityAuthPriv,
			msgID:   "project",
			message: "user 1 performed delete on project 3",
		},
		{
			name:    "failed membership event",
			event:   MembershipEvent{UserID: 1, GroupID: 2, MemberID: 5, Operation: "remove-member", ErrorMessage: "not a member"},
			sev:     SeverityWarning,
			fac:     FacilityAuthPriv,
			msgID:   "usergroup",
			message: "user 1 failed to remove-member on user 5 in usergroup 2: not a member",
		},
		{
			name:    "whoami event",
			event:   WhoamiEvent{UserID: 1, Username: "root", Success: true},
			sev:     SeverityInfo,
			fac:     FacilityAuth,
			msgID:   "identity-check",
			message: "root checked its identity using whoami",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to create sqlmock: %v", err)
			}
			defer db.Close()

			store := NewStoreWithDB(db)

			mock.ExpectExec(`INSERT INTO audit_events`).
				WithArgs(
					tt.fac,           // facility
					int(tt.sev),      // severity
					sqlmock.AnyArg(), // timestamp
					sqlmock.AnyArg(), // hostname
					AppName,          // appname
					sqlmock.AnyArg(), // procid
					tt.msgID,         // msgid
					sqlmock.AnyArg(), // sdata (JSON)
					tt.message,       // message
				).
				WillReturnResult(sqlmock.NewResult(1, 1))

			if err := store.Save(tt.event); err != nil {
				t.Errorf("Save() error = %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestStoreNilDB(t *testing.T) {
	store := &Store{db: nil}

	// Should not error when db is nil
	err := store.Save(DataAccessEvent{UserID: 1, DatasetIDs: []int64{2}, Operation: "read", Success: true})
	if err != nil {
		t.Errorf("Save() with nil db should not error, got: %v", err)
	}
}

func TestStoreClose(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	store := NewStoreWithDB(db)

	mock.ExpectClose()

	err = store.Close()
	if err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreCloseNilDB(t *testing.T) {
	store := &Store{db: nil}

	err := store.Close()
	if err != nil {
		t.Errorf("Close() with nil db should not error, got: %v", err)
	}
}

func TestNewStoreWithoutURL(t *testing.T) {
	t.Setenv("HYDRA_AUDIT_DATABASE_URL", "")

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if store != nil {
		t.Error("Expected nil store without HYDRA_AUDIT_DATABASE_URL")
	}
}
