package hydra

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/audit"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/config"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/flatten"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/identity"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/metrics"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/store"
)

// Service implements the hydra library operations on top of the stores.
type Service struct {
	stores    store.Stores
	config    func() *config.HydraConfig
	log       *logrus.Entry
	flattener *flatten.Flattener
	db        *gorm.DB
	audit     func(audit.Event)
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Service) { s.log = log }
}

// WithConfig sets the config source. Defaults to config.Get.
func WithConfig(get func() *config.HydraConfig) Option {
	return func(s *Service) { s.config = get }
}

// WithDB lets record flattening load relationships that were not preloaded.
func WithDB(db *gorm.DB) Option {
	return func(s *Service) { s.db = db }
}

// WithAudit replaces the audit sink. Defaults to audit.Log.
func WithAudit(sink func(audit.Event)) Option {
	return func(s *Service) { s.audit = sink }
}

// New creates a Service.
func New(stores store.Stores, opts ...Option) *Service {
	s := &Service{
		stores:    stores,
		config:    config.Get,
		log:       logrus.NewEntry(logrus.StandardLogger()),
		flattener: flatten.New(),
		audit:     audit.Log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "hydra")
	return s
}

// Stores returns the stores the service works with.
func (s *Service) Stores() store.Stores {
	return s.stores
}

// track records the outcome of an operation. err must point at the
// operation's named error result.
func (s *Service) track(op string, start time.Time, err *error) {
	metrics.RecordOperation(op, start, *err)
	if *err != nil && !fault.IsPermission(*err) && !fault.IsNotFound(*err) && !fault.IsValidation(*err) {
		s.log.WithField("operation", op).WithError(*err).Error("operation failed")
	}
}

// caller returns the client ip and request id carried by ctx.
func caller(ctx context.Context) (string, string) {
	id, ok := identity.Get(ctx)
	if !ok {
		return "", ""
	}
	return id.ClientIP(), id.RequestID
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (s *Service) auditProject(ctx context.Context, userID, projectID, networkID int64, op string, err error) {
	ip, requestID := caller(ctx)
	s.audit(audit.ProjectEvent{
		UserID:       userID,
		ClientIP:     ip,
		RequestID:    requestID,
		ProjectID:    projectID,
		NetworkID:    networkID,
		Operation:    op,
		Success:      err == nil,
		ErrorMessage: errorMessage(err),
	})
}

func (s *Service) auditMembership(ctx context.Context, userID, groupID, memberID int64, op string, err error) {
	ip, requestID := caller(ctx)
	s.audit(audit.MembershipEvent{
		UserID:       userID,
		ClientIP:     ip,
		RequestID:    requestID,
		GroupID:      groupID,
		MemberID:     memberID,
		Operation:    op,
		Success:      err == nil,
		ErrorMessage: errorMessage(err),
	})
}

func (s *Service) auditData(ctx context.Context, userID int64, datasetIDs []int64, collectionID int64, op string, err error) {
	ip, requestID := caller(ctx)
	s.audit(audit.DataAccessEvent{
		UserID:       userID,
		ClientIP:     ip,
		RequestID:    requestID,
		DatasetIDs:   datasetIDs,
		CollectionID: collectionID,
		Operation:    op,
		Success:      err == nil,
		ErrorMessage: errorMessage(err),
	})
}
