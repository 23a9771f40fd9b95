package audit

import (
	"fmt"
	"strconv"
	"strings"
)

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func severity(success bool) Severity {
	if success {
		return SeverityInfo
	}
	return SeverityWarning
}

func withError(msg, errMsg string) string {
	if errMsg != "" {
		msg += ": " + errMsg
	}
	return msg
}

func client(ip, requestID string) map[string]string {
	sd := map[string]string{"ip": ip}
	if requestID != "" {
		sd["request"] = requestID
	}
	return sd
}

// ProjectEvent records a change to a project or one of its networks
type ProjectEvent struct {
	UserID       int64
	ClientIP     string
	RequestID    string
	ProjectID    int64
	NetworkID    int64
	Operation    string // "create", "update", "status", "delete", "clone", "share", "add-network", "clone-network"
	Success      bool
	ErrorMessage string
}

func (e ProjectEvent) MessageID() string {
	return "project"
}

func (e ProjectEvent) target() string {
	if e.NetworkID != 0 {
		return fmt.Sprintf("network %d of project %d", e.NetworkID, e.ProjectID)
	}
	return fmt.Sprintf("project %d", e.ProjectID)
}

func (e ProjectEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("user %d performed %s on %s", e.UserID, e.Operation, e.target())
	}
	return withError(fmt.Sprintf("user %d failed to %s %s", e.UserID, e.Operation, e.target()), e.ErrorMessage)
}

func (e ProjectEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ProjectEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ProjectEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDSubject: {
			"project": strconv.FormatInt(e.ProjectID, 10),
		},
		SDIDClient: client(e.ClientIP, e.RequestID),
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.NetworkID != 0 {
		sd[SDIDSubject]["network"] = strconv.FormatInt(e.NetworkID, 10)
	}
	return sd
}

// MembershipEvent records a usergroup administration change
type MembershipEvent struct {
	UserID       int64
	ClientIP     string
	RequestID    string
	GroupID      int64
	MemberID     int64
	Operation    string // "create-group", "delete-group", "add-member", "remove-member", "set-role"
	Success      bool
	ErrorMessage string
}

func (e MembershipEvent) MessageID() string {
	return "usergroup"
}

func (e MembershipEvent) Message() string {
	target := fmt.Sprintf("usergroup %d", e.GroupID)
	if e.MemberID != 0 {
		target = fmt.Sprintf("user %d in usergroup %d", e.MemberID, e.GroupID)
	}
	if e.Success {
		return fmt.Sprintf("user %d performed %s on %s", e.UserID, e.Operation, target)
	}
	return withError(fmt.Sprintf("user %d failed to %s on %s", e.UserID, e.Operation, target), e.ErrorMessage)
}

func (e MembershipEvent) Severity() Severity {
	return severity(e.Success)
}

func (e MembershipEvent) Facility() int {
	return FacilityAuthPriv
}

func (e MembershipEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDSubject: {
			"usergroup": strconv.FormatInt(e.GroupID, 10),
		},
		SDIDClient: client(e.ClientIP, e.RequestID),
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.MemberID != 0 {
		sd[SDIDSubject]["member"] = strconv.FormatInt(e.MemberID, 10)
	}
	return sd
}

// DataAccessEvent records a dataset value query or collection change
type DataAccessEvent struct {
	UserID       int64
	ClientIP     string
	RequestID    string
	DatasetIDs   []int64
	CollectionID int64
	Operation    string // "read", "read-range", "add-collection", "add-to-collection", ...
	Success      bool
	ErrorMessage string
}

func (e DataAccessEvent) MessageID() string {
	return "data"
}

func (e DataAccessEvent) datasets() string {
	ids := make([]string, len(e.DatasetIDs))
	for i, id := range e.DatasetIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(ids, ",")
}

func (e DataAccessEvent) Message() string {
	target := "datasets " + e.datasets()
	if e.CollectionID != 0 {
		target = fmt.Sprintf("collection %d", e.CollectionID)
	}
	if e.Success {
		return fmt.Sprintf("user %d performed %s on %s", e.UserID, e.Operation, target)
	}
	return withError(fmt.Sprintf("user %d failed to %s on %s", e.UserID, e.Operation, target), e.ErrorMessage)
}

func (e DataAccessEvent) Severity() Severity {
	return severity(e.Success)
}

func (e DataAccessEvent) Facility() int {
	return FacilityAuthPriv
}

func (e DataAccessEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDData: {},
		SDIDClient: client(e.ClientIP, e.RequestID),
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if len(e.DatasetIDs) > 0 {
		sd[SDIDData]["datasets"] = e.datasets()
	}
	if e.CollectionID != 0 {
		sd[SDIDData]["collection"] = strconv.FormatInt(e.CollectionID, 10)
	}
	return sd
}

// WhoamiEvent represents a whoami audit event
type WhoamiEvent struct {
	UserID    int64
	Username  string
	ClientIP  string
	RequestID string
	Success   bool
}

func (e WhoamiEvent) MessageID() string {
	return "identity-check"
}

func (e WhoamiEvent) Message() string {
	return fmt.Sprintf("%s checked its identity using whoami", e.Username)
}

func (e WhoamiEvent) Severity() Severity {
	return severity(e.Success)
}

func (e WhoamiEvent) Facility() int {
	return FacilityAuth
}

func (e WhoamiEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDClient: client(e.ClientIP, e.RequestID),
		SDIDAction: {
			"operation": "check",
			"result":    result(e.Success),
		},
	}
}
