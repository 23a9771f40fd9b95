// Package audit provides audit logging for hydra operations.
//
// This package implements structured audit logging for operations that
// change ownership or content, such as project sharing, usergroup
// membership changes and dataset access.
//
// # Event Types
//
//   - ProjectEvent: project and network create, update, delete, clone and share
//   - MembershipEvent: usergroup administration
//   - DataAccessEvent: dataset value queries and collection changes
//   - WhoamiEvent: identity checks
//
// # Usage
//
//	audit.Log(audit.ProjectEvent{
//	    UserID:    userID,
//	    ProjectID: projectID,
//	    Operation: "share",
//	    Success:   true,
//	})
//
// Events are written to stdout in RFC5424 syslog format and, when
// HYDRA_AUDIT_DATABASE_URL is set, persisted to the audit_events table.
// HYDRA_AUDIT_ENABLED=false turns audit logging off.
package audit
