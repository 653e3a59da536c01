// Package audit records security and business relevant tripdesk events.
//
// Events are written as RFC5424 syslog lines to stdout and, when
// TRIPDESK_AUDIT_DATABASE_URL is set, also appended to the audit_events table.
//
// # Event Types
//
//   - authn: signup, login and OAuth callbacks
//   - order: order creation, including reuse of a pending duplicate
//   - payment: verification and webhook outcomes
//   - lead: contact form submissions
//   - content: admin changes to destinations, packages and blog posts
//
// # Usage
//
//	audit.Log(audit.LeadEvent{LeadID: lead.ID, Source: "contact", ClientIP: ip})
//
// Set TRIPDESK_AUDIT_ENABLED=false to turn auditing off.
package audit
