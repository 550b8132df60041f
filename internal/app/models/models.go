// Package models defines the persistent entities of the exam-attendance
// system: the academic reference data (schools, departments, levels,
// courses), the enrolled students with their fingerprint templates, the
// per-course enrollment ledger, the timed exam sessions, and the attendance
// and error-log records written during authentication.
package models
