// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The central entity is Task, whose priority tier and advisory note are
// derived by Score from the task's deadline, effort estimate and flags.
package domain
