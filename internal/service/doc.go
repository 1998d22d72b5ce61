// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the task
// store (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection: the
// store, a clock used as "now" when scoring, and a logger. Raw client values
// such as deadlines and effort estimates are parsed here, at the boundary,
// so that the store only ever holds valid tasks.
package service
