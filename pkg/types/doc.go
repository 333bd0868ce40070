// Package types defines the Store, Session and table interfaces, the Team and
// Item entities with their create/update/read shapes, and the standard errors
// for the todolist service.
package types
