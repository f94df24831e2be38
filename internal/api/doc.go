// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and
// the UserDirectory, translating its typed failures into HTTP status codes:
// not found 404, conflict 409, invalid input or failed validation 400,
// anything else 500.
package api
