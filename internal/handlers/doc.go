// Package handlers implements the HTTP API layer for the solver service.
//
// This package contains HTTP handlers that expose solve jobs via a RESTful
// API. Handlers delegate business logic to the services layer and focus on
// request validation, response formatting, and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request validation                                           │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  SolverService                                                  │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
//	┌────────┬──────────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint             │ Description                          │
//	├────────┼──────────────────────┼──────────────────────────────────────┤
//	│ POST   │ /jobs                │ Submit a problem, schedule its solve │
//	│ GET    │ /jobs                │ List jobs with filter/pagination     │
//	│ GET    │ /jobs/export         │ Download all jobs as xlsx            │
//	│ GET    │ /jobs/{id}           │ Get job status                       │
//	│ GET    │ /jobs/{id}/solution  │ Wait for and fetch the solution      │
//	│ DELETE │ /jobs/{id}           │ Request early termination            │
//	└────────┴──────────────────────┴──────────────────────────────────────┘
//
// GET /jobs/{id}/solution is a long poll: it blocks until the job reaches
// its terminal state or the request context ends, then returns the final
// (possibly best-so-far) solution document.
//
// # Error Handling
//
// Handlers use a consistent error response format:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ Validation error            │ 400    │ Invalid request params       │
//	│ ResourceNotFoundError       │ 404    │ Job/problem doesn't exist    │
//	│ Request context ended       │ 408    │ Solution wait timed out      │
//	│ ExecutionError              │ 500    │ Solve failed                 │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
//
// # Framework
//
// The package uses the Gin web framework. Routes are registered through
// v1.RegisterHandlers against the ServerInterface this Handler implements.
package handlers
