// Package http provides the HTTP adapters for the notes service.
//
// Routes:
//   - GET /api/documents: categories with their markdown files
//   - GET /api/document/{dir}/{file...}: raw document content, or rendered
//     HTML and frontmatter with ?render=html
//   - GET /healthz: liveness
//   - GET /metrics: Prometheus exposition (optional, path configurable)
//   - GET /, /docs/...: the frontend entry page
//   - GET /{path}: static assets from the static directory
//
// Errors are written as {"error": "..."} bodies.
package http
