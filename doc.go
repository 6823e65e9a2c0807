// Package hostreg is the registry of measurement hosts.
//
// # Overview
//
// Hosts are the endpoints that measurement meshes are built from. A host is
// either discovered (materialized from a lookup service record, carrying an
// lsid) or adhoc (registered by hand). Hostgroups list hosts, mesh configs
// name them as test centers or excluded hosts, and a host's services may
// point at another host acting as its measurement archive (MA).
//
// The registry lets users list, register, update and remove hosts while
// keeping those references intact: a host cannot be removed while anything
// still points at it.
//
//	┌─────────────────┐       ┌─────────────────┐
//	│  API Server     │──────►│ Profile Service │
//	│  (Echo REST)    │       │ (admin lookup)  │
//	└────────┬────────┘       └─────────────────┘
//	         │
//	┌────────▼────────┐
//	│  Registry       │
//	│  (authz, deps)  │
//	└────────┬────────┘
//	         │
//	┌────────▼────────┐
//	│  Storage Layer  │
//	│  (MongoDB)      │
//	└─────────────────┘
//
// # Usage
//
// Start the API server:
//
//	hostreg server --config configs/config.yaml
//
// Issue a development token and load fixtures:
//
//	hostreg token 42 --scope user
//	hostreg seed fixtures.yaml
//
// Check what still references a host:
//
//	hostreg deps 5c1a7e0b2f
//
// # Configuration
//
// Configuration can be provided via:
//   - YAML file (configs/config.yaml)
//   - Environment variables (HR_ prefix)
//   - .env file
//
// Example configuration:
//
//	server:
//	  port: 8080
//	mongodb:
//	  uri: mongodb://localhost:27017
//	  database: pwa
//	profile:
//	  url: http://localhost:8081/api/auth
//	  token: eyJhbGciOi...
//	security:
//	  jwt_secret: change-me
//
// # API Endpoints
//
// Hosts:
//   - GET    /api/v1/hosts                 - List hosts (find, select, sort, limit, skip)
//   - GET    /api/v1/hosts/:id             - Get host by ID
//   - GET    /api/v1/hosts/:id/admins      - Resolve host admins to profiles
//   - GET    /api/v1/hosts/:id/dependents  - Records referencing the host
//   - POST   /api/v1/hosts                 - Register an adhoc host
//   - PUT    /api/v1/hosts/:id             - Update host
//   - DELETE /api/v1/hosts/:id             - Remove an unreferenced host
//
// Other:
//   - POST /api/v1/validate/host  - Validate a registration request
//   - GET  /api/v1/stats          - Host counts
//   - GET  /api/v1/ws/hosts       - Real-time host events
//   - GET  /api/v1/ws/stats       - WebSocket statistics
//   - GET  /docs/index.html       - Swagger UI
//
// # Development
//
// Run tests:
//
//	go test ./...
//
// Run integration tests (starts a MongoDB container; set HR_TEST_MONGODB_URI
// to use an existing server instead):
//
//	go test -tags=integration ./internal/storage/...
//
// Build the binary:
//
//	go build -o hostreg ./cmd/hostreg
package hostreg
