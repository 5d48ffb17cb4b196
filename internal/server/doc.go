// Package server provides HTTP routing, middleware, and the handlers of the ytq web API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Playback Queue
//
// [QueueHandlers] expose the shared queue:
//   - GET /api/queue returns every record in order, exactly as submitted
//   - POST /api/queue/add appends one JSON object (201)
//   - POST /api/queue/move relocates a record by index (200, out-of-range indices are a no-op)
//
// Records are opaque JSON objects. The server never inspects their keys.
//
// # Live Updates
//
// [QueueHub] upgrades GET /api/queue/ws to a websocket and pushes the whole queue after each mutation.
//
// # Authentication
//
// [Authenticate] resolves `Authorization: Bearer <api key>` into a user on the request context.
// Queue mutations require it when server.require_auth is set. Playlist creation and account endpoints always do.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
