// Package ws implements the WebSocket hub for supplylens-server.
//
// Hub manages a set of connected clients and pushes each of them the
// dashboard for the filters given on its connection URL, on a configurable
// interval (stream.interval, default 10s) and after every dataset reload.
//
// Message format sent to clients:
//
//	{
//	  "event": "dashboard",
//	  "data":  { /* same schema as GET /api/v1/dashboard */ }
//	}
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. The endpoint is mounted at /ws/stream by the server.
package ws
