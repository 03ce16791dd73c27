// Package ws implements the WebSocket stream behind the live reading-time
// sidebar.
//
// Hub.ServeHTTP upgrades a connection and sends the current rows at once;
// Hub.Run rebroadcasts on an interval until its context ends, and
// Hub.Notify pushes immediately after a store write. Every message is:
//
//	{
//	  "event": "results",
//	  "data":  { /* same schema as GET /api/v1/results */ }
//	}
//
// The upgrader accepts all origins. The CLI mounts the hub at /ws/results.
package ws
