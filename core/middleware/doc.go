// Package middleware groups the fiber middleware shared by every catalog route.
//
//   - auth: rejects requests without the configured X-API-Key header (or api_key query
//     parameter). Paths listed in Config.Skip, such as the metrics endpoint, pass through.
//   - rayid: tags each request with an X-Ray-ID, reusing the caller's header when present,
//     so handler logs and responses can be correlated.
//
// rayid must run before the request logger and auth so rejected requests still carry an id.
package middleware
