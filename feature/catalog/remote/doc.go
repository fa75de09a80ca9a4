// Package remote is the HTTP client for the e-commerce platform's REST Admin API.
//
// Client implements the sync's RemoteCatalog: product listing with cursor
// pagination (Link: <...>; rel="next"), product create and full replace,
// quantity-only partial updates and product images. Every request carries the
// access token header. A network failure or a non-2xx status is returned as a
// *reconcile.TransportError holding the method, path, status and response body.
//
// Prober implements ImageProber by fetching a URL and checking its media type.
package remote
