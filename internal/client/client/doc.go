// Package client is the typed API of the video-generation backend.
//
// # Overview
//
// The package provides:
//  1. Narrow API contracts (AuthAPI, VideoAPI, AdminAPI, combined as Client)
//     consumed by the session store and the services.
//  2. HTTPClient, a REST implementation over two rest.Requesters: one that
//     attaches the persisted bearer token and one for public endpoints.
//  3. Explicit response contracts per endpoint, decoded and validated at this
//     boundary so callers only ever see models types.
//  4. Local database bootstrap (InitDatabase) for the sqlite file that holds
//     the persisted session token.
//
// # Error Handling
//
// Callers match failures with errors.Is: ErrUnavailable (no response),
// ErrUnauthorized (401/403), ErrNotFound (404), ErrInvalidResponse (the body
// broke its contract). Server-reported failures are *APIError values; use
// Message to extract the displayable text.
package client
