// Package session manages the client half of an authentication lifecycle:
// exchanging credentials with a remote identity service, persisting the
// bearer token across restarts, and gating access to protected views.
//
// Lifecycle:
//   - Client is the single gateway to the identity service and the sole
//     owner of the durable token slot. Construct one per process and share
//     it by reference; SignIn returns the resolved identity/token pair
//     without committing it anywhere.
//   - Manager owns the commit step: the durable token is written first,
//     then the in-memory Store, so the access Gate can never observe an
//     authenticated store without a persisted token.
//   - Store holds the current Identity in memory and notifies subscribers
//     on every change. A durable token alone is never enough to be
//     authenticated; the identity must have been committed explicitly.
//
// Access control:
//   - Gate decides render-vs-redirect from Store state alone. Bootstrap
//     reconciles token presence with Store state when a protected view
//     mounts (Checking -> Authorized | Redirecting). Both layers must pass
//     before protected content renders.
package session
