// Package cli provides the interactive Tijarah command-line client.
//
// It wires configuration, the session store, the API client and the services
// into a REPL. Every command belongs to a view (access.Route); before a command
// runs, the authorization guard decides whether the current session may enter
// that view, and redirects to login or home when it may not.
//
// Key features:
//   - Login / Logout / Register, with the banned-account flow
//   - Browse, show, create, edit, submit and delete listings; reviews
//   - A member's public listings
//   - Profile, password and phone numbers
//   - Admin console: dashboard, users (details, ban, restore, purge),
//     moderation, categories, support contact
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Command and runREPL for details.
package cli
