// Package api is the single data-access module for the playlist backend.
//
// Every remote operation the client performs goes through one [Client] with
// one explicit credential policy: a cookie jar on the shared http.Client, so
// the backend's session cookie is attached to every call. Mutating playlist
// and song calls use multipart form bodies while auth calls use JSON bodies;
// the split is the backend's wire contract and is preserved as-is.
package api
