// Package ucm talks to an Oracle WebCenter Content server through its
// idcplg HTTP interface.
//
// A Client owns the HTTP transport. Connect validates the service URL and
// checks the credentials with an authenticated PING_SERVER call; the returned
// Session sends one DELETE_DOC request per call. The server does not say
// whether a delete removed anything, so callers can only inspect the
// transport status of each response (see TransportStatus).
package ucm
