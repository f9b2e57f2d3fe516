// Package api exposes a redis.Client over HTTP as a small key-value API.
//
//	GET    /kv?pattern=user:*   list keys
//	GET    /kv/*key             read a value and its TTL
//	PUT    /kv/*key             write {"value": "...", "ttl": "30s"}
//	DELETE /kv/*key             remove a key
//
// Keys run to the end of the path and may contain slashes.
//
// Failures use the errors.ErrorResponse envelope. A missing key is 404
// NOT_FOUND, an unattached extension 503 NOT_INITIALIZED and an
// unreachable server 503 CONNECTION_FAILED.
package api
