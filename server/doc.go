// Package server exposes a loaded snapshot over HTTP and a websocket slider channel.
package server
