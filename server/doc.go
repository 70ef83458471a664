// Package server exposes corpus loading, matching, and export over HTTP.
package server
