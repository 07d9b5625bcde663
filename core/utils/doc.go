// Package utils provides common utility functions for gallery-manager.
// It includes type coercion helpers for the loosely typed values that
// come back from raw Gallery 2 row scans.
package utils
