// Package utils provides helpers shared by the kv-storage commands for turning
// command-line arguments into JSON values and rendering stored values.
package utils
