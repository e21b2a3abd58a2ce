// Package config holds the process-level configuration: provider credentials
// read from the environment and the Panel describing who speaks, on which
// model, and in what order.
package config
