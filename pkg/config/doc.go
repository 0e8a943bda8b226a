// Package config loads signup page descriptions from JSON or YAML files and
// turns them into list editors and renderer page models.
package config
