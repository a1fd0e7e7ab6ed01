// Package production provides the file-facing integrations around the engine:
// loading and saving machine configs, and exporting them for visualization.
package production
