// Package config loads, normalizes, and validates filesorter configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the FILESORTER_SOURCE / FILESORTER_DESTINATION
// environment fallbacks. Command code obtains settings through Load so every
// downstream package receives absolute paths and a validated collision policy.
package config
