package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# semrel configuration
# Every key can be overridden with SEMREL_<KEY>, using __ for nesting
# (e.g. SEMREL_MANIFEST__PATH=Info.plist).

repo: .                               # Path inside the git repository
tag_prefix: v                         # Stripped from tags before parsing (v1.2.3 -> 1.2.3)

manifest:
  path: ""                            # Manifest file (empty = versions from tags only)
  format: ""                          # yaml | json | plist (empty = from extension)
  version_key: ""                     # Version field (default: version / CFBundleShortVersionString)
  build_key: ""                       # Build counter field (default: build / CFBundleVersion)
  create: false                       # Create the manifest on first bump

notes:
  output: release-notes/release-notes.md
  summary_file: release-summary.json  # Written next to the notes file
  compact: false                      # Only breaking changes and change lists

bump:
  output_json: ""                     # Write the bump result record here
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"repo":       ".",
		"tag_prefix": "v",
		"manifest": map[string]interface{}{
			"path":        "",
			"format":      "",
			"version_key": "",
			"build_key":   "",
			"create":      false,
		},
		"notes": map[string]interface{}{
			"output":       "release-notes/release-notes.md",
			"summary_file": "release-summary.json",
			"compact":      false,
		},
		"bump": map[string]interface{}{
			"output_json": "",
		},
	}
}
