package config

import "path/filepath"

// ProjectConfigDirName is the per-repository configuration directory.
const ProjectConfigDirName = ".semrel"

// ProjectConfigDir returns the project config directory under dir.
// An empty dir means the current directory.
func ProjectConfigDir(dir string) string {
	return filepath.Join(dir, ProjectConfigDirName)
}

// ProjectConfigPath returns the path to the project-level YAML config file.
func ProjectConfigPath(dir string) string {
	return filepath.Join(ProjectConfigDir(dir), "config.yml")
}

// ProjectJSONConfigPath returns the path to the project-level JSON config file.
func ProjectJSONConfigPath(dir string) string {
	return filepath.Join(ProjectConfigDir(dir), "config.json")
}
