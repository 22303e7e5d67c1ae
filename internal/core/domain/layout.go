package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the build configuration file.
	ConfigFileName = "build.yaml"

	// EnvFileName is the name of the optional environment overlay next to the config file.
	EnvFileName = ".env"

	// ReleaseNotesFileName is the default release notes file.
	ReleaseNotesFileName = "RELEASE_NOTES.md"

	// DefaultTarget is the target run when none is given on the command line.
	DefaultTarget = "All"

	// SingleSuffix turns any target name into its standalone variant.
	SingleSuffix = "_single"

	// DefaultBuildName is the name reported for a build configuration without a custom name.
	DefaultBuildName = "main"

	// ReleaseLibDirName is the directory under the release dir that receives build outputs.
	ReleaseLibDirName = "lib"

	// TestResultsFileName is the name of the test runner's result log.
	TestResultsFileName = "TestResults.trx"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// OutputDir returns the compiler output directory for a build configuration.
func (c *Config) OutputDir(p BuildParam) string {
	return filepath.Join(c.BuildDir, p.SimpleName())
}

// TestOutputDir returns the compiler output directory for the test projects of a build configuration.
func (c *Config) TestOutputDir(p BuildParam) string {
	return filepath.Join(c.TestDir, p.SimpleName())
}

// ReleaseLibDir returns the release directory that receives the files of a build configuration.
func (c *Config) ReleaseLibDir(p BuildParam) string {
	return filepath.Join(c.ReleaseDir, ReleaseLibDirName, p.SimpleName())
}

// TestResultsPath returns the test runner log path for a build configuration.
func (c *Config) TestResultsPath(p BuildParam) string {
	return filepath.Join(c.TestOutputDir(p), TestResultsFileName)
}
