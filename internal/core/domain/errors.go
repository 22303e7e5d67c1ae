package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetAlreadyExists is returned when attempting to add a target with a name that already exists.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrMissingDependency is returned when a target references a prerequisite that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the target dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTargetNotFound is returned when a requested target is not found in the graph.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrBuildExecutionFailed is returned when a target in the chain fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTargetFailed wraps the error of a failing target.
	ErrTargetFailed = zerr.New("target failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileReadFailed is returned when the .env overlay exists but cannot be read.
	ErrEnvFileReadFailed = zerr.New("failed to read env file")

	// ErrMissingProjectName is returned when the configuration has no project name.
	ErrMissingProjectName = zerr.New("missing project name")

	// ErrDuplicateBuildName is returned when two build configurations share a name.
	ErrDuplicateBuildName = zerr.New("duplicate build name")

	// ErrInvalidBuildName is returned when a build name contains characters not allowed in a target name.
	ErrInvalidBuildName = zerr.New("build name can only contain alphanumeric characters, dots, hyphens and underscores")

	// ErrMissingScaffoldFile is returned when a required scaffold file is absent.
	ErrMissingScaffoldFile = zerr.New("missing scaffold file")

	// ErrUnsupportedVersionFile is returned when a version file has an unknown extension.
	ErrUnsupportedVersionFile = zerr.New("unsupported version file, expected .cs, .fs or .vb")

	// ErrMissingVersion is returned when no version is configured or found in the release notes.
	ErrMissingVersion = zerr.New("missing version")

	// ErrReleaseNotesParseFailed is returned when the release notes cannot be parsed.
	ErrReleaseNotesParseFailed = zerr.New("failed to parse release notes")

	// ErrInvalidToolArgs is returned when a tool argument template cannot be rendered.
	ErrInvalidToolArgs = zerr.New("invalid tool arguments")

	// ErrMissingTool is returned when a target needs a tool that is not configured.
	ErrMissingTool = zerr.New("tool is not configured")

	// ErrToolFailed is returned when an external tool exits unsuccessfully.
	ErrToolFailed = zerr.New("tool failed")

	// ErrNoProjectFiles is returned when a build configuration matches no project files.
	ErrNoProjectFiles = zerr.New("no project files found")

	// ErrNoTestAssemblies is logged when the test runner finds nothing to run.
	ErrNoTestAssemblies = zerr.New("no test assemblies found")

	// ErrDocGenerationFailed is returned when the documentation generator reports failure.
	ErrDocGenerationFailed = zerr.New("documentation generation failed")

	// ErrAborted is returned when the operator declines a confirmation prompt.
	ErrAborted = zerr.New("aborted by user")

	// ErrRemoteNotFound is returned when the configured git remote does not exist.
	ErrRemoteNotFound = zerr.New("git remote not found")
)
