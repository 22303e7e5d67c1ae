package ports

import (
	"context"

	"go.trai.ch/dotbuild/internal/core/domain"
)

// VersionControl defines the operations the build needs from the version-control client.
//
//go:generate go run go.uber.org/mock/mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VersionControl interface {
	// ChangedFiles lists the modified, added and untracked files of the working copy at dir.
	ChangedFiles(dir string) ([]domain.FileChange, error)
	// StageAll stages every change of the working copy at dir, including removals.
	StageAll(dir string) error
	// Commit records the staged changes at dir with the given message.
	Commit(dir, message string) error
	// CloneSingleBranch clones only branch of url into dir.
	CloneSingleBranch(ctx context.Context, url, branch, dir string) error
	// Push pushes branch of the repository at dir to remote.
	Push(ctx context.Context, dir, remote, branch string) error
	// RemoteURL returns the first URL of the named remote of the repository at dir.
	RemoteURL(dir, remote string) (string, error)
}
