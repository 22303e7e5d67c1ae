package dotnet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// cloneRemote is the remote name of a fresh clone.
const cloneRemote = "origin"

// confirm asks the operator unless the run skips confirmation. A declined prompt aborts the target.
func (t *Targets) confirm(ctx context.Context, rc domain.RunContext, question string) error {
	if rc.SkipConfirmation {
		return nil
	}
	ok, err := t.prompter.Confirm(ctx, question)
	if err != nil {
		return err
	}
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrAborted, "confirmation declined"), "question", question)
	}
	return nil
}

// releaseGithubDoc replaces the content of the docs branch with the generated
// documentation and pushes it.
func (t *Targets) releaseGithubDoc(ctx context.Context, rc domain.RunContext) error {
	version := t.cfg.Version
	if err := t.confirm(ctx, rc, fmt.Sprintf("Release documentation for version %s?", version)); err != nil {
		return err
	}

	url, err := t.vcs.RemoteURL(t.cfg.Root, t.cfg.Git.Remote)
	if err != nil {
		return err
	}

	tmp, err := os.MkdirTemp("", "dotbuild-docs-")
	if err != nil {
		return zerr.Wrap(err, "failed to create checkout directory")
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	branch := t.cfg.Git.DocsBranch
	checkout := filepath.Join(tmp, branch)
	t.logger.Info("Cloning " + branch + " of " + url)
	if err := t.vcs.CloneSingleBranch(ctx, url, branch, checkout); err != nil {
		return err
	}

	if err := t.replaceContent(checkout, t.cfg.DocOutputDir); err != nil {
		return err
	}

	changes, err := t.vcs.ChangedFiles(checkout)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		t.logger.Info("Documentation on " + branch + " is up to date")
		return nil
	}

	if err := t.vcs.StageAll(checkout); err != nil {
		return err
	}
	if err := t.vcs.Commit(checkout, "Update generated documentation for version "+version); err != nil {
		return err
	}
	if err := t.vcs.Push(ctx, checkout, cloneRemote, branch); err != nil {
		return err
	}
	t.logger.Info(fmt.Sprintf("Published %d documentation change(s) to %s", len(changes), branch))
	return nil
}

// replaceContent empties the working copy at dir, keeping its repository, and copies src into it.
func (t *Targets) replaceContent(dir, src string) error {
	entries, err := t.fs.Entries(dir)
	if err != nil {
		return err
	}
	for _, name := range entries {
		if name == ".git" {
			continue
		}
		if err := t.fs.Remove(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return t.fs.CopyTree(src, dir)
}

// versionBump commits the changed working copy and pushes it to the push branch.
func (t *Targets) versionBump(ctx context.Context, rc domain.RunContext) error {
	changes, err := t.vcs.ChangedFiles(t.cfg.Root)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		t.logger.Info("No changes to commit")
		return nil
	}
	for _, c := range changes {
		t.logger.Info(c.Status + " " + c.Path)
	}

	question := fmt.Sprintf("Commit and push %d change(s) to %s/%s?", len(changes), t.cfg.Git.Remote, t.cfg.Git.PushBranch)
	if err := t.confirm(ctx, rc, question); err != nil {
		return err
	}

	if err := t.vcs.StageAll(t.cfg.Root); err != nil {
		return err
	}
	if err := t.vcs.Commit(t.cfg.Root, "Bump version to "+t.cfg.Version); err != nil {
		return err
	}
	return t.vcs.Push(ctx, t.cfg.Root, t.cfg.Git.Remote, t.cfg.Git.PushBranch)
}
