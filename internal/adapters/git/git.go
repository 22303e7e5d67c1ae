// Package git implements ports.VersionControl on top of go-git.
package git

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VersionControl = (*Client)(nil)

// Client implements ports.VersionControl.
type Client struct {
	authorName  string
	authorEmail string
	token       string
}

// NewClient creates a Client from the git settings of the build configuration.
func NewClient(cfg domain.GitConfig) *Client {
	return &Client{
		authorName:  cfg.AuthorName,
		authorEmail: cfg.AuthorEmail,
		token:       cfg.Token,
	}
}

func open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open repository"), "path", dir)
	}
	return repo, nil
}

func worktree(dir string) (*git.Worktree, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open worktree"), "path", dir)
	}
	return wt, nil
}

// ChangedFiles lists the modified, added, deleted and untracked paths of the working copy.
func (c *Client) ChangedFiles(dir string) ([]domain.FileChange, error) {
	wt, err := worktree(dir)
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read status"), "path", dir)
	}

	changes := make([]domain.FileChange, 0, len(status))
	for path, s := range status {
		if s.Staging == git.Unmodified && s.Worktree == git.Unmodified {
			continue
		}
		changes = append(changes, domain.FileChange{
			Path:   path,
			Status: strings.TrimSpace(string([]byte{byte(s.Staging), byte(s.Worktree)})),
		})
	}
	slices.SortFunc(changes, func(a, b domain.FileChange) int {
		return strings.Compare(a.Path, b.Path)
	})
	return changes, nil
}

// StageAll stages every change of the working copy, deletions included.
func (c *Client) StageAll(dir string) error {
	wt, err := worktree(dir)
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stage changes"), "path", dir)
	}
	return nil
}

// Commit records the staged changes. Without a configured author the repository
// configuration supplies one.
func (c *Client) Commit(dir, message string) error {
	wt, err := worktree(dir)
	if err != nil {
		return err
	}

	opts := &git.CommitOptions{}
	if c.authorName != "" {
		opts.Author = &object.Signature{Name: c.authorName, Email: c.authorEmail, When: time.Now()}
	}
	if _, err := wt.Commit(message, opts); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to commit"), "path", dir)
	}
	return nil
}

// CloneSingleBranch clones only branch of url into dir.
func (c *Client) CloneSingleBranch(ctx context.Context, url, branch, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           url,
		Auth:          c.auth(url),
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
	})
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to clone"), "url", url)
		return zerr.With(err, "branch", branch)
	}
	return nil
}

// Push pushes branch to the branch of the same name on remote.
func (c *Client) Push(ctx context.Context, dir, remote, branch string) error {
	repo, err := open(dir)
	if err != nil {
		return err
	}
	url, err := remoteURL(repo, remote)
	if err != nil {
		return err
	}

	ref := plumbing.NewBranchReferenceName(branch)
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []gitcfg.RefSpec{gitcfg.RefSpec(ref + ":" + ref)},
		Auth:       c.auth(url),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		err = zerr.With(zerr.Wrap(err, "failed to push"), "remote", remote)
		return zerr.With(err, "branch", branch)
	}
	return nil
}

// RemoteURL returns the first URL of remote.
func (c *Client) RemoteURL(dir, remote string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	return remoteURL(repo, remote)
}

func remoteURL(repo *git.Repository, name string) (string, error) {
	remote, err := repo.Remote(name)
	if errors.Is(err, git.ErrRemoteNotFound) {
		return "", zerr.With(zerr.Wrap(domain.ErrRemoteNotFound, "cannot resolve remote"), "remote", name)
	}
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read remote"), "remote", name)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", zerr.With(zerr.Wrap(domain.ErrRemoteNotFound, "remote has no URL"), "remote", name)
	}
	return urls[0], nil
}

// auth returns token authentication for HTTP remotes when a token is configured.
func (c *Client) auth(url string) transport.AuthMethod {
	if c.token == "" || !strings.HasPrefix(url, "http") {
		return nil
	}
	// Hosting services accept any non-empty user name together with a token.
	return &http.BasicAuth{Username: "token", Password: c.token}
}
