package dotnet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dotbuild/internal/core/domain"
	"go.trai.ch/dotbuild/internal/dotnet"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestDocs_SurfacesLines(t *testing.T) {
	for _, name := range []string{dotnet.TargetLocalDoc, dotnet.TargetGithubDoc} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.docs.EXPECT().Generate(gomock.Any(), name).Return(&domain.DocResult{
				Success: true,
				Lines: []domain.LogLine{
					{Text: "Generating reference"},
					{Text: "warning: missing XML doc", IsError: true},
					{Text: "Done"},
				},
			}, nil)

			var errLines []string
			gomock.InOrder(
				f.logger.EXPECT().Info("Generating reference"),
				f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { errLines = append(errLines, err.Error()) }),
				f.logger.EXPECT().Info("Done"),
			)

			require.NoError(t, f.target(t, f.fs, name)(context.Background(), domain.RunContext{}))
			assert.Equal(t, []string{"warning: missing XML doc"}, errLines)
		})
	}
}

func TestDocs_Failure(t *testing.T) {
	f := newFixture(t)
	f.docs.EXPECT().Generate(gomock.Any(), dotnet.TargetLocalDoc).Return(&domain.DocResult{
		Lines: []domain.LogLine{{Text: "generate.fsx(12): error", IsError: true}},
	}, nil)
	f.logger.EXPECT().Error(gomock.Any())

	err := f.target(t, f.fs, dotnet.TargetLocalDoc)(context.Background(), domain.RunContext{})
	require.ErrorIs(t, err, domain.ErrDocGenerationFailed)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, dotnet.TargetLocalDoc, zErr.Metadata()["target"])
}

func TestDocs_GeneratorError(t *testing.T) {
	f := newFixture(t)
	startErr := errors.New("dotnet: executable file not found")
	f.docs.EXPECT().Generate(gomock.Any(), dotnet.TargetGithubDoc).Return(nil, startErr)

	err := f.target(t, f.fs, dotnet.TargetGithubDoc)(context.Background(), domain.RunContext{})
	require.ErrorIs(t, err, startErr)
}
