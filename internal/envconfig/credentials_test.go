package envconfig_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
	"github.com/CA-CODE-Works/cawebenv/internal/envconfig/mocks"
)

func TestCompleteCredentialsSkipsWhenDiviUnused(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	prompter := mocks.NewMockPrompter(ctrl)

	cfg := envconfig.Defaults()
	require.NoError(t, envconfig.CompleteCredentials(context.Background(), cfg, prompter))
}

func TestCompleteCredentialsFillsOnlyMissing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	prompter := mocks.NewMockPrompter(ctrl)

	cfg := envconfig.Defaults()
	dev := cfg.Env(envconfig.Development).Settings
	dev[envconfig.KeyETUsername] = "alice"

	prompter.EXPECT().
		Prompt(gomock.Any(), []envconfig.Question{
			{Name: envconfig.KeyETAPIKey, Message: "ElegantThemes API Key (development)", Secret: true},
		}).
		Return(map[string]string{
			envconfig.KeyETAPIKey:   "k123",
			envconfig.KeyETUsername: "mallory",
		}, nil)

	require.NoError(t, envconfig.CompleteCredentials(context.Background(), cfg, prompter))
	require.Equal(t, "alice", dev[envconfig.KeyETUsername])
	require.Equal(t, "k123", dev[envconfig.KeyETAPIKey])
	require.False(t, cfg.Env(envconfig.Tests).Settings.Has(envconfig.KeyETAPIKey))
}

func TestCompleteCredentialsRequiredByDiviTheme(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	prompter := mocks.NewMockPrompter(ctrl)

	cfg := envconfig.Defaults()
	cfg.Env(envconfig.Tests).Settings[envconfig.KeyDefaultTheme] = envconfig.DiviTheme

	prompter.EXPECT().
		Prompt(gomock.Any(), gomock.Len(2)).
		Return(nil, envconfig.ErrNoInputSource)

	err := envconfig.CompleteCredentials(context.Background(), cfg, prompter)
	require.ErrorIs(t, err, envconfig.ErrMissingCredentials)
	require.ErrorIs(t, err, envconfig.ErrNoInputSource)
}

func TestCompleteCredentialsRequiredButBlankAnswers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	prompter := mocks.NewMockPrompter(ctrl)

	cfg := envconfig.Defaults()
	cfg.Env(envconfig.Development).Settings[envconfig.KeyDefaultTheme] = envconfig.DiviTheme

	prompter.EXPECT().
		Prompt(gomock.Any(), gomock.Any()).
		Return(map[string]string{envconfig.KeyETUsername: "alice", envconfig.KeyETAPIKey: "  "}, nil)

	err := envconfig.CompleteCredentials(context.Background(), cfg, prompter)
	require.ErrorIs(t, err, envconfig.ErrMissingCredentials)
}

func TestCompleteCredentialsOptionalFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	prompter := mocks.NewMockPrompter(ctrl)

	cfg := envconfig.Defaults()
	cfg.Env(envconfig.Development).Settings[envconfig.KeyETUsername] = "alice"

	prompter.EXPECT().
		Prompt(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("terminal closed"))

	require.NoError(t, envconfig.CompleteCredentials(context.Background(), cfg, prompter))
	require.False(t, cfg.Env(envconfig.Development).Settings.Has(envconfig.KeyETAPIKey))
}

func TestCompleteCredentialsCancelledIsFatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	prompter := mocks.NewMockPrompter(ctrl)

	cfg := envconfig.Defaults()
	cfg.Env(envconfig.Development).Settings[envconfig.KeyETUsername] = "alice"

	prompter.EXPECT().
		Prompt(gomock.Any(), gomock.Any()).
		Return(nil, context.Canceled)

	err := envconfig.CompleteCredentials(context.Background(), cfg, prompter)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompleteCredentialsWithoutPrompter(t *testing.T) {
	t.Parallel()

	cfg := envconfig.Defaults()
	cfg.Env(envconfig.Development).Settings[envconfig.KeyDefaultTheme] = envconfig.DiviTheme

	err := envconfig.CompleteCredentials(context.Background(), cfg, nil)
	require.ErrorIs(t, err, envconfig.ErrNoInputSource)
}
