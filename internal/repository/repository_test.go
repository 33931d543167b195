package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zaniyar/grantmaster/config"
)

func TestNew(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop().Sugar()
	cfg := &config.Config{}

	for _, name := range []string{"postgres", "memory"} {
		repo, err := New(ctx, name, log, cfg)
		require.NoError(t, err, name)
		require.NotNil(t, repo, name)
	}

	_, err := New(ctx, "mongo", log, cfg)
	require.Error(t, err)
}
