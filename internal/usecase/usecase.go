package usecase

import (
	"context"
	"time"

	"github.com/Zaniyar/grantmaster/internal/repository"
	"github.com/Zaniyar/grantmaster/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	SynthesisUsecaseInterface
	ScanUsecaseInterface
	QueryUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	source domain.Source,
	concurrency int,
	timeout time.Duration,
) InterfaceUsecase {
	return domain.New(log, ctx, repo, source, concurrency, timeout)
}
