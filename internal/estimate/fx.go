package estimate

import (
	"github.com/smallbiznis/estimator/internal/estimate/repository"
	"github.com/smallbiznis/estimator/internal/estimate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("estimate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
