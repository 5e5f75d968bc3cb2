package catalog

import (
	"github.com/smallbiznis/estimator/internal/catalog/repository"
	"github.com/smallbiznis/estimator/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewReader),
	fx.Provide(service.New),
)
