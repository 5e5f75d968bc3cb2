package validation

import (
	"github.com/smallbiznis/estimator/internal/validation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("validation.engine",
	fx.Provide(service.New),
)
