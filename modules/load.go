package modules

import (
	"github.com/formatix/erp/modules/scheduling"
	"github.com/formatix/erp/pkg/application"
)

var BuiltInModules = []application.Module{
	scheduling.NewModule(),
}

// Load registers the built-in modules plus any extras the caller adds.
func Load(app application.Application, externalModules ...application.Module) error {
	return application.Load(app, append(BuiltInModules, externalModules...)...)
}
