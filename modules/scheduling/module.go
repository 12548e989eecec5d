package scheduling

import (
	"embed"

	"github.com/formatix/erp/modules/scheduling/infrastructure/persistence"
	"github.com/formatix/erp/modules/scheduling/presentation/controllers"
	"github.com/formatix/erp/modules/scheduling/services"
	"github.com/formatix/erp/pkg/application"
	"github.com/formatix/erp/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	sessionRepo := persistence.NewSessionRepository()
	roomRepo := persistence.NewRoomRepository()
	trainerRepo := persistence.NewTrainerRepository()
	dealRepo := persistence.NewDealRepository()

	app.RegisterServices(
		services.NewImportService(
			sessionRepo,
			roomRepo,
			trainerRepo,
			dealRepo,
			app.EventPublisher(),
			app.Logger(),
		),
		services.NewSessionService(sessionRepo),
		services.NewRoomService(roomRepo, app.EventPublisher()),
		services.NewTrainerService(trainerRepo),
	)

	app.RegisterControllers(
		controllers.NewSchedulingController(app, configuration.Use().MaxUploadSize),
	)

	return nil
}

func (m *Module) Name() string {
	return "scheduling"
}
