package container

import (
	"database/sql"

	"assetdesk/internal/assets"
	auditLogRepo "assetdesk/internal/auditlog"
	"assetdesk/internal/auth"
	"assetdesk/internal/dashboard"
	"assetdesk/internal/maintenance"
	"assetdesk/internal/repository"
	"assetdesk/internal/requests"
	"assetdesk/internal/users"
	"assetdesk/pkg/auditlog"
)

type Container struct {
	Repository         *repository.Repository
	AuditLog           *auditlog.Auditlog
	AuthHandler        *auth.AuthHandler
	AssetsHandler      *assets.AssetsHandler
	RequestsHandler    *requests.RequestsHandler
	MaintenanceHandler *maintenance.MaintenanceHandler
	UserHandler        *users.UsersHandler
	DashboardHandler   *dashboard.DashboardHandler
}

func NewAppContainer(db *sql.DB) *Container {
	repo := repository.NewRepository(db)
	auditLog := auditlog.NewAuditLog(auditLogRepo.NewRepository(repo))

	userRepo := users.NewRepository(repo)
	resetRepo := auth.NewResetRepository(repo)

	assetRepo := assets.NewRepository(repo)
	assetService := assets.NewAssetService(repo, assetRepo, auditLog)

	requestRepo := requests.NewRepository(repo)
	requestService := requests.NewRequestService(repo, requestRepo, auditLog)

	maintenanceRepo := maintenance.NewRepository(repo)
	maintenanceService := maintenance.NewMaintenanceService(repo, maintenanceRepo, auditLog)

	return &Container{
		Repository:         repo,
		AuditLog:           auditLog,
		AuthHandler:        auth.NewAuthHandler(userRepo, resetRepo),
		AssetsHandler:      assets.NewAssetsHandler(assetService),
		RequestsHandler:    requests.NewRequestsHandler(requestService),
		MaintenanceHandler: maintenance.NewMaintenanceHandler(maintenanceService),
		UserHandler:        users.NewHandler(userRepo),
		DashboardHandler:   dashboard.NewDashboardHandler(dashboard.NewDashboardRepository(repo)),
	}
}
