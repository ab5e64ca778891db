package container

import (
	app "focus-cam/internal/application"
	"focus-cam/internal/domain/port"
)

// Deps внешние зависимости, собранные в main.
type Deps struct {
	Users     port.UserRepository
	History   port.CaptureRepository
	Source    port.FrameSource
	Estimator port.QualityEstimator
	Codec     port.ImageCodec
	Uploader  port.Uploader
	Outbox    port.HostBridge
	Redirect  port.Redirector
}

type Container struct {
	UserService       *app.UserService
	CaptureService    *app.CaptureService
	InspectionService *app.InspectionService
	BridgeService     *app.BridgeService
}

func New(d Deps) *Container {
	userService := app.NewUserService(d.Users)
	captureService := app.NewCaptureService(d.Source, d.Estimator, d.Codec, d.Uploader, d.History)
	inspectionService := app.NewInspectionService(userService, d.Estimator, d.Codec, d.Uploader, d.History)
	bridgeService := app.NewBridgeService(captureService, d.Outbox, d.Redirect)
	captureService.OnStatusChange(bridgeService.NotifyStatus)

	return &Container{
		UserService:       userService,
		CaptureService:    captureService,
		InspectionService: inspectionService,
		BridgeService:     bridgeService,
	}
}
