package handler

import (
	"church-app-go/internal/config"
	caregroupdomain "church-app-go/internal/domain/caregroup"
	dashboarddomain "church-app-go/internal/domain/dashboard"
	memberdomain "church-app-go/internal/domain/member"
	ministrydomain "church-app-go/internal/domain/ministry"
	settingdomain "church-app-go/internal/domain/setting"
	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/transport/httpserver/middleware"
	"church-app-go/pkg/logger"
)

type Services struct {
	Users      *userdomain.Service
	Members    *memberdomain.Service
	CareGroups *caregroupdomain.Service
	Ministries *ministrydomain.Service
	Settings   *settingdomain.Service
	Dashboard  *dashboarddomain.Service
}

type Handlers struct {
	Users      *userdomain.Service
	Members    *memberdomain.Service
	CareGroups *caregroupdomain.Service
	Ministries *ministrydomain.Service
	Settings   *settingdomain.Service
	Stats      *dashboarddomain.Service
	sessions   *middleware.Sessions
	views      *Renderer
	cfg        config.Config
	log        logger.Logger
}

func New(services Services, sessions *middleware.Sessions, views *Renderer, cfg config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Users:      services.Users,
		Members:    services.Members,
		CareGroups: services.CareGroups,
		Ministries: services.Ministries,
		Settings:   services.Settings,
		Stats:      services.Dashboard,
		sessions:   sessions,
		views:      views,
		cfg:        cfg,
		log:        log,
	}
}
