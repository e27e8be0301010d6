package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/rendalink/locador/internal/app/api/server"
	"github.com/rendalink/locador/internal/app/service/access"
	"github.com/rendalink/locador/internal/app/service/billingjob"
	"github.com/rendalink/locador/internal/app/service/dashboard"
	"github.com/rendalink/locador/internal/app/service/profile"
	"github.com/rendalink/locador/internal/app/service/property"
	"github.com/rendalink/locador/internal/app/service/subscription"
	"github.com/rendalink/locador/internal/app/service/tenancy"
	"github.com/rendalink/locador/internal/platform/db"
	"github.com/rendalink/locador/pkg/config"
	"github.com/rendalink/locador/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

// Services shared by the API server and the job binary.
var CoreModule = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	profile.Module,
	subscription.Module,
	access.Module,
	billingjob.Module,
)

var Module = fx.Options(
	CoreModule,
	property.Module,
	tenancy.Module,
	dashboard.Module,
	server.Module,
)
