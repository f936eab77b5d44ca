package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/procura/internal/cache"
	"github.com/Additional-Code/procura/internal/config"
	"github.com/Additional-Code/procura/internal/database"
	"github.com/Additional-Code/procura/internal/logger"
	"github.com/Additional-Code/procura/internal/messaging"
	"github.com/Additional-Code/procura/internal/observability"
	repositorycatalog "github.com/Additional-Code/procura/internal/repository/catalog"
	repositorypurchaseorder "github.com/Additional-Code/procura/internal/repository/purchaseorder"
	httpserver "github.com/Additional-Code/procura/internal/server/http"
	servicecatalog "github.com/Additional-Code/procura/internal/service/catalog"
	servicepurchaseorder "github.com/Additional-Code/procura/internal/service/purchaseorder"
	transporthttp "github.com/Additional-Code/procura/internal/transport/http"
	"github.com/Additional-Code/procura/internal/worker"
	workerpurchaseorder "github.com/Additional-Code/procura/internal/worker/purchaseorder"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositorypurchaseorder.Module,
	repositorycatalog.Module,
	servicepurchaseorder.Module,
	servicecatalog.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerpurchaseorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
