package http

import (
	"go.uber.org/fx"

	catalogtransport "github.com/Additional-Code/procura/internal/transport/http/catalog"
	purchaseordertransport "github.com/Additional-Code/procura/internal/transport/http/purchaseorder"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	purchaseordertransport.Module,
	catalogtransport.Module,
)
