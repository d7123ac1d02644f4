package catalog

import (
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/store"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
)

// ReadinessService is the health entry for the catalog loader. It reports
// NOT_SERVING until the first catalog has been loaded into the store. The
// server-wide "" entry stays as liveness.
const ReadinessService = "omnipos.storefront.CatalogLoader"

// TrackReadiness publishes the loader state of st on hs under
// ReadinessService. stop detaches it from the store.
func TrackReadiness(st *store.Store, hs *health.Server, log logger.ZapLogger) (stop func()) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if st.IsLoaded() {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus(ReadinessService, status)

	return st.Subscribe(func(snap *store.Snapshot) {
		hs.SetServingStatus(ReadinessService, grpc_health_v1.HealthCheckResponse_SERVING)
		log.Info("Catalog available", zap.Uint64("version", snap.Version()), zap.Int("count", snap.Len()))
	})
}
